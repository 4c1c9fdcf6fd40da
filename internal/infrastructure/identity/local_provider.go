package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"truthprevails/internal/domain/entity"
	"truthprevails/pkg/errors"
)

const issuer = "truthprevails-local"

type localClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// LocalProvider issues HS256 tokens itself. It stands in for Firebase in development so the
// authenticated routes stay usable without credentials. Passwords are not kept.
type LocalProvider struct {
	secret []byte
	expiry time.Duration

	mu     sync.Mutex
	emails map[string]string
}

func NewLocalProvider(secret string, expiry time.Duration) *LocalProvider {
	return &LocalProvider{
		secret: []byte(secret),
		expiry: expiry,
		emails: make(map[string]string),
	}
}

func (p *LocalProvider) Name() string {
	return "local"
}

func (p *LocalProvider) CreateUser(ctx context.Context, email, password, displayName string) (*entity.CreatedIdentity, error) {
	key := strings.ToLower(email)

	p.mu.Lock()
	if _, exists := p.emails[key]; exists {
		p.mu.Unlock()
		return nil, errors.Conflict("Email already in use")
	}
	uid := uuid.New().String()
	p.emails[key] = uid
	p.mu.Unlock()

	token, err := p.IssueToken(uid, email, displayName)
	if err != nil {
		return nil, err
	}

	return &entity.CreatedIdentity{UID: uid, Token: token}, nil
}

func (p *LocalProvider) IssueToken(uid, email, name string) (string, error) {
	now := time.Now()
	claims := localClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *LocalProvider) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	claims := &localClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Issuer != issuer || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return &entity.Identity{
		UID:      claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: "password",
	}, nil
}

func (p *LocalProvider) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	return nil
}

func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for email, id := range p.emails {
		if id == uid {
			delete(p.emails, email)
		}
	}
	return nil
}
