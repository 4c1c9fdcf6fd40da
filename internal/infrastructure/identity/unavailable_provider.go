package identity

import (
	"context"
	stderrors "errors"

	"truthprevails/internal/domain/entity"
	"truthprevails/pkg/errors"
)

// UnavailableProvider stands in when no identity backend is configured. Account routes fail
// with SERVICE_UNAVAILABLE while the public verification routes keep serving.
type UnavailableProvider struct {
	reason error
}

func NewUnavailableProvider(reason string) *UnavailableProvider {
	return &UnavailableProvider{reason: stderrors.New(reason)}
}

func (p *UnavailableProvider) err() error {
	return errors.Unavailable("Authentication", p.reason).WithDetails(p.reason.Error())
}

func (p *UnavailableProvider) Name() string {
	return "disabled"
}

func (p *UnavailableProvider) CreateUser(ctx context.Context, email, password, displayName string) (*entity.CreatedIdentity, error) {
	return nil, p.err()
}

func (p *UnavailableProvider) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	return nil, p.err()
}

func (p *UnavailableProvider) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	return p.err()
}

func (p *UnavailableProvider) DeleteUser(ctx context.Context, uid string) error {
	return p.err()
}
