package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/logger"
	"truthprevails/pkg/wallet"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	identity     IdentityProvider
	walletSecret string
}

func NewAuthUseCase(userRepo repository.UserRepository, identity IdentityProvider, walletSecret string) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		identity:     identity,
		walletSecret: walletSecret,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Email already in use")
	}

	created, err := uc.identity.CreateUser(ctx, email, input.Password, input.Name)
	if err != nil {
		if errors.Is(err, errors.CodeConflict) || errors.Is(err, errors.CodeUnavailable) {
			return nil, err
		}
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	user, err := uc.createAccount(ctx, created.UID, input.Name, email, "password")
	if err != nil {
		if derr := uc.identity.DeleteUser(ctx, created.UID); derr != nil {
			logger.Warn("Failed to roll back identity %s: %v", created.UID, derr)
		}
		return nil, err
	}

	logger.Info("User %s signed up with wallet %s", user.ID, user.WalletAddress)

	return &AuthResult{
		User:  user,
		Token: created.Token,
	}, nil
}

// FederatedSignIn returns the account behind an already verified identity, creating it with a
// fresh wallet on first sign-in.
func (uc *AuthUseCase) FederatedSignIn(ctx context.Context, identity *entity.Identity) (*entity.User, bool, error) {
	user, err := uc.userRepo.GetByID(ctx, identity.UID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, false, err
	}

	name := identity.Name
	if name == "" {
		name = strings.Split(identity.Email, "@")[0]
	}

	user, err = uc.createAccount(ctx, identity.UID, name, identity.Email, identity.Provider)
	if err != nil {
		return nil, false, err
	}

	logger.Info("Created account for federated user %s (%s)", user.ID, user.Provider)
	return user, true, nil
}

func (uc *AuthUseCase) createAccount(ctx context.Context, uid, name, email, provider string) (*entity.User, error) {
	address, sealed, err := provisionWallet(uc.walletSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:              uid,
		Name:            name,
		Email:           email,
		WalletAddress:   address,
		EncryptedWallet: sealed,
		Provider:        provider,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func provisionWallet(secret string) (string, string, error) {
	info, err := wallet.Generate()
	if err != nil {
		return "", "", errors.Internal("Failed to generate wallet", err)
	}

	sealed, err := wallet.Encrypt(info, secret)
	if err != nil {
		if stderrors.Is(err, wallet.ErrEmptySecret) {
			return "", "", errors.Unavailable("Wallet provisioning", err)
		}
		return "", "", errors.Internal("Failed to encrypt wallet", err)
	}

	return info.Address, sealed, nil
}
