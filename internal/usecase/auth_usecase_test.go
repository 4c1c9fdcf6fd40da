package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/adapter/repository"
	"truthprevails/internal/domain/entity"
	"truthprevails/internal/infrastructure/identity"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/wallet"
)

func TestAuthUseCase_Signup(t *testing.T) {
	h := newHarness(t, memoryRegistry())

	res, err := h.auth.Signup(context.Background(), SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "password", res.User.Provider)
	assert.Len(t, res.User.WalletAddress, 42)

	info, err := wallet.Decrypt(res.User.EncryptedWallet, testSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.WalletAddress, info.Address)

	_, err = h.auth.Signup(context.Background(), SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestAuthUseCase_SignupRollsBackIdentityWithoutWalletSecret(t *testing.T) {
	identity := newFakeIdentity()
	uc := NewAuthUseCase(repository.NewMemoryUserRepository(), identity, "")

	_, err := uc.Signup(context.Background(), SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
	assert.Len(t, identity.deleted, 1)
	assert.Empty(t, identity.users)
}

func TestAuthUseCase_SignupWithoutIdentityBackend(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	uc := NewAuthUseCase(users, identity.NewUnavailableProvider("firebase is not configured"), testSecret)

	_, err := uc.Signup(context.Background(), SignupInput{Name: "Ada", Email: "ada@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, errors.CodeUnavailable))

	_, err = users.GetByEmail(context.Background(), "ada@example.com")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestAuthUseCase_FederatedSignIn(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	identity := &entity.Identity{UID: "google-uid", Email: "grace@example.com", Provider: "google.com"}

	user, created, err := h.auth.FederatedSignIn(context.Background(), identity)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "grace", user.Name)
	assert.Equal(t, "google.com", user.Provider)

	again, created, err := h.auth.FederatedSignIn(context.Background(), identity)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.WalletAddress, again.WalletAddress)
}
