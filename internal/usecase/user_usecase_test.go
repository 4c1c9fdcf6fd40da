package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/pkg/errors"
)

func TestUserUseCase_Profile(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	u := h.signup(t, "ada@example.com")

	updated, err := h.user.UpdateProfile(context.Background(), u.ID, UpdateProfileInput{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "Ada Lovelace", h.identity.renamed[u.ID])

	address, err := h.user.GetWalletAddress(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.WalletAddress, address)

	key, err := h.user.SignerKey(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, key, 66)
}

func TestUserUseCase_DeleteAccountCascades(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	u := h.signup(t, "ada@example.com")
	other := h.signup(t, "bob@example.com")

	for _, body := range []string{"one", "two", "three"} {
		_, err := h.file.Upload(context.Background(), UploadInput{UserID: u.ID, FileName: body + ".txt", ContentType: "text/plain", Data: []byte(body)})
		require.NoError(t, err)
	}
	_, err := h.file.Upload(context.Background(), UploadInput{UserID: other.ID, FileName: "keep.txt", ContentType: "text/plain", Data: []byte("keep")})
	require.NoError(t, err)
	require.Equal(t, 4, h.store.count())

	require.NoError(t, h.user.DeleteAccount(context.Background(), u.ID))

	_, err = h.user.GetProfile(context.Background(), u.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	assert.Contains(t, h.identity.deleted, u.ID)
	assert.Equal(t, 1, h.store.count())

	files, total, err := h.file.ListUserFiles(context.Background(), ListFilesInput{UserID: other.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, files, 1)
}
