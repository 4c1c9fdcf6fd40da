package blockchain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/domain/entity"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
)

const (
	keyA = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	keyB = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

func fixtureHashes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = hashing.HashBytes([]byte{byte('a' + i)})
	}
	return out
}

func TestMemoryRegistry_VerifyUnknownHashIsTotal(t *testing.T) {
	r := NewMemoryRegistry()
	h := hashing.HashBytes([]byte("never submitted"))

	first, err := r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.False(t, first.Exists)
	assert.Equal(t, entity.ZeroAddress, first.Submitter)
	assert.Equal(t, int64(0), first.Timestamp)

	second, err := r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemoryRegistry_SubmitThenVerify(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewMemoryRegistry().WithClock(func() time.Time { return fixed })
	h := hashing.HashBytes([]byte("document"))

	receipt, err := r.SubmitHash(context.Background(), h, keyA)
	require.NoError(t, err)
	assert.True(t, strings.EqualFold("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", receipt.Submitter))
	assert.Equal(t, uint64(1), receipt.BlockNumber)
	assert.Len(t, receipt.TransactionHash, 66)

	entry, err := r.VerifyHash(context.Background(), "0x"+strings.ToUpper(h))
	require.NoError(t, err)
	assert.True(t, entry.Exists)
	assert.Equal(t, h, entry.Hash)
	assert.Equal(t, receipt.Submitter, entry.Submitter)
	assert.Equal(t, fixed.Unix(), entry.Timestamp)
}

func TestMemoryRegistry_DuplicateSubmissionRejected(t *testing.T) {
	r := NewMemoryRegistry()
	h := hashing.HashBytes([]byte("document"))

	_, err := r.SubmitHash(context.Background(), h, keyA)
	require.NoError(t, err)

	_, err = r.SubmitHash(context.Background(), h, keyA)
	assert.True(t, errors.Is(err, "HASH_ALREADY_REGISTERED"))

	_, err = r.SubmitHash(context.Background(), h, keyB)
	assert.True(t, errors.Is(err, "HASH_ALREADY_REGISTERED"))

	entry, err := r.VerifyHash(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, strings.EqualFold("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", entry.Submitter))
}

func TestMemoryRegistry_RejectsZeroAndMalformedHashes(t *testing.T) {
	r := NewMemoryRegistry()

	_, err := r.SubmitHash(context.Background(), strings.Repeat("0", 64), keyA)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = r.SubmitHash(context.Background(), "abc", keyA)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = r.VerifyHash(context.Background(), "abc")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestMemoryRegistry_RecentHashes(t *testing.T) {
	r := NewMemoryRegistry()
	hashes := fixtureHashes(5)
	for _, h := range hashes {
		_, err := r.SubmitHash(context.Background(), h, keyA)
		require.NoError(t, err)
	}

	recent, err := r.RecentHashes(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, hashes[2:], recent)

	all, err := r.RecentHashes(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, hashes, all)

	none, err := r.RecentHashes(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	total, err := r.TotalHashes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
}

func TestMemoryRegistry_HashesBySubmitter(t *testing.T) {
	r := NewMemoryRegistry()
	hashes := fixtureHashes(4)
	for i, h := range hashes {
		key := keyA
		if i%2 == 1 {
			key = keyB
		}
		_, err := r.SubmitHash(context.Background(), h, key)
		require.NoError(t, err)
	}

	byA, err := r.HashesBySubmitter(context.Background(), "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)
	assert.Equal(t, []string{hashes[0], hashes[2]}, byA)

	all, err := r.AllHashes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, hashes, all)

	_, err = r.HashesBySubmitter(context.Background(), "not-an-address")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestUnavailableRegistry(t *testing.T) {
	r := NewUnavailableRegistry("BLOCKCHAIN_RPC_URL is not set")

	_, err := r.VerifyHash(context.Background(), hashing.HashBytes(nil))
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))

	_, err = r.SubmitHash(context.Background(), hashing.HashBytes(nil), keyA)
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
	assert.Equal(t, "disabled", r.Mode())
}
