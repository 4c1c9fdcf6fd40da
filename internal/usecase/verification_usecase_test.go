package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/infrastructure/blockchain"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
)

func TestVerificationUseCase_VerifyHash(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	u := h.signup(t, "ada@example.com")
	data := []byte("diploma.pdf bytes")

	upload, err := h.file.Upload(context.Background(), UploadInput{UserID: u.ID, FileName: "diploma.pdf", ContentType: "application/pdf", Data: data})
	require.NoError(t, err)

	res, err := h.verification.VerifyHash(context.Background(), "0x"+strings.ToUpper(upload.File.FileHash))
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, upload.File.FileHash, res.Hash)
	assert.Equal(t, u.WalletAddress, res.Submitter)
	assert.NotNil(t, res.SubmittedAt)
	require.NotNil(t, res.FileMetadata)
	assert.Equal(t, "diploma.pdf", res.FileMetadata.FileName)
	assert.Equal(t, "https://explorer.test/tx/"+upload.File.TransactionHash, res.TransactionURL)

	byFile, err := h.verification.VerifyFile(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, res.Hash, byFile.Hash)
}

func TestVerificationUseCase_AbsentHash(t *testing.T) {
	h := newHarness(t, memoryRegistry())

	res, err := h.verification.VerifyHash(context.Background(), hashing.HashBytes([]byte("never uploaded")))
	require.NoError(t, err)
	assert.False(t, res.Exists)
	assert.Equal(t, entity.ZeroAddress, res.Submitter)
	assert.Zero(t, res.Timestamp)
	assert.Nil(t, res.FileMetadata)
	assert.Empty(t, res.TransactionURL)

	_, err = h.verification.VerifyHash(context.Background(), "abc")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestVerificationUseCase_RegistryUnavailable(t *testing.T) {
	h := newHarness(t, blockchain.NewUnavailableRegistry("no rpc configured"))

	_, err := h.verification.VerifyHash(context.Background(), hashing.HashBytes([]byte("x")))
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))

	_, err = h.verification.Stats(context.Background())
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))
}

func TestVerificationUseCase_VerifyBatch(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	u := h.signup(t, "ada@example.com")

	known := make([]string, 0, 3)
	for _, body := range []string{"a", "b", "c"} {
		res, err := h.verification.SubmitHash(context.Background(), u.ID, hashing.HashBytes([]byte(body)))
		require.NoError(t, err)
		known = append(known, res.Receipt.Hash)
	}

	input := []string{known[0], "not-a-hash", hashing.HashBytes([]byte("unknown")), known[2], known[1]}
	res, err := h.verification.VerifyBatch(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, res.Results, len(input))
	for i, item := range res.Results {
		assert.Equal(t, input[i], item.Hash)
	}
	assert.NotEmpty(t, res.Results[1].Error)
	assert.Nil(t, res.Results[1].Verification)
	assert.False(t, res.Results[2].Verification.Exists)
	assert.Equal(t, BatchSummary{Total: 5, Verified: 3, NotFound: 1, Errors: 1}, res.Summary)
}

func TestVerificationUseCase_VerifyBatchLimits(t *testing.T) {
	h := newHarness(t, memoryRegistry())

	_, err := h.verification.VerifyBatch(context.Background(), nil)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	tooMany := make([]string, MaxBatchHashes+1)
	for i := range tooMany {
		tooMany[i] = hashing.HashBytes([]byte{byte(i)})
	}
	_, err = h.verification.VerifyBatch(context.Background(), tooMany)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	res, err := h.verification.VerifyBatch(context.Background(), tooMany[:MaxBatchHashes])
	require.NoError(t, err)
	assert.Equal(t, MaxBatchHashes, res.Summary.NotFound)
}

func TestVerificationUseCase_SubmitHashTwice(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	u := h.signup(t, "ada@example.com")
	hash := hashing.HashBytes([]byte("once"))

	res, err := h.verification.SubmitHash(context.Background(), u.ID, hash)
	require.NoError(t, err)
	assert.Equal(t, u.WalletAddress, res.Receipt.Submitter)
	assert.True(t, strings.HasPrefix(res.TransactionURL, "https://explorer.test/tx/0x"))

	_, err = h.verification.SubmitHash(context.Background(), u.ID, hash)
	assert.True(t, errors.Is(err, "HASH_ALREADY_REGISTERED"))

	_, err = h.verification.SubmitHash(context.Background(), u.ID, "zz")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestVerificationUseCase_Browsing(t *testing.T) {
	h := newHarness(t, memoryRegistry())
	u := h.signup(t, "ada@example.com")

	uploaded, err := h.file.Upload(context.Background(), UploadInput{UserID: u.ID, FileName: "a.txt", ContentType: "text/plain", Data: []byte("file")})
	require.NoError(t, err)

	var submitted []string
	for _, body := range []string{"h2", "h3", "h4"} {
		res, err := h.verification.SubmitHash(context.Background(), u.ID, hashing.HashBytes([]byte(body)))
		require.NoError(t, err)
		submitted = append(submitted, res.Receipt.Hash)
	}

	recent, err := h.verification.RecentHashes(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, submitted[1:], recent)

	recent, err = h.verification.RecentHashes(context.Background(), 50)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	index, err := h.verification.HashesBySubmitter(context.Background(), strings.ToLower(u.WalletAddress), "")
	require.NoError(t, err)
	assert.Equal(t, SourceIndex, index.Source)
	assert.Equal(t, []string{uploaded.File.FileHash}, index.Hashes, "submit-only hashes have no file record")

	ledger, err := h.verification.HashesBySubmitter(context.Background(), u.WalletAddress, SourceLedger)
	require.NoError(t, err)
	assert.Equal(t, 4, ledger.Count)
	assert.Subset(t, ledger.Hashes, submitted)
	assert.Equal(t, u.WalletAddress, ledger.Address)

	_, err = h.verification.HashesBySubmitter(context.Background(), "0x123", "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	_, err = h.verification.HashesBySubmitter(context.Background(), u.WalletAddress, "chain")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	stats, err := h.verification.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(4), stats.TotalHashes)
	assert.Equal(t, "memory", stats.Mode)
}
