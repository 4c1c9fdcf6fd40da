package service

import (
	"context"

	"truthprevails/internal/domain/entity"
)

// HashRegistry is the append-only hash ledger. A hash moves from absent to present exactly once.
type HashRegistry interface {
	// SubmitHash records hash with the account behind signerKey (hex private key) as submitter.
	// Resubmitting a present hash fails with HASH_ALREADY_REGISTERED.
	SubmitHash(ctx context.Context, hash, signerKey string) (*entity.SubmissionReceipt, error)
	// VerifyHash never reports absence as an error.
	VerifyHash(ctx context.Context, hash string) (*entity.RegistryEntry, error)
	AllHashes(ctx context.Context) ([]string, error)
	HashesBySubmitter(ctx context.Context, submitter string) ([]string, error)
	// RecentHashes returns the last n hashes in submission order, clamped to the total.
	RecentHashes(ctx context.Context, n int) ([]string, error)
	TotalHashes(ctx context.Context) (uint64, error)
	Mode() string
}
