package blockchain

import (
	"context"
	stderrors "errors"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/service"
	"truthprevails/pkg/errors"
)

// UnavailableRegistry stands in when no ledger is configured. Every call fails with
// SERVICE_UNAVAILABLE so callers handle the missing capability explicitly.
type UnavailableRegistry struct {
	reason error
}

var _ service.HashRegistry = (*UnavailableRegistry)(nil)

func NewUnavailableRegistry(reason string) *UnavailableRegistry {
	return &UnavailableRegistry{reason: stderrors.New(reason)}
}

func (r *UnavailableRegistry) err() error {
	return errors.Unavailable("Blockchain registry", r.reason).WithDetails(r.reason.Error())
}

func (r *UnavailableRegistry) Mode() string {
	return "disabled"
}

func (r *UnavailableRegistry) SubmitHash(ctx context.Context, hash, signerKey string) (*entity.SubmissionReceipt, error) {
	return nil, r.err()
}

func (r *UnavailableRegistry) VerifyHash(ctx context.Context, hash string) (*entity.RegistryEntry, error) {
	return nil, r.err()
}

func (r *UnavailableRegistry) AllHashes(ctx context.Context) ([]string, error) {
	return nil, r.err()
}

func (r *UnavailableRegistry) HashesBySubmitter(ctx context.Context, submitter string) ([]string, error) {
	return nil, r.err()
}

func (r *UnavailableRegistry) RecentHashes(ctx context.Context, n int) ([]string, error) {
	return nil, r.err()
}

func (r *UnavailableRegistry) TotalHashes(ctx context.Context) (uint64, error) {
	return 0, r.err()
}
