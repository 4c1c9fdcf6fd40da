package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/internal/domain/service"
	"truthprevails/internal/infrastructure/metrics"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
	"truthprevails/pkg/logger"
)

const (
	MaxBatchHashes   = 100
	batchConcurrency = 8
	submitterLimit   = 1000

	SourceIndex  = "index"
	SourceLedger = "ledger"
)

type VerificationUseCase struct {
	registry    service.HashRegistry
	fileRepo    repository.FileRecordRepository
	users       *UserUseCase
	metrics     *metrics.Metrics
	explorerURL string
}

func NewVerificationUseCase(
	registry service.HashRegistry,
	fileRepo repository.FileRecordRepository,
	users *UserUseCase,
	m *metrics.Metrics,
	explorerURL string,
) *VerificationUseCase {
	return &VerificationUseCase{
		registry:    registry,
		fileRepo:    fileRepo,
		users:       users,
		metrics:     m,
		explorerURL: explorerURL,
	}
}

type FileSummary struct {
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type VerificationResult struct {
	Hash           string       `json:"hash"`
	Exists         bool         `json:"exists"`
	Submitter      string       `json:"submitter"`
	Timestamp      int64        `json:"timestamp"`
	SubmittedAt    *time.Time   `json:"submittedAt,omitempty"`
	TransactionURL string       `json:"transactionUrl,omitempty"`
	FileMetadata   *FileSummary `json:"fileMetadata,omitempty"`
}

type BatchItem struct {
	Hash         string              `json:"hash"`
	Verification *VerificationResult `json:"verification,omitempty"`
	Error        string              `json:"error,omitempty"`
}

type BatchSummary struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	NotFound int `json:"notFound"`
	Errors   int `json:"errors"`
}

type BatchResult struct {
	Results []BatchItem  `json:"results"`
	Summary BatchSummary `json:"summary"`
}

type SubmitResult struct {
	Receipt        *entity.SubmissionReceipt `json:"receipt"`
	TransactionURL string                    `json:"transactionUrl,omitempty"`
}

type SubmitterHashes struct {
	Address string   `json:"address"`
	Source  string   `json:"source"`
	Hashes  []string `json:"hashes"`
	Count   int      `json:"count"`
}

type RegistryStats struct {
	TotalHashes uint64 `json:"totalHashes"`
	Mode        string `json:"mode"`
}

func (uc *VerificationUseCase) VerifyHash(ctx context.Context, hash string) (*VerificationResult, error) {
	normalized, err := hashing.Normalize(hash)
	if err != nil {
		uc.metrics.ObserveVerification("invalid")
		return nil, errors.BadRequest("Invalid hash format", err)
	}

	entry, err := uc.registry.VerifyHash(ctx, normalized)
	if err != nil {
		uc.metrics.ObserveVerification("error")
		return nil, err
	}

	result := &VerificationResult{
		Hash:        normalized,
		Exists:      entry.Exists,
		Submitter:   entry.Submitter,
		Timestamp:   entry.Timestamp,
		SubmittedAt: entry.SubmittedAt(),
	}

	// Off-chain metadata is optional; the ledger answer stands on its own.
	record, err := uc.fileRepo.FindByHash(ctx, normalized)
	if err != nil {
		logger.Warn("Metadata lookup failed for %s: %v", normalized, err)
	}
	if record != nil {
		result.FileMetadata = &FileSummary{
			FileName:   record.FileName,
			FileSize:   record.FileSize,
			MimeType:   record.MimeType,
			UploadedAt: record.UploadedAt,
		}
		result.TransactionURL = transactionURL(uc.explorerURL, record.TransactionHash)
	}

	if result.Exists {
		uc.metrics.ObserveVerification("found")
	} else {
		uc.metrics.ObserveVerification("not_found")
	}
	return result, nil
}

func (uc *VerificationUseCase) VerifyFile(ctx context.Context, data []byte) (*VerificationResult, error) {
	if len(data) == 0 {
		return nil, errors.BadRequest("File is empty", nil)
	}
	return uc.VerifyHash(ctx, hashing.HashBytes(data))
}

// VerifyBatch checks each hash independently. Results keep input order and a failing item never
// affects its siblings.
func (uc *VerificationUseCase) VerifyBatch(ctx context.Context, hashes []string) (*BatchResult, error) {
	if len(hashes) == 0 {
		return nil, errors.BadRequest("At least one hash is required", nil)
	}
	if len(hashes) > MaxBatchHashes {
		return nil, errors.BadRequest("Maximum 100 hashes allowed per batch", nil)
	}

	results := make([]BatchItem, len(hashes))

	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, hash := range hashes {
		i, hash := i, hash
		g.Go(func() error {
			item := BatchItem{Hash: hash}
			verification, err := uc.VerifyHash(ctx, hash)
			if err != nil {
				item.Error = reasonOf(err)
			} else {
				item.Verification = verification
			}
			results[i] = item
			return nil
		})
	}
	_ = g.Wait()

	summary := BatchSummary{Total: len(results)}
	for _, item := range results {
		switch {
		case item.Error != "":
			summary.Errors++
		case item.Verification.Exists:
			summary.Verified++
		default:
			summary.NotFound++
		}
	}

	return &BatchResult{
		Results: results,
		Summary: summary,
	}, nil
}

// SubmitHash anchors a client-computed hash with the user's wallet without storing a file.
func (uc *VerificationUseCase) SubmitHash(ctx context.Context, userID, hash string) (*SubmitResult, error) {
	normalized, err := hashing.Normalize(hash)
	if err != nil {
		return nil, errors.BadRequest("Invalid hash format", err)
	}

	key, err := uc.users.SignerKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.registry.SubmitHash(ctx, normalized, key)
	uc.metrics.ObserveSubmission(err)
	if err != nil {
		return nil, err
	}

	logger.Info("User %s anchored %s in tx %s", userID, normalized, receipt.TransactionHash)

	return &SubmitResult{
		Receipt:        receipt,
		TransactionURL: transactionURL(uc.explorerURL, receipt.TransactionHash),
	}, nil
}

func (uc *VerificationUseCase) RecentHashes(ctx context.Context, count int) ([]string, error) {
	return uc.registry.RecentHashes(ctx, count)
}

// HashesBySubmitter reads the off-chain index by default. The index holds uploaded files only;
// hashes anchored through SubmitHash are visible with SourceLedger, whose scan is linear in the
// registry size.
func (uc *VerificationUseCase) HashesBySubmitter(ctx context.Context, address, source string) (*SubmitterHashes, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.BadRequest("Invalid wallet address", nil)
	}
	checksummed := common.HexToAddress(address).Hex()

	result := &SubmitterHashes{Address: checksummed}

	switch source {
	case "", SourceIndex:
		records, err := uc.fileRepo.ListBySubmitter(ctx, checksummed, submitterLimit)
		if err != nil {
			return nil, err
		}
		result.Source = SourceIndex
		result.Hashes = make([]string, 0, len(records))
		for _, record := range records {
			result.Hashes = append(result.Hashes, record.FileHash)
		}
	case SourceLedger:
		hashes, err := uc.registry.HashesBySubmitter(ctx, checksummed)
		if err != nil {
			return nil, err
		}
		result.Source = SourceLedger
		result.Hashes = hashes
	default:
		return nil, errors.BadRequest("source must be one of: index ledger", nil)
	}

	result.Count = len(result.Hashes)
	return result, nil
}

func (uc *VerificationUseCase) Stats(ctx context.Context) (*RegistryStats, error) {
	total, err := uc.registry.TotalHashes(ctx)
	if err != nil {
		return nil, err
	}
	return &RegistryStats{
		TotalHashes: total,
		Mode:        uc.registry.Mode(),
	}, nil
}
