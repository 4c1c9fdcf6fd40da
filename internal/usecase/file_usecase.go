package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/internal/domain/service"
	"truthprevails/internal/infrastructure/metrics"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/hashing"
	"truthprevails/pkg/logger"
)

const verificationWarning = "File uploaded but blockchain verification failed. The file is stored with failed verification status."

type FileUseCase struct {
	fileRepo    repository.FileRecordRepository
	storage     service.FileUploadService
	registry    service.HashRegistry
	users       *UserUseCase
	notifier    StatusNotifier
	metrics     *metrics.Metrics
	explorerURL string
}

func NewFileUseCase(
	fileRepo repository.FileRecordRepository,
	storage service.FileUploadService,
	registry service.HashRegistry,
	users *UserUseCase,
	m *metrics.Metrics,
	explorerURL string,
) *FileUseCase {
	return &FileUseCase{
		fileRepo:    fileRepo,
		storage:     storage,
		registry:    registry,
		users:       users,
		notifier:    noopNotifier{},
		metrics:     m,
		explorerURL: explorerURL,
	}
}

func (uc *FileUseCase) SetNotifier(n StatusNotifier) {
	uc.notifier = n
}

type UploadInput struct {
	UserID      string
	FileName    string
	ContentType string
	Data        []byte
}

type VerificationOutcome struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash,omitempty"`
	BlockNumber     int64  `json:"blockNumber,omitempty"`
	TransactionURL  string `json:"transactionUrl,omitempty"`
	Error           string `json:"error,omitempty"`
}

type UploadResult struct {
	FileID       string              `json:"fileId"`
	File         *entity.FileRecord  `json:"file"`
	Verification VerificationOutcome `json:"verification"`
	Warning      string              `json:"warning,omitempty"`
}

// Upload hashes and stores the file, then anchors the hash with the user's wallet. A failed
// anchor leaves the record in the failed state and is reported as a partial success.
func (uc *FileUseCase) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if len(input.Data) == 0 {
		return nil, errors.BadRequest("File is empty", nil)
	}

	hash := hashing.HashBytes(input.Data)

	existing, err := uc.fileRepo.GetByUserAndHash(ctx, input.UserID, hash)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.DuplicateFile(existing.ID, existing.FileName)
	}

	contentType := detectContentType(input.ContentType, input.Data)

	object, err := uc.storage.UploadFile(ctx, bytes.NewReader(input.Data), contentType, input.FileName, "files/"+input.UserID)
	if err != nil {
		if errors.Is(err, "SERVICE_UNAVAILABLE") {
			return nil, err
		}
		return nil, errors.Internal("Failed to store file", err)
	}

	now := time.Now()
	record := &entity.FileRecord{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		FileName:   input.FileName,
		FileHash:   hash,
		FileSize:   int64(len(input.Data)),
		MimeType:   contentType,
		StorageURL: object.URL,
		ObjectName: object.ObjectName,
		Status:     entity.FileStatusPending,
		UploadedAt: now,
		UpdatedAt:  now,
	}

	if err := uc.fileRepo.Create(ctx, record); err != nil {
		uc.discardObject(ctx, object.ObjectName)
		return nil, err
	}

	outcome := uc.anchor(ctx, record)

	if err := uc.fileRepo.Update(ctx, record); err != nil {
		logger.LogFileStatusError(record.ID, "update_status", err)
		return nil, err
	}
	uc.notifier.NotifyFileStatus(record.UserID, record)

	result := &UploadResult{
		FileID:       record.ID,
		File:         record,
		Verification: outcome,
	}
	if !outcome.Success {
		result.Warning = verificationWarning
	}
	return result, nil
}

func (uc *FileUseCase) anchor(ctx context.Context, record *entity.FileRecord) VerificationOutcome {
	fail := func(err error) VerificationOutcome {
		logger.Warn("Verification failed for file %s (%s): %v", record.ID, record.FileHash, err)
		if merr := record.MarkFailed(reasonOf(err)); merr != nil {
			logger.LogFileStatusError(record.ID, "mark_failed", merr)
		}
		return VerificationOutcome{Success: false, Error: record.VerificationError}
	}

	key, err := uc.users.SignerKey(ctx, record.UserID)
	if err != nil {
		return fail(err)
	}

	receipt, err := uc.registry.SubmitHash(ctx, record.FileHash, key)
	uc.metrics.ObserveSubmission(err)
	if err != nil {
		return fail(err)
	}

	if err := record.MarkVerified(receipt); err != nil {
		logger.LogFileStatusError(record.ID, "mark_verified", err)
	}
	logger.Info("File %s anchored in tx %s", record.ID, receipt.TransactionHash)

	return VerificationOutcome{
		Success:         true,
		TransactionHash: receipt.TransactionHash,
		BlockNumber:     record.BlockNumber,
		TransactionURL:  transactionURL(uc.explorerURL, receipt.TransactionHash),
	}
}

type ListFilesInput struct {
	UserID string
	Status entity.FileStatus
	Page   int
	Limit  int
}

func (uc *FileUseCase) ListUserFiles(ctx context.Context, input ListFilesInput) ([]*entity.FileRecord, int64, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, 0, errors.BadRequest(fmt.Sprintf("Unknown status %q", input.Status), nil)
	}

	return uc.fileRepo.ListByUser(ctx, repository.FileRecordQuery{
		UserID: input.UserID,
		Status: input.Status,
		Limit:  input.Limit,
		Offset: (input.Page - 1) * input.Limit,
	})
}

func (uc *FileUseCase) GetFile(ctx context.Context, userID, fileID string) (*entity.FileRecord, error) {
	record, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, errors.Forbidden("You do not have access to this file", nil)
	}
	return record, nil
}

func (uc *FileUseCase) DeleteFile(ctx context.Context, userID, fileID string) error {
	record, err := uc.GetFile(ctx, userID, fileID)
	if err != nil {
		return err
	}

	uc.discardObject(ctx, record.ObjectName)

	if err := uc.fileRepo.Delete(ctx, record); err != nil {
		return err
	}

	logger.Info("File %s deleted by %s", fileID, userID)
	return nil
}

func (uc *FileUseCase) discardObject(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	if err := uc.storage.DeleteFile(ctx, objectName); err != nil {
		logger.Warn("Failed to delete stored object %s: %v", objectName, err)
	}
}

// detectContentType keeps the declared type unless it is missing or generic.
func detectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.Split(declared, ";")[0])
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return mimetype.Detect(data).String()
}

func transactionURL(explorerURL, txHash string) string {
	if explorerURL == "" || txHash == "" {
		return ""
	}
	return strings.TrimRight(explorerURL, "/") + "/tx/" + txHash
}

func reasonOf(err error) string {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		return appErr.Message
	}
	return err.Error()
}
