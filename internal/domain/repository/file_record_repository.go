package repository

import (
	"context"

	"truthprevails/internal/domain/entity"
)

type FileRecordQuery struct {
	UserID string
	Status entity.FileStatus
	Limit  int
	Offset int
}

type FileRecordRepository interface {
	// Create fails with a DUPLICATE_FILE error when the user already owns a record with the same hash.
	Create(ctx context.Context, record *entity.FileRecord) error
	GetByID(ctx context.Context, id string) (*entity.FileRecord, error)
	// GetByUserAndHash and FindByHash return nil, nil when nothing matches.
	GetByUserAndHash(ctx context.Context, userID, hash string) (*entity.FileRecord, error)
	// FindByHash returns the earliest upload of hash across all users.
	FindByHash(ctx context.Context, hash string) (*entity.FileRecord, error)
	ListByUser(ctx context.Context, query FileRecordQuery) ([]*entity.FileRecord, int64, error)
	ListBySubmitter(ctx context.Context, address string, limit int) ([]*entity.FileRecord, error)
	Update(ctx context.Context, record *entity.FileRecord) error
	Delete(ctx context.Context, record *entity.FileRecord) error
}
