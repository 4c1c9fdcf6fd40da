package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/pkg/errors"
)

func record(id, user, hash string, at time.Time) *entity.FileRecord {
	return &entity.FileRecord{
		ID:         id,
		UserID:     user,
		FileName:   id + ".txt",
		FileHash:   hash,
		Status:     entity.FileStatusPending,
		UploadedAt: at,
	}
}

func TestMemoryFileRecordRepository_DuplicatePerUser(t *testing.T) {
	repo := NewMemoryFileRecordRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, record("f1", "u1", "h1", now)))
	require.NoError(t, repo.Create(ctx, record("f2", "u2", "h1", now.Add(time.Second))))

	err := repo.Create(ctx, record("f3", "u1", "h1", now.Add(2*time.Second)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, "DUPLICATE_FILE"))

	existing, err := repo.GetByUserAndHash(ctx, "u1", "h1")
	require.NoError(t, err)
	assert.Equal(t, "f1", existing.ID)

	earliest, err := repo.FindByHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "f1", earliest.ID)

	missing, err := repo.FindByHash(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryFileRecordRepository_DeleteReleasesClaim(t *testing.T) {
	repo := NewMemoryFileRecordRepository()
	ctx := context.Background()
	rec := record("f1", "u1", "h1", time.Now())

	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Delete(ctx, rec))
	require.NoError(t, repo.Create(ctx, record("f2", "u1", "h1", time.Now())))

	_, err := repo.GetByID(ctx, "f1")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestMemoryFileRecordRepository_ListByUser(t *testing.T) {
	repo := NewMemoryFileRecordRepository()
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"a", "b", "c", "d"} {
		rec := record(id, "u1", id, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, rec))
	}
	verified, err := repo.GetByID(ctx, "b")
	require.NoError(t, err)
	require.NoError(t, verified.MarkVerified(&entity.SubmissionReceipt{TransactionHash: "0x1", Submitter: "0xabc"}))
	require.NoError(t, repo.Update(ctx, verified))

	page, total, err := repo.ListByUser(ctx, repository.FileRecordQuery{UserID: "u1", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].ID)
	assert.Equal(t, "c", page[1].ID)

	page, total, err = repo.ListByUser(ctx, repository.FileRecordQuery{UserID: "u1", Status: entity.FileStatusVerified})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "b", page[0].ID)

	bySubmitter, err := repo.ListBySubmitter(ctx, "0xABC", 10)
	require.NoError(t, err)
	require.Len(t, bySubmitter, 1)
	assert.Equal(t, "b", bySubmitter[0].ID)

	page, _, err = repo.ListByUser(ctx, repository.FileRecordQuery{UserID: "u1", Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, page)
}
