package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/pkg/errors"
)

// memoryFileRecordRepository backs development runs without Firestore and the use case tests.
type memoryFileRecordRepository struct {
	mu      sync.RWMutex
	records map[string]*entity.FileRecord
	claims  map[string]string
}

func NewMemoryFileRecordRepository() repository.FileRecordRepository {
	return &memoryFileRecordRepository{
		records: make(map[string]*entity.FileRecord),
		claims:  make(map[string]string),
	}
}

func (r *memoryFileRecordRepository) Create(ctx context.Context, record *entity.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := claimID(record.UserID, record.FileHash)
	if id, ok := r.claims[key]; ok {
		existing := r.records[id]
		return errors.DuplicateFile(existing.ID, existing.FileName)
	}

	r.claims[key] = record.ID
	r.records[record.ID] = clone(record)
	return nil
}

func (r *memoryFileRecordRepository) GetByID(ctx context.Context, id string) (*entity.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, errors.NotFound("File", nil)
	}
	return clone(record), nil
}

func (r *memoryFileRecordRepository) GetByUserAndHash(ctx context.Context, userID, hash string) (*entity.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.claims[claimID(userID, hash)]
	if !ok {
		return nil, nil
	}
	return clone(r.records[id]), nil
}

func (r *memoryFileRecordRepository) FindByHash(ctx context.Context, hash string) (*entity.FileRecord, error) {
	matches := r.filter(func(rec *entity.FileRecord) bool { return rec.FileHash == hash })
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *memoryFileRecordRepository) ListByUser(ctx context.Context, q repository.FileRecordQuery) ([]*entity.FileRecord, int64, error) {
	matches := r.filter(func(rec *entity.FileRecord) bool {
		return rec.UserID == q.UserID && (q.Status == "" || rec.Status == q.Status)
	})
	total := int64(len(matches))

	// newest first, like the Firestore query
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	if q.Offset >= len(matches) {
		return []*entity.FileRecord{}, total, nil
	}
	matches = matches[q.Offset:]
	if q.Limit > 0 && len(matches) > q.Limit {
		matches = matches[:q.Limit]
	}

	return matches, total, nil
}

func (r *memoryFileRecordRepository) ListBySubmitter(ctx context.Context, address string, limit int) ([]*entity.FileRecord, error) {
	matches := r.filter(func(rec *entity.FileRecord) bool {
		return rec.SubmitterAddress != "" && strings.EqualFold(rec.SubmitterAddress, address)
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *memoryFileRecordRepository) Update(ctx context.Context, record *entity.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return errors.NotFound("File", nil)
	}
	record.UpdatedAt = time.Now()
	r.records[record.ID] = clone(record)
	return nil
}

func (r *memoryFileRecordRepository) Delete(ctx context.Context, record *entity.FileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, record.ID)
	delete(r.claims, claimID(record.UserID, record.FileHash))
	return nil
}

// filter returns copies ordered by upload time, oldest first.
func (r *memoryFileRecordRepository) filter(match func(*entity.FileRecord) bool) []*entity.FileRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.FileRecord, 0)
	for _, rec := range r.records {
		if match(rec) {
			out = append(out, clone(rec))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out
}

func clone(record *entity.FileRecord) *entity.FileRecord {
	c := *record
	return &c
}
