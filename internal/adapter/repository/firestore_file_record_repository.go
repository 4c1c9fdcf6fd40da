package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/logger"
)

const (
	fileRecordsCollection = "file_records"
	fileClaimsCollection  = "file_hash_claims"
)

type firestoreFileRecordRepository struct {
	client *firestore.Client
}

func NewFirestoreFileRecordRepository(client *firestore.Client) repository.FileRecordRepository {
	return &firestoreFileRecordRepository{
		client: client,
	}
}

type fileClaim struct {
	FileID    string    `firestore:"fileId"`
	FileName  string    `firestore:"fileName"`
	ClaimedAt time.Time `firestore:"claimedAt"`
}

func claimID(userID, hash string) string {
	return fmt.Sprintf("%s_%s", userID, hash)
}

// Create writes the record together with a claim document keyed by (user, hash) so two
// concurrent uploads of the same bytes cannot both land.
func (r *firestoreFileRecordRepository) Create(ctx context.Context, record *entity.FileRecord) error {
	claimRef := r.client.Collection(fileClaimsCollection).Doc(claimID(record.UserID, record.FileHash))
	recordRef := r.client.Collection(fileRecordsCollection).Doc(record.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(claimRef)
		if err == nil && snap.Exists() {
			var existing fileClaim
			if err := snap.DataTo(&existing); err != nil {
				return errors.Internal("Failed to parse file claim", err)
			}
			return errors.DuplicateFile(existing.FileID, existing.FileName)
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Create(claimRef, fileClaim{
			FileID:    record.ID,
			FileName:  record.FileName,
			ClaimedAt: time.Now(),
		}); err != nil {
			return err
		}
		return tx.Create(recordRef, record)
	})
	if err != nil {
		if errors.Is(err, "DUPLICATE_FILE") {
			return err
		}
		return errors.Internal("Failed to create file record", err)
	}
	return nil
}

func (r *firestoreFileRecordRepository) GetByID(ctx context.Context, id string) (*entity.FileRecord, error) {
	doc, err := r.client.Collection(fileRecordsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("File", err)
		}
		return nil, errors.Internal("Failed to get file record", err)
	}

	var record entity.FileRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse file record", err)
	}

	return &record, nil
}

func (r *firestoreFileRecordRepository) GetByUserAndHash(ctx context.Context, userID, hash string) (*entity.FileRecord, error) {
	query := r.client.Collection(fileRecordsCollection).
		Where("userId", "==", userID).
		Where("fileHash", "==", hash).
		Limit(1)

	return r.first(ctx, query)
}

func (r *firestoreFileRecordRepository) FindByHash(ctx context.Context, hash string) (*entity.FileRecord, error) {
	query := r.client.Collection(fileRecordsCollection).
		Where("fileHash", "==", hash).
		OrderBy("uploadedAt", firestore.Asc).
		Limit(1)

	return r.first(ctx, query)
}

func (r *firestoreFileRecordRepository) first(ctx context.Context, query firestore.Query) (*entity.FileRecord, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to query file records", err)
	}

	var record entity.FileRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, errors.Internal("Failed to parse file record", err)
	}

	return &record, nil
}

func (r *firestoreFileRecordRepository) ListByUser(ctx context.Context, q repository.FileRecordQuery) ([]*entity.FileRecord, int64, error) {
	base := r.client.Collection(fileRecordsCollection).Where("userId", "==", q.UserID)
	if q.Status != "" {
		base = base.Where("status", "==", string(q.Status))
	}

	countDocs, err := base.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count files", err)
	}
	total := int64(len(countDocs))

	query := base.OrderBy("uploadedAt", firestore.Desc)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	records, err := r.collect(query.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *firestoreFileRecordRepository) ListBySubmitter(ctx context.Context, address string, limit int) ([]*entity.FileRecord, error) {
	query := r.client.Collection(fileRecordsCollection).
		Where("submitterAddress", "==", address).
		OrderBy("uploadedAt", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return r.collect(query.Documents(ctx))
}

func (r *firestoreFileRecordRepository) collect(iter *firestore.DocumentIterator) ([]*entity.FileRecord, error) {
	defer iter.Stop()

	records := make([]*entity.FileRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate file records", err)
		}

		var record entity.FileRecord
		if err := doc.DataTo(&record); err != nil {
			logger.Error("Failed to parse file record %s: %v", doc.Ref.ID, err)
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}

func (r *firestoreFileRecordRepository) Update(ctx context.Context, record *entity.FileRecord) error {
	record.UpdatedAt = time.Now()
	_, err := r.client.Collection(fileRecordsCollection).Doc(record.ID).Set(ctx, record)
	if err != nil {
		return errors.Internal("Failed to update file record", err)
	}
	return nil
}

func (r *firestoreFileRecordRepository) Delete(ctx context.Context, record *entity.FileRecord) error {
	claimRef := r.client.Collection(fileClaimsCollection).Doc(claimID(record.UserID, record.FileHash))
	recordRef := r.client.Collection(fileRecordsCollection).Doc(record.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Delete(recordRef); err != nil {
			return err
		}
		return tx.Delete(claimRef)
	})
	if err != nil {
		return errors.Internal("Failed to delete file record", err)
	}
	return nil
}
