package storage

import (
	"context"
	stderrors "errors"
	"io"

	"truthprevails/internal/domain/service"
	"truthprevails/pkg/errors"
)

// UnavailableStore is used when no object store is configured.
type UnavailableStore struct {
	reason error
}

var _ service.FileUploadService = (*UnavailableStore)(nil)

func NewUnavailableStore(reason string) *UnavailableStore {
	return &UnavailableStore{reason: stderrors.New(reason)}
}

func (s *UnavailableStore) Provider() string {
	return "disabled"
}

func (s *UnavailableStore) UploadFile(ctx context.Context, file io.Reader, fileType, fileName, folder string) (*service.UploadedObject, error) {
	return nil, errors.Unavailable("File storage", s.reason).WithDetails(s.reason.Error())
}

func (s *UnavailableStore) DeleteFile(ctx context.Context, objectName string) error {
	return errors.Unavailable("File storage", s.reason).WithDetails(s.reason.Error())
}

func (s *UnavailableStore) Close() error {
	return nil
}
