package service

import (
	"context"
	"io"
)

type UploadedObject struct {
	URL        string
	ObjectName string
	Size       int64
}

type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, fileName, folder string) (*UploadedObject, error)
	DeleteFile(ctx context.Context, objectName string) error
	Provider() string
	Close() error
}
