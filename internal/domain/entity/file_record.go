package entity

import (
	"errors"
	"time"
)

type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusVerified FileStatus = "verified"
	FileStatusFailed   FileStatus = "failed"
)

var ErrInvalidStatusTransition = errors.New("file status can only move out of pending")

func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusPending, FileStatusVerified, FileStatusFailed:
		return true
	}
	return false
}

type FileRecord struct {
	ID         string `json:"id" firestore:"id"`
	UserID     string `json:"userId" firestore:"userId"`
	FileName   string `json:"fileName" firestore:"fileName"`
	FileHash   string `json:"fileHash" firestore:"fileHash"`
	FileSize   int64  `json:"fileSize" firestore:"fileSize"`
	MimeType   string `json:"mimeType" firestore:"mimeType"`
	StorageURL string `json:"storageUrl,omitempty" firestore:"storageUrl"`
	ObjectName string `json:"-" firestore:"objectName"`

	Status            FileStatus `json:"status" firestore:"status"`
	TransactionHash   string     `json:"transactionHash,omitempty" firestore:"transactionHash,omitempty"`
	BlockNumber       int64      `json:"blockNumber,omitempty" firestore:"blockNumber,omitempty"`
	SubmitterAddress  string     `json:"submitterAddress,omitempty" firestore:"submitterAddress,omitempty"`
	VerificationError string     `json:"verificationError,omitempty" firestore:"verificationError,omitempty"`

	UploadedAt time.Time `json:"uploadedAt" firestore:"uploadedAt"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (f *FileRecord) MarkVerified(receipt *SubmissionReceipt) error {
	if f.Status != FileStatusPending {
		return ErrInvalidStatusTransition
	}
	f.Status = FileStatusVerified
	f.TransactionHash = receipt.TransactionHash
	f.BlockNumber = int64(receipt.BlockNumber)
	f.SubmitterAddress = receipt.Submitter
	f.VerificationError = ""
	f.UpdatedAt = time.Now()
	return nil
}

func (f *FileRecord) MarkFailed(reason string) error {
	if f.Status != FileStatusPending {
		return ErrInvalidStatusTransition
	}
	f.Status = FileStatusFailed
	f.VerificationError = reason
	f.UpdatedAt = time.Now()
	return nil
}
