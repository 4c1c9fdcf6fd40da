package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"truthprevails/internal/domain/service"
)

// MemoryStore keeps objects in process. Development only; contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ service.FileUploadService = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Provider() string {
	return "memory"
}

func (s *MemoryStore) UploadFile(ctx context.Context, file io.Reader, fileType, fileName, folder string) (*service.UploadedObject, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %v", err)
	}

	objectName := objectNameFor(folder, fileName, fileType)

	s.mu.Lock()
	s.objects[objectName] = data
	s.mu.Unlock()

	return &service.UploadedObject{
		URL:        "memory://" + objectName,
		ObjectName: objectName,
		Size:       int64(len(data)),
	}, nil
}

func (s *MemoryStore) DeleteFile(ctx context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[objectName]; !ok {
		return fmt.Errorf("object %s not found", objectName)
	}
	delete(s.objects, objectName)
	return nil
}

func (s *MemoryStore) Object(objectName string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[objectName]
	return data, ok
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *MemoryStore) Close() error {
	return nil
}
