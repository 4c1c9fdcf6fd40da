package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"truthprevails/internal/adapter/repository"
	"truthprevails/internal/domain/entity"
	domainrepo "truthprevails/internal/domain/repository"
	"truthprevails/internal/domain/service"
	"truthprevails/internal/infrastructure/blockchain"
	"truthprevails/internal/infrastructure/metrics"
	"truthprevails/internal/infrastructure/storage"
)

const testSecret = "test-wallet-secret"

type fakeIdentity struct {
	mu      sync.Mutex
	users   map[string]string
	deleted []string
	renamed map[string]string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]string{}, renamed: map[string]string{}}
}

func (f *fakeIdentity) Name() string { return "fake" }

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (*entity.CreatedIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid := uuid.New().String()
	f.users[uid] = email
	return &entity.CreatedIdentity{UID: uid, Token: "token-" + uid}, nil
}

func (f *fakeIdentity) VerifyToken(ctx context.Context, token string) (*entity.Identity, error) {
	return nil, fmt.Errorf("not supported")
}

func (f *fakeIdentity) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renamed[uid] = displayName
	return nil
}

func (f *fakeIdentity) DeleteUser(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Provider() string { return "fake" }

func (s *fakeStore) UploadFile(ctx context.Context, file io.Reader, fileType, fileName, folder string) (*service.UploadedObject, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	name := folder + "/" + uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
	return &service.UploadedObject{URL: "https://objects.test/" + name, ObjectName: name, Size: int64(len(data))}, nil
}

func (s *fakeStore) DeleteFile(ctx context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.FileStatus
}

func (n *recordingNotifier) NotifyFileStatus(userID string, record *entity.FileRecord) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, record.Status)
}

type harness struct {
	users        domainrepo.UserRepository
	files        domainrepo.FileRecordRepository
	store        *fakeStore
	identity     *fakeIdentity
	registry     service.HashRegistry
	notifier     *recordingNotifier
	auth         *AuthUseCase
	user         *UserUseCase
	file         *FileUseCase
	verification *VerificationUseCase
}

func newHarness(t *testing.T, registry service.HashRegistry) *harness {
	t.Helper()

	h := &harness{
		users:    repository.NewMemoryUserRepository(),
		files:    repository.NewMemoryFileRecordRepository(),
		store:    newFakeStore(),
		identity: newFakeIdentity(),
		registry: registry,
		notifier: &recordingNotifier{},
	}
	m := metrics.New(prometheus.NewRegistry())

	h.auth = NewAuthUseCase(h.users, h.identity, testSecret)
	h.user = NewUserUseCase(h.users, h.files, h.store, h.identity, testSecret)
	h.file = NewFileUseCase(h.files, h.store, registry, h.user, m, "https://explorer.test")
	h.file.SetNotifier(h.notifier)
	h.verification = NewVerificationUseCase(registry, h.files, h.user, m, "https://explorer.test")
	return h
}

func (h *harness) signup(t *testing.T, email string) *entity.User {
	t.Helper()
	res, err := h.auth.Signup(context.Background(), SignupInput{Name: "Test", Email: email, Password: "password123"})
	require.NoError(t, err)
	return res.User
}

func unavailableStore() service.FileUploadService {
	return storage.NewUnavailableStore("no bucket configured")
}

func memoryRegistry() service.HashRegistry {
	return blockchain.NewMemoryRegistry()
}
