package usecase

import (
	"context"

	"truthprevails/internal/domain/entity"
)

type IdentityProvider interface {
	Name() string
	CreateUser(ctx context.Context, email, password, displayName string) (*entity.CreatedIdentity, error)
	VerifyToken(ctx context.Context, token string) (*entity.Identity, error)
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	DeleteUser(ctx context.Context, uid string) error
}

// StatusNotifier pushes file status changes to the owner's live connections.
type StatusNotifier interface {
	NotifyFileStatus(userID string, record *entity.FileRecord)
}

type noopNotifier struct{}

func (noopNotifier) NotifyFileStatus(string, *entity.FileRecord) {}
