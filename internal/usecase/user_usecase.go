package usecase

import (
	"context"
	"net/http"

	"truthprevails/internal/domain/entity"
	"truthprevails/internal/domain/repository"
	"truthprevails/internal/domain/service"
	"truthprevails/pkg/errors"
	"truthprevails/pkg/logger"
	"truthprevails/pkg/wallet"
)

const deletePageSize = 100

type UserUseCase struct {
	userRepo     repository.UserRepository
	fileRepo     repository.FileRecordRepository
	storage      service.FileUploadService
	identity     IdentityProvider
	walletSecret string
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	fileRepo repository.FileRecordRepository,
	storage service.FileUploadService,
	identity IdentityProvider,
	walletSecret string,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		fileRepo:     fileRepo,
		storage:      storage,
		identity:     identity,
		walletSecret: walletSecret,
	}
}

type UpdateProfileInput struct {
	Name string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.identity.UpdateDisplayName(ctx, uid, input.Name); err != nil {
		logger.Warn("Failed to sync display name for %s: %v", uid, err)
	}

	return user, nil
}

func (uc *UserUseCase) GetWalletAddress(ctx context.Context, uid string) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return "", err
	}
	return user.WalletAddress, nil
}

// SignerKey unseals the user's wallet and returns the hex private key used to sign submissions.
func (uc *UserUseCase) SignerKey(ctx context.Context, uid string) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return "", err
	}
	if user.EncryptedWallet == "" {
		return "", errors.New("WALLET_UNAVAILABLE", "User has no wallet", http.StatusUnprocessableEntity, nil)
	}

	info, err := wallet.Decrypt(user.EncryptedWallet, uc.walletSecret)
	if err != nil {
		return "", errors.Internal("Failed to unlock wallet", err)
	}
	return info.PrivateKey, nil
}

// DeleteAccount removes the user's files, identity and account document, in that order.
// Object deletion is best effort; a failure there never keeps the account alive.
func (uc *UserUseCase) DeleteAccount(ctx context.Context, uid string) error {
	if _, err := uc.userRepo.GetByID(ctx, uid); err != nil {
		return err
	}

	removed := 0
	for {
		records, _, err := uc.fileRepo.ListByUser(ctx, repository.FileRecordQuery{UserID: uid, Limit: deletePageSize})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			break
		}

		for _, record := range records {
			if record.ObjectName != "" {
				if err := uc.storage.DeleteFile(ctx, record.ObjectName); err != nil {
					logger.LogFileStatusError(record.ID, "delete_object", err)
				}
			}
			if err := uc.fileRepo.Delete(ctx, record); err != nil {
				return err
			}
			removed++
		}
	}

	if err := uc.identity.DeleteUser(ctx, uid); err != nil {
		return errors.Internal("Failed to delete identity", err)
	}

	if err := uc.userRepo.Delete(ctx, uid); err != nil {
		return err
	}

	logger.Info("Deleted account %s with %d files", uid, removed)
	return nil
}
