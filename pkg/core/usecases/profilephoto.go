package usecases

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

// PhotoStorage is the external file store that holds profile photos. The
// domain never touches the bytes beyond validating them.
type PhotoStorage interface {
	StorePhoto(ctx context.Context, userID model.UserID, filename string, data []byte) (url string, err error)
}

// ProfilePhotoUseCase validates and stores a user's profile photo against
// the configured size and extension constraints.
type ProfilePhotoUseCase struct {
	users             db.UserStore
	storage           PhotoStorage
	maxSizeBytes      int64
	allowedExtensions []string
	logger            *zap.Logger
}

// NewProfilePhotoUseCase builds a ProfilePhotoUseCase.
func NewProfilePhotoUseCase(users db.UserStore, storage PhotoStorage, maxSizeBytes int64, allowedExtensions []string, logger *zap.Logger) *ProfilePhotoUseCase {
	return &ProfilePhotoUseCase{
		users:             users,
		storage:           storage,
		maxSizeBytes:      maxSizeBytes,
		allowedExtensions: allowedExtensions,
		logger:            logger,
	}
}

// UpdateProfilePhoto checks the extension and size, confirms the user
// exists, and hands the bytes to storage. Returns the stored photo's URL.
func (u *ProfilePhotoUseCase) UpdateProfilePhoto(ctx context.Context, userID model.UserID, filename string, data []byte) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !u.extensionAllowed(ext) {
		return "", model.NewInvalidInput(fmt.Sprintf("photo extension %q is not allowed", ext))
	}
	if int64(len(data)) > u.maxSizeBytes {
		return "", model.NewInvalidInput(fmt.Sprintf("photo exceeds the maximum size of %d bytes", u.maxSizeBytes))
	}
	if len(data) == 0 {
		return "", model.NewInvalidInput("photo is empty")
	}

	if _, err := u.users.GetUser(ctx, userID); err != nil {
		return "", fmt.Errorf("failed to fetch user: %w", err)
	}

	url, err := u.storage.StorePhoto(ctx, userID, filename, data)
	if err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	u.logger.Info("Updated profile photo",
		zap.String("user_id", userID.String()),
		zap.Int("size_bytes", len(data)))

	return url, nil
}

func (u *ProfilePhotoUseCase) extensionAllowed(ext string) bool {
	for _, allowed := range u.allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
