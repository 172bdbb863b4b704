package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"treelot/pkg/core/model"
	"treelot/pkg/db"
)

type fakePhotoStorage struct {
	stored map[model.UserID][]byte
}

func (f *fakePhotoStorage) StorePhoto(_ context.Context, userID model.UserID, filename string, data []byte) (string, error) {
	if f.stored == nil {
		f.stored = make(map[model.UserID][]byte)
	}
	f.stored[userID] = data
	return "https://photos.example.com/" + filename, nil
}

func newPhotoFixture(t *testing.T) (*ProfilePhotoUseCase, *fakePhotoStorage) {
	t.Helper()
	storage := &fakePhotoStorage{}
	uc := NewProfilePhotoUseCase(
		db.NewMemoryUserStore(scoutUser("scout-1", "Sam")),
		storage, 1024, []string{"jpg", "jpeg", "png"}, zap.NewNop())
	return uc, storage
}

func TestUpdateProfilePhoto_Success(t *testing.T) {
	ctx := context.Background()
	uc, storage := newPhotoFixture(t)

	url, err := uc.UpdateProfilePhoto(ctx, "scout-1", "me.PNG", []byte("image-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://photos.example.com/me.PNG", url)
	assert.Equal(t, []byte("image-bytes"), storage.stored["scout-1"])
}

func TestUpdateProfilePhoto_BadExtension(t *testing.T) {
	ctx := context.Background()
	uc, storage := newPhotoFixture(t)

	_, err := uc.UpdateProfilePhoto(ctx, "scout-1", "me.gif", []byte("image-bytes"))
	assert.True(t, model.IsInvalidInput(err))
	assert.Empty(t, storage.stored)
}

func TestUpdateProfilePhoto_TooLarge(t *testing.T) {
	ctx := context.Background()
	uc, storage := newPhotoFixture(t)

	_, err := uc.UpdateProfilePhoto(ctx, "scout-1", "me.jpg", make([]byte, 2048))
	assert.True(t, model.IsInvalidInput(err))
	assert.Empty(t, storage.stored)
}

func TestUpdateProfilePhoto_UnknownUser(t *testing.T) {
	ctx := context.Background()
	uc, _ := newPhotoFixture(t)

	_, err := uc.UpdateProfilePhoto(ctx, "ghost", "me.jpg", []byte("image-bytes"))
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
