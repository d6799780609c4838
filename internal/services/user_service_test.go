package services

import (
	"context"
	"testing"

	apperrors "agenthub-gin/internal/errors"
	"agenthub-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================================================================
// User Service Tests
// ===========================================================================

// Idempotency: tạo lần hai với cùng zalo_id trả về record cũ nguyên vẹn
func TestCreateOrGet_Idempotent(t *testing.T) {
	env := setupEnv(t, nil)

	first, created, err := env.users.CreateOrGet(context.Background(), CreateUserInput{
		ZaloID:   "u-42",
		FullName: "Nguyễn Văn A",
	})
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := env.users.CreateOrGet(context.Background(), CreateUserInput{
		ZaloID:   "u-42",
		FullName: "Tên Khác Hoàn Toàn",
	})
	require.NoError(t, err)
	assert.False(t, created)

	// Cùng record, profile không bị ghi đè
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Nguyễn Văn A", second.FullName)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("zalo_id = ?", "u-42").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrGet_RequiresZaloID(t *testing.T) {
	env := setupEnv(t, nil)

	_, _, err := env.users.CreateOrGet(context.Background(), CreateUserInput{ZaloID: "   "})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestUserUpdate(t *testing.T) {
	env := setupEnv(t, nil)

	user, _, err := env.users.CreateOrGet(context.Background(), CreateUserInput{
		ZaloID:   "u-7",
		FullName: "Cũ",
	})
	require.NoError(t, err)

	newName := "Mới"
	updated, err := env.users.Update(context.Background(), user.ID, UpdateUserInput{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Mới", updated.FullName)
	// zalo_id immutable qua Update
	assert.Equal(t, "u-7", updated.ZaloID)
}

func TestUserDelete(t *testing.T) {
	env := setupEnv(t, nil)

	user, _, err := env.users.CreateOrGet(context.Background(), CreateUserInput{ZaloID: "u-9"})
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(context.Background(), user.ID))

	_, err = env.users.Get(context.Background(), user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	// zalo_id được giải phóng - tạo lại là record mới
	again, created, err := env.users.CreateOrGet(context.Background(), CreateUserInput{ZaloID: "u-9"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, user.ID, again.ID)
}
