package services

import (
	"context"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/google/uuid"
)

// ===========================================================================
// User Service Interface
// Quản lý user - identity đã được chat platform xác thực
// ===========================================================================

// CreateUserInput dữ liệu tạo user
type CreateUserInput struct {
	ZaloID   string
	FullName string
	Email    *string
	Phone    *string
	Gender   *string
}

// UpdateUserInput dữ liệu cập nhật user - nil nghĩa là không đổi
type UpdateUserInput struct {
	FullName *string
	Email    *string
	Phone    *string
	Gender   *string
	Status   *string
}

// UserService interface cho user operations
type UserService interface {
	// CreateOrGet tạo user mới hoặc trả về user đã tồn tại với cùng zalo_id
	// Idempotent: gọi lần hai với cùng zalo_id không tạo record mới
	// Trả về (user, created, error)
	CreateOrGet(ctx context.Context, input CreateUserInput) (*models.User, bool, error)

	// Get lấy user theo ID
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByZaloID lấy user theo zalo_id
	GetByZaloID(ctx context.Context, zaloID string) (*models.User, error)

	// List lấy danh sách users với phân trang
	List(ctx context.Context, opts repositories.FindOptions) ([]models.User, int64, error)

	// Update cập nhật profile user
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error)

	// Delete xóa user
	Delete(ctx context.Context, id uuid.UUID) error
}
