package services

import (
	"context"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/google/uuid"
)

// ===========================================================================
// Account Service Interface
// Quản lý tài khoản liên kết của workspace
// ===========================================================================

// CreateAccountInput dữ liệu tạo account
type CreateAccountInput struct {
	WorkspaceID string
	Type        string
	ReferenceID *string
	Metadata    models.JSONMap
}

// UpdateAccountInput dữ liệu cập nhật account - nil nghĩa là không đổi
type UpdateAccountInput struct {
	Type        *string
	ReferenceID *string
	Metadata    models.JSONMap
}

// AccountService interface cho account operations
type AccountService interface {
	// Create tạo account mới trong workspace
	Create(ctx context.Context, input CreateAccountInput) (*models.Account, error)

	// Get lấy account theo ID
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// ListByWorkspace lấy danh sách accounts trong workspace
	ListByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.Account, int64, error)

	// Update cập nhật account
	Update(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*models.Account, error)

	// Delete xóa account
	Delete(ctx context.Context, id uuid.UUID) error
}
