package services

import (
	"context"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/google/uuid"
)

// ===========================================================================
// Workspace Service Interface
// Quản lý workspace, nhóm chat, và phân quyền thành viên
// ===========================================================================

// CreateWorkspaceInput dữ liệu tạo workspace
type CreateWorkspaceInput struct {
	// ID tùy chọn - để trống thì tự generate
	ID          string
	Name        string
	Description string
}

// UpdateWorkspaceInput dữ liệu cập nhật workspace - nil nghĩa là không đổi
type UpdateWorkspaceInput struct {
	Name        *string
	Description *string
	Status      *models.WorkspaceStatus
}

// AddGroupInput dữ liệu gắn nhóm chat vào workspace
type AddGroupInput struct {
	WorkspaceID string
	ThreadID    string
	Name        string

	// AgentKey tùy chọn - gán agent cho nhóm ngay khi tạo
	AgentKey *string
}

// AssignRoleInput dữ liệu gán role cho user trong workspace
type AssignRoleInput struct {
	WorkspaceID string
	UserID      uuid.UUID
	Role        models.Role

	// AssignedBy ai thực hiện thao tác (optional, cho audit)
	AssignedBy *string
}

// WorkspaceService interface cho workspace operations
type WorkspaceService interface {
	// Create tạo workspace mới
	Create(ctx context.Context, input CreateWorkspaceInput) (*models.Workspace, error)

	// Get lấy workspace theo ID
	Get(ctx context.Context, id string) (*models.Workspace, error)

	// List lấy danh sách workspaces với phân trang
	List(ctx context.Context, opts repositories.FindOptions) ([]models.Workspace, int64, error)

	// Update cập nhật workspace
	Update(ctx context.Context, id string, input UpdateWorkspaceInput) (*models.Workspace, error)

	// Delete xóa workspace và mọi dữ liệu phụ thuộc
	Delete(ctx context.Context, id string) error

	// Search fuzzy search workspace theo tên
	Search(ctx context.Context, name string, threshold float64, limit int) ([]repositories.WorkspaceSearchResult, int64, error)

	// AddGroup gắn nhóm chat vào workspace
	// Từ chối nếu thread_id đã thuộc nhóm khác
	AddGroup(ctx context.Context, input AddGroupInput) (*models.ZaloGroup, error)

	// RemoveGroup gỡ nhóm chat khỏi workspace
	RemoveGroup(ctx context.Context, workspaceID string, groupID uuid.UUID) error

	// SetGroupAgent thay agent của nhóm chat
	// agentKey rỗng nghĩa là gỡ agent
	SetGroupAgent(ctx context.Context, workspaceID string, groupID uuid.UUID, agentKey string) (*models.ZaloGroup, error)

	// ListGroups lấy danh sách nhóm trong workspace
	ListGroups(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.ZaloGroup, int64, error)

	// AssignRole gán role cho user trong workspace (upsert)
	// Gán lại cho cặp đã tồn tại sẽ update role, không tạo dòng mới
	AssignRole(ctx context.Context, input AssignRoleInput) (*models.WorkspaceUserRole, error)

	// RemoveMember gỡ user khỏi workspace
	RemoveMember(ctx context.Context, workspaceID string, userID uuid.UUID) error

	// ListMembers lấy danh sách thành viên kèm role
	ListMembers(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.WorkspaceUserRole, int64, error)
}
