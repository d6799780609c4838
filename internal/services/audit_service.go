package services

import (
	"context"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"
)

// ===========================================================================
// Audit Service Interface
// Ghi và truy vấn nhật ký audit - append-only
// ===========================================================================

// Audit action tags - mỗi mutation có một tag cố định
const (
	ActionCreateWorkspace   = "CREATE_WORKSPACE"
	ActionUpdateWorkspace   = "UPDATE_WORKSPACE"
	ActionDeleteWorkspace   = "DELETE_WORKSPACE"
	ActionAddZaloGroup      = "ADD_ZALO_GROUP"
	ActionRemoveZaloGroup   = "REMOVE_ZALO_GROUP"
	ActionUpdateGroupAgent  = "UPDATE_GROUP_AGENT"
	ActionAssignUserRole    = "ASSIGN_USER_ROLE"
	ActionUpdateUserRole    = "UPDATE_USER_ROLE"
	ActionRemoveUserRole    = "REMOVE_USER_ROLE"
	ActionCreateUser        = "CREATE_USER"
	ActionUpdateUser        = "UPDATE_USER"
	ActionDeleteUser        = "DELETE_USER"
	ActionCreateAgent       = "CREATE_AGENT"
	ActionUpdateAgent       = "UPDATE_AGENT"
	ActionDeleteAgent       = "DELETE_AGENT"
	ActionAssignAgent       = "ASSIGN_AGENT_TO_WORKSPACE"
	ActionUpdateAgentConfig = "UPDATE_AGENT_CONFIG"
	ActionCreateAccount     = "CREATE_ACCOUNT"
	ActionUpdateAccount     = "UPDATE_ACCOUNT"
	ActionDeleteAccount     = "DELETE_ACCOUNT"
)

// AuditEntry dữ liệu đầu vào cho một dòng audit
type AuditEntry struct {
	WorkspaceID  *string
	UserID       *string
	Action       string
	EntityType   string
	EntityID     *string
	OldValue     models.JSONMap
	NewValue     models.JSONMap
	IPAddress    *string
	Status       models.AuditStatus
	ErrorMessage *string
}

// AuditService interface cho audit operations
type AuditService interface {
	// Log ghi một dòng audit
	// Lỗi ở đây propagate - audit là bắt buộc, không phải best-effort
	Log(ctx context.Context, entry AuditEntry) error

	// ListByWorkspace lấy audit logs của workspace
	ListByWorkspace(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.AuditLog, int64, error)

	// ListByUser lấy audit logs của user
	ListByUser(ctx context.Context, userID string, opts repositories.FindOptions) ([]models.AuditLog, int64, error)

	// ListByEntity lấy lịch sử thay đổi của một entity
	ListByEntity(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error)

	// List lấy toàn bộ audit logs, filter substring theo action nếu có
	List(ctx context.Context, action string, opts repositories.FindOptions) ([]models.AuditLog, int64, error)
}
