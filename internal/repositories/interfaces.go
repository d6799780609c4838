package repositories

import (
	"context"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Workspace Repository Interface
// Quản lý CRUD cho workspaces
// ===========================================================================

// WorkspaceSearchResult kết quả fuzzy search kèm điểm tương đồng
type WorkspaceSearchResult struct {
	models.Workspace
	Similarity float64 `json:"similarity"`
}

// WorkspaceRepository interface cho workspace data access
type WorkspaceRepository interface {
	// FindByID tìm workspace theo ID
	FindByID(ctx context.Context, id string) (*models.Workspace, error)

	// List lấy danh sách workspaces với phân trang
	List(ctx context.Context, opts FindOptions) ([]models.Workspace, int64, error)

	// Create tạo workspace mới
	Create(ctx context.Context, workspace *models.Workspace) error

	// Update cập nhật workspace
	Update(ctx context.Context, workspace *models.Workspace) error

	// DeleteCascade xóa workspace và mọi dữ liệu phụ thuộc
	// (roles, groups, accounts, agent configs) trong một transaction
	DeleteCascade(ctx context.Context, id string) error

	// SearchByName fuzzy search theo tên dùng trigram similarity
	// Fallback sang ILIKE nếu pg_trgm không khả dụng
	SearchByName(ctx context.Context, name string, threshold float64, limit int) ([]WorkspaceSearchResult, int64, error)
}

// ===========================================================================
// User Repository Interface
// Quản lý CRUD cho users
// ===========================================================================

// UserRepository interface cho user data access
type UserRepository interface {
	// FindByID tìm user theo ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// FindByZaloID tìm user theo zalo_id (external identity)
	FindByZaloID(ctx context.Context, zaloID string) (*models.User, error)

	// List lấy danh sách users với phân trang
	List(ctx context.Context, opts FindOptions) ([]models.User, int64, error)

	// Create tạo user mới
	Create(ctx context.Context, user *models.User) error

	// Update cập nhật user
	Update(ctx context.Context, user *models.User) error

	// Delete xóa user
	Delete(ctx context.Context, id uuid.UUID) error
}

// ===========================================================================
// ZaloGroup Repository Interface
// Quản lý CRUD cho nhóm chat Zalo
// ===========================================================================

// ZaloGroupRepository interface cho zalo group data access
type ZaloGroupRepository interface {
	// FindByID tìm nhóm theo ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.ZaloGroup, error)

	// FindByThreadID tìm nhóm theo thread_id
	// Đây luôn là relational lookup - graph store không bao giờ
	// authoritative cho bước này
	FindByThreadID(ctx context.Context, threadID string) (*models.ZaloGroup, error)

	// FindByWorkspace lấy danh sách nhóm trong workspace
	FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.ZaloGroup, int64, error)

	// Create tạo nhóm mới
	Create(ctx context.Context, group *models.ZaloGroup) error

	// Update cập nhật nhóm
	Update(ctx context.Context, group *models.ZaloGroup) error

	// Delete xóa nhóm
	Delete(ctx context.Context, id uuid.UUID) error
}

// ===========================================================================
// Agent Repository Interface
// Quản lý CRUD cho agents và workspace agent configs
// ===========================================================================

// AgentRepository interface cho agent data access
type AgentRepository interface {
	// FindByKey tìm agent theo key
	FindByKey(ctx context.Context, key string) (*models.Agent, error)

	// List lấy danh sách agents với phân trang
	List(ctx context.Context, opts FindOptions) ([]models.Agent, int64, error)

	// Create tạo agent mới
	Create(ctx context.Context, agent *models.Agent) error

	// Update cập nhật agent
	Update(ctx context.Context, agent *models.Agent) error

	// Delete xóa agent
	Delete(ctx context.Context, key string) error

	// CountConfigs đếm số workspace config đang tham chiếu agent
	// Dùng cho referential guard trước khi xóa
	CountConfigs(ctx context.Context, key string) (int64, error)
}

// AgentConfigRepository interface cho workspace agent config data access
type AgentConfigRepository interface {
	// FindByID tìm config theo ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.WorkspaceAgentConfig, error)

	// FindByWorkspaceAndAgent tìm config theo cặp (workspace, agent)
	FindByWorkspaceAndAgent(ctx context.Context, workspaceID, agentKey string) (*models.WorkspaceAgentConfig, error)

	// FindByWorkspace lấy mọi config của workspace
	FindByWorkspace(ctx context.Context, workspaceID string) ([]models.WorkspaceAgentConfig, error)

	// Create tạo config mới
	Create(ctx context.Context, config *models.WorkspaceAgentConfig) error

	// Update cập nhật config
	Update(ctx context.Context, config *models.WorkspaceAgentConfig) error
}

// ===========================================================================
// Account Repository Interface
// Quản lý CRUD cho accounts
// ===========================================================================

// AccountRepository interface cho account data access
type AccountRepository interface {
	// FindByID tìm account theo ID
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)

	// FindByWorkspace lấy danh sách accounts trong workspace
	FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.Account, int64, error)

	// Create tạo account mới
	Create(ctx context.Context, account *models.Account) error

	// Update cập nhật account
	Update(ctx context.Context, account *models.Account) error

	// Delete xóa account
	Delete(ctx context.Context, id uuid.UUID) error
}

// ===========================================================================
// Role Repository Interface
// Quản lý phân quyền (workspace, user) -> role
// ===========================================================================

// RoleRepository interface cho role assignment data access
type RoleRepository interface {
	// Find tìm role assignment theo cặp (workspace, user)
	Find(ctx context.Context, workspaceID string, userID uuid.UUID) (*models.WorkspaceUserRole, error)

	// FindByWorkspace lấy danh sách thành viên kèm role trong workspace
	FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.WorkspaceUserRole, int64, error)

	// Create tạo role assignment mới
	Create(ctx context.Context, role *models.WorkspaceUserRole) error

	// Update cập nhật role assignment
	Update(ctx context.Context, role *models.WorkspaceUserRole) error

	// Delete xóa role assignment theo cặp (workspace, user)
	Delete(ctx context.Context, workspaceID string, userID uuid.UUID) error
}

// ===========================================================================
// AuditLog Repository Interface
// Append-only: không có Update/Delete
// ===========================================================================

// AuditLogRepository interface cho audit log data access
type AuditLogRepository interface {
	// Create ghi một dòng audit
	Create(ctx context.Context, log *models.AuditLog) error

	// FindByWorkspace lấy audit logs của workspace
	FindByWorkspace(ctx context.Context, workspaceID string, opts FindOptions) ([]models.AuditLog, int64, error)

	// FindByUser lấy audit logs của user
	FindByUser(ctx context.Context, userID string, opts FindOptions) ([]models.AuditLog, int64, error)

	// FindByEntity lấy audit logs của một entity cụ thể
	FindByEntity(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error)

	// List lấy toàn bộ audit logs, hỗ trợ filter substring trên action
	// qua opts.Filters["action"]
	List(ctx context.Context, opts FindOptions) ([]models.AuditLog, int64, error)
}
