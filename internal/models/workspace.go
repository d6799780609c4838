package models

import "time"

// ===========================================================================
// Workspace (Không gian làm việc)
// Đại diện cho một tenant/tổ chức trong hệ thống
// Sở hữu groups, users-with-roles, agent configs và accounts
// ===========================================================================

// WorkspaceStatus trạng thái workspace
type WorkspaceStatus string

const (
	// WorkspaceActive workspace đang hoạt động
	WorkspaceActive WorkspaceStatus = "active"

	// WorkspaceDisabled workspace bị vô hiệu hóa
	WorkspaceDisabled WorkspaceStatus = "disabled"
)

// Workspace đại diện cho một không gian làm việc
// ID là opaque string key do admin chọn (VD: "ws-1"), không phải UUID
type Workspace struct {
	// ID khóa chính dạng string, do caller cung cấp hoặc tự generate
	ID string `gorm:"primaryKey;size:64" json:"id"`

	// Name tên workspace
	Name string `gorm:"size:255;not null" json:"name"`

	// Status trạng thái: active | disabled
	Status WorkspaceStatus `gorm:"size:20;not null;default:active" json:"status"`

	// Description mô tả workspace
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Relations - Các quan hệ với bảng khác
	ZaloGroups   []ZaloGroup            `gorm:"foreignKey:WorkspaceID" json:"zalo_groups,omitempty"`
	AgentConfigs []WorkspaceAgentConfig `gorm:"foreignKey:WorkspaceID" json:"agent_configs,omitempty"`
	Accounts     []Account              `gorm:"foreignKey:WorkspaceID" json:"accounts,omitempty"`
	UserRoles    []WorkspaceUserRole    `gorm:"foreignKey:WorkspaceID" json:"user_roles,omitempty"`
}

// TableName trả về tên bảng trong database
func (Workspace) TableName() string {
	return "workspaces"
}

// IsActive workspace có đang hoạt động không
func (w *Workspace) IsActive() bool {
	return w.Status == WorkspaceActive
}
