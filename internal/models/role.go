package models

import "github.com/google/uuid"

// ===========================================================================
// WorkspaceUserRole (Phân quyền user trong workspace)
// Map (workspace, user) -> role, chỉ hai role cố định: ADMIN | MEMBER
// Upsert semantics: gán role cho cặp đã tồn tại sẽ update, không duplicate
// ===========================================================================

// Role quyền của user trong workspace
type Role string

const (
	// RoleAdmin quản trị workspace
	RoleAdmin Role = "ADMIN"

	// RoleMember thành viên workspace
	RoleMember Role = "MEMBER"
)

// IsValid kiểm tra role có nằm trong tập đóng không
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// WorkspaceUserRole đại diện cho một phân quyền
type WorkspaceUserRole struct {
	BaseModel

	// WorkspaceID workspace được phân quyền
	WorkspaceID string `gorm:"size:64;not null;uniqueIndex:idx_workspace_user" json:"workspace_id"`

	// UserID user được phân quyền
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_user" json:"user_id"`

	// Role quyền: ADMIN | MEMBER
	Role Role `gorm:"size:20;not null" json:"role"`

	// AssignedBy ai đã gán quyền này (optional)
	AssignedBy *string `gorm:"size:64" json:"assigned_by,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName trả về tên bảng trong database
func (WorkspaceUserRole) TableName() string {
	return "workspace_user_roles"
}
