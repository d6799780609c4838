package models

// ===========================================================================
// Account (Tài khoản liên kết)
// Con trỏ tới hệ thống bên ngoài thuộc một workspace
// Không có ràng buộc unique nào ngoài id
// ===========================================================================

// Account đại diện cho một tài khoản liên kết của workspace
type Account struct {
	BaseModel

	// WorkspaceID workspace sở hữu account
	WorkspaceID string `gorm:"size:64;not null;index" json:"workspace_id"`

	// Type loại account, free-form tag (VD: "zalo_oa", "payment")
	Type string `gorm:"size:64;not null" json:"type"`

	// ReferenceID con trỏ tới hệ thống bên ngoài
	ReferenceID *string `gorm:"size:255" json:"reference_id,omitempty"`

	// Metadata key/value map tùy ý (JSONB)
	Metadata JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
}

// TableName trả về tên bảng trong database
func (Account) TableName() string {
	return "accounts"
}
