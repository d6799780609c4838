package models

// ===========================================================================
// ZaloGroup (Nhóm chat Zalo)
// Một thread chat gắn với workspace và (tùy chọn) một agent
// thread_id unique toàn hệ thống - một nhóm không thể thuộc hai workspace
// ===========================================================================

// ZaloGroup đại diện cho một nhóm chat Zalo
type ZaloGroup struct {
	BaseModel

	// WorkspaceID workspace sở hữu nhóm, nullable cho đến khi được bind
	WorkspaceID *string `gorm:"size:64;index" json:"workspace_id,omitempty"`

	// ThreadID external identifier của thread chat, unique toàn hệ thống
	ThreadID string `gorm:"size:128;uniqueIndex;not null" json:"thread_id"`

	// Name tên nhóm
	Name string `gorm:"size:255" json:"name,omitempty"`

	// AgentKey agent được gán trực tiếp cho nhóm (tối đa một)
	AgentKey *string `gorm:"size:100;index" json:"agent_key,omitempty"`
}

// TableName trả về tên bảng trong database
func (ZaloGroup) TableName() string {
	return "zalo_groups"
}

// HasAgent nhóm đã được cấu hình agent chưa
func (g *ZaloGroup) HasAgent() bool {
	return g.AgentKey != nil && *g.AgentKey != ""
}
