package models

import "time"

// ===========================================================================
// Agent (AI Agent)
// Cấu hình AI assistant có thể gán cho workspace hoặc nhóm chat
// Key là natural key dạng slug do người tạo chọn (VD: "agent_support")
// ===========================================================================

// Agent đại diện cho một AI agent toàn cục
type Agent struct {
	// Key khóa chính dạng slug, unique toàn hệ thống
	Key string `gorm:"primaryKey;size:100" json:"key"`

	// Name tên hiển thị
	Name string `gorm:"size:255;not null" json:"name"`

	// Description mô tả agent
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName trả về tên bảng trong database
func (Agent) TableName() string {
	return "agents"
}

// WorkspaceAgentConfig cấu hình agent cho một workspace
// Tối đa một config cho mỗi cặp (workspace_id, agent_key)
type WorkspaceAgentConfig struct {
	BaseModel

	// WorkspaceID workspace được cấu hình
	WorkspaceID string `gorm:"size:64;not null;uniqueIndex:idx_workspace_agent" json:"workspace_id"`

	// AgentKey agent được gán
	AgentKey string `gorm:"size:100;not null;uniqueIndex:idx_workspace_agent" json:"agent_key"`

	// SystemPrompt system prompt cho agent trong workspace này
	SystemPrompt string `gorm:"type:text" json:"system_prompt,omitempty"`

	// Temperature độ sáng tạo của model
	Temperature float64 `gorm:"not null;default:0.7" json:"temperature"`

	// MaxTokens giới hạn token cho mỗi response
	MaxTokens int `gorm:"not null;default:2000" json:"max_tokens"`
}

// TableName trả về tên bảng trong database
func (WorkspaceAgentConfig) TableName() string {
	return "workspace_agent_config"
}
