package dto

// ===========================================================================
// Request DTOs (Data Transfer Objects)
// Các struct dùng để validate và parse request body/query
// ===========================================================================

// PaginationRequest phân trang cho các API list
type PaginationRequest struct {
	// Page số trang hiện tại (bắt đầu từ 1)
	Page int `form:"page" binding:"min=0"`

	// Limit số record mỗi trang (tối đa 100)
	Limit int `form:"limit" binding:"min=0,max=100"`
}

// SetDefaults set giá trị mặc định cho pagination
func (p *PaginationRequest) SetDefaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
}

// Offset tính offset cho database query
func (p *PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ===========================================================================
// Resolve Context Request
// ===========================================================================

// ResolveContextRequest request từ message gateway khi có tin nhắn mới
// Không dùng binding:required - thiếu field phải ra deny INVALID_REQUEST
// có cấu trúc, không phải lỗi binding của gin
type ResolveContextRequest struct {
	ThreadID       string `json:"thread_id"`
	ExternalUserID string `json:"external_user_id"`
}

// ===========================================================================
// Workspace Requests
// ===========================================================================

// CreateWorkspaceRequest request tạo workspace
type CreateWorkspaceRequest struct {
	// ID tùy chọn - để trống thì server tự generate
	ID          string `json:"id" binding:"omitempty,max=64"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateWorkspaceRequest request cập nhật workspace (nil = không đổi)
type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status" binding:"omitempty,oneof=active disabled"`
}

// SearchWorkspaceRequest query params cho fuzzy search
type SearchWorkspaceRequest struct {
	Name      string  `form:"name" binding:"required,min=1,max=255"`
	Threshold float64 `form:"threshold" binding:"omitempty,min=0,max=1"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
}

// AddGroupRequest request gắn nhóm chat vào workspace
type AddGroupRequest struct {
	ThreadID string  `json:"thread_id" binding:"required,min=1,max=128"`
	Name     string  `json:"name" binding:"max=255"`
	AgentKey *string `json:"agent_key" binding:"omitempty,max=100"`
}

// SetGroupAgentRequest request thay agent của nhóm
type SetGroupAgentRequest struct {
	// AgentKey rỗng nghĩa là gỡ agent khỏi nhóm
	AgentKey string `json:"agent_key" binding:"max=100"`
}

// AssignRoleRequest request gán role cho user trong workspace
type AssignRoleRequest struct {
	UserID     string  `json:"user_id" binding:"required,uuid"`
	Role       string  `json:"role" binding:"required,oneof=ADMIN MEMBER"`
	AssignedBy *string `json:"assigned_by" binding:"omitempty,max=64"`
}

// ===========================================================================
// User Requests
// ===========================================================================

// CreateUserRequest request tạo user (idempotent theo zalo_id)
type CreateUserRequest struct {
	ZaloID   string  `json:"zalo_id" binding:"required,min=1,max=64"`
	FullName string  `json:"full_name" binding:"max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=male female other"`
}

// UpdateUserRequest request cập nhật user (nil = không đổi)
type UpdateUserRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Status   *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ===========================================================================
// Agent Requests
// ===========================================================================

// CreateAgentRequest request tạo agent toàn cục
type CreateAgentRequest struct {
	Key         string `json:"key" binding:"required,min=1,max=100"`
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateAgentRequest request cập nhật agent (nil = không đổi)
type UpdateAgentRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// AssignAgentRequest request gán agent cho workspace
type AssignAgentRequest struct {
	AgentKey     string   `json:"agent_key" binding:"required,min=1,max=100"`
	SystemPrompt string   `json:"system_prompt" binding:"max=10000"`
	Temperature  *float64 `json:"temperature" binding:"omitempty,min=0,max=2"`
	MaxTokens    *int     `json:"max_tokens" binding:"omitempty,min=1,max=128000"`
}

// UpdateAgentConfigRequest request cập nhật config (nil = không đổi)
type UpdateAgentConfigRequest struct {
	SystemPrompt *string  `json:"system_prompt" binding:"omitempty,max=10000"`
	Temperature  *float64 `json:"temperature" binding:"omitempty,min=0,max=2"`
	MaxTokens    *int     `json:"max_tokens" binding:"omitempty,min=1,max=128000"`
}

// ===========================================================================
// Account Requests
// ===========================================================================

// CreateAccountRequest request tạo account liên kết
type CreateAccountRequest struct {
	Type        string                 `json:"type" binding:"required,min=1,max=64"`
	ReferenceID *string                `json:"reference_id" binding:"omitempty,max=255"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// UpdateAccountRequest request cập nhật account (nil = không đổi)
type UpdateAccountRequest struct {
	Type        *string                `json:"type" binding:"omitempty,min=1,max=64"`
	ReferenceID *string                `json:"reference_id" binding:"omitempty,max=255"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// ===========================================================================
// Audit Requests
// ===========================================================================

// ListAuditRequest query params cho audit listing
type ListAuditRequest struct {
	PaginationRequest

	// Action filter substring trên action tag (case-insensitive)
	Action string `form:"action" binding:"max=64"`
}
