package services

import (
	"context"
	"time"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
)

// ===========================================================================
// Policy Service Interface
// Quyết định một user Zalo có được nói chuyện với agent trong một
// nhóm chat hay không, và nếu có thì với cấu hình nào
//
// Deny là kết quả hợp lệ (return value), KHÔNG phải error
// Error chỉ dành cho lỗi hạ tầng ngoài dự kiến
// ===========================================================================

// DenyCode mã từ chối - tập đóng, machine-readable
type DenyCode string

const (
	// DenyInvalidRequest thiếu thread_id hoặc external_user_id
	DenyInvalidRequest DenyCode = "INVALID_REQUEST"

	// DenyGroupNotFound nhóm chat không tồn tại hoặc chưa gắn workspace
	DenyGroupNotFound DenyCode = "ZALO_GROUP_NOT_FOUND"

	// DenyAgentNotConfigured nhóm chưa được cấu hình agent
	DenyAgentNotConfigured DenyCode = "AGENT_NOT_CONFIGURED"

	// DenyUserNotFound user không tồn tại trong hệ thống
	DenyUserNotFound DenyCode = "USER_NOT_FOUND"

	// DenyUserNotInWorkspace user không phải thành viên workspace của nhóm
	DenyUserNotInWorkspace DenyCode = "USER_NOT_IN_WORKSPACE"

	// DenyInternalError lỗi hạ tầng - fail-closed
	DenyInternalError DenyCode = "INTERNAL_ERROR"
)

// ResolveRequest đầu vào của context resolution
type ResolveRequest struct {
	ThreadID       string `json:"thread_id"`
	ExternalUserID string `json:"external_user_id"`
}

// ResolveResult kết quả của context resolution
//
// Struct này serialize thẳng ra response body của resolve-context,
// phẳng một tầng: deny mang error/message, allow mang context fields
// ở top-level. Message gateway parse đúng shape này - không bọc envelope
type ResolveResult struct {
	Allowed bool `json:"allowed"`

	// Chỉ có khi deny
	Code   DenyCode `json:"error,omitempty"`
	Reason string   `json:"message,omitempty"`

	// Chỉ có khi allow
	WorkspaceID  string      `json:"workspace_id,omitempty"`
	UserID       *uuid.UUID  `json:"user_id,omitempty"`
	Role         models.Role `json:"role,omitempty"`
	AgentKey     string      `json:"agent_key,omitempty"`
	SystemPrompt string      `json:"system_prompt,omitempty"`
	Temperature  float64     `json:"temperature,omitempty"`
	MaxTokens    int         `json:"max_tokens,omitempty"`

	// CreatedAt thời điểm nhóm được gắn vào hệ thống
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// GraphConsistent kết quả đối chiếu với graph mirror
	// nil khi graph không khả dụng - chỉ để log và quan sát nội bộ,
	// không đi ra wire, không bao giờ ảnh hưởng quyết định allow/deny
	GraphConsistent *bool `json:"-"`
}

// PolicyService interface cho access control operations
type PolicyService interface {
	// ResolveContext chạy chuỗi quyết định short-circuit:
	// validate -> group -> agent -> user -> membership -> config
	// Check đầu tiên fail quyết định deny code, các check sau không chạy
	ResolveContext(ctx context.Context, req ResolveRequest) (*ResolveResult, error)

	// IsAdminInWorkspace user (theo zalo_id) có phải ADMIN của workspace không
	IsAdminInWorkspace(ctx context.Context, workspaceID, externalUserID string) (bool, error)

	// IsMemberOfWorkspace user (theo zalo_id) có thuộc workspace không
	// (bất kể role)
	IsMemberOfWorkspace(ctx context.Context, workspaceID, externalUserID string) (bool, error)
}
