package services

import (
	"context"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"
)

// ===========================================================================
// Agent Service Interface
// Quản lý agent toàn cục và cấu hình agent theo workspace
// ===========================================================================

// CreateAgentInput dữ liệu tạo agent
type CreateAgentInput struct {
	Key         string
	Name        string
	Description string
}

// UpdateAgentInput dữ liệu cập nhật agent - nil nghĩa là không đổi
type UpdateAgentInput struct {
	Name        *string
	Description *string
}

// AssignAgentInput dữ liệu gán agent cho workspace
type AssignAgentInput struct {
	WorkspaceID  string
	AgentKey     string
	SystemPrompt string

	// Temperature và MaxTokens nil thì dùng mặc định (0.7 / 2000)
	Temperature *float64
	MaxTokens   *int
}

// UpdateAgentConfigInput dữ liệu cập nhật config - nil nghĩa là không đổi
type UpdateAgentConfigInput struct {
	SystemPrompt *string
	Temperature  *float64
	MaxTokens    *int
}

// AgentService interface cho agent operations
type AgentService interface {
	// Create tạo agent toàn cục mới
	Create(ctx context.Context, input CreateAgentInput) (*models.Agent, error)

	// Get lấy agent theo key
	Get(ctx context.Context, key string) (*models.Agent, error)

	// List lấy danh sách agents với phân trang
	List(ctx context.Context, opts repositories.FindOptions) ([]models.Agent, int64, error)

	// Update cập nhật agent
	Update(ctx context.Context, key string, input UpdateAgentInput) (*models.Agent, error)

	// Delete xóa agent
	// Từ chối nếu agent còn được bất kỳ workspace config nào tham chiếu
	Delete(ctx context.Context, key string) error

	// AssignToWorkspace gán agent cho workspace với config riêng
	// Từ chối nếu cặp (workspace, agent) đã tồn tại
	AssignToWorkspace(ctx context.Context, input AssignAgentInput) (*models.WorkspaceAgentConfig, error)

	// UpdateWorkspaceConfig cập nhật config của cặp (workspace, agent)
	UpdateWorkspaceConfig(ctx context.Context, workspaceID, agentKey string, input UpdateAgentConfigInput) (*models.WorkspaceAgentConfig, error)

	// ListWorkspaceConfigs lấy mọi agent config của workspace
	ListWorkspaceConfigs(ctx context.Context, workspaceID string) ([]models.WorkspaceAgentConfig, error)
}
