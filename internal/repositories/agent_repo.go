package repositories

import (
	"context"

	"agenthub-gin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ===========================================================================
// Agent Repository GORM Implementation
// ===========================================================================

// agentRepo triển khai AgentRepository với GORM
type agentRepo struct {
	db *gorm.DB
}

// NewAgentRepository tạo instance mới của AgentRepository
func NewAgentRepository(db *gorm.DB) AgentRepository {
	return &agentRepo{db: db}
}

// FindByKey tìm agent theo key
func (r *agentRepo) FindByKey(ctx context.Context, key string) (*models.Agent, error) {
	var agent models.Agent
	if err := r.db.WithContext(ctx).First(&agent, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &agent, nil
}

// List lấy danh sách agents với phân trang
func (r *agentRepo) List(ctx context.Context, opts FindOptions) ([]models.Agent, int64, error) {
	opts.SetDefaults()

	var agents []models.Agent
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Agent{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order(opts.GetOrderClause()).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&agents).Error

	return agents, total, err
}

// Create tạo agent mới
func (r *agentRepo) Create(ctx context.Context, agent *models.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

// Update cập nhật agent
func (r *agentRepo) Update(ctx context.Context, agent *models.Agent) error {
	return r.db.WithContext(ctx).Save(agent).Error
}

// Delete xóa agent
func (r *agentRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&models.Agent{}, "key = ?", key).Error
}

// CountConfigs đếm số workspace config đang tham chiếu agent
func (r *agentRepo) CountConfigs(ctx context.Context, key string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WorkspaceAgentConfig{}).
		Where("agent_key = ?", key).
		Count(&count).Error
	return count, err
}

// ===========================================================================
// AgentConfig Repository GORM Implementation
// ===========================================================================

// agentConfigRepo triển khai AgentConfigRepository với GORM
type agentConfigRepo struct {
	db *gorm.DB
}

// NewAgentConfigRepository tạo instance mới của AgentConfigRepository
func NewAgentConfigRepository(db *gorm.DB) AgentConfigRepository {
	return &agentConfigRepo{db: db}
}

// FindByID tìm config theo ID
func (r *agentConfigRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.WorkspaceAgentConfig, error) {
	var config models.WorkspaceAgentConfig
	if err := r.db.WithContext(ctx).First(&config, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

// FindByWorkspaceAndAgent tìm config theo cặp (workspace, agent)
func (r *agentConfigRepo) FindByWorkspaceAndAgent(ctx context.Context, workspaceID, agentKey string) (*models.WorkspaceAgentConfig, error) {
	var config models.WorkspaceAgentConfig
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND agent_key = ?", workspaceID, agentKey).
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// FindByWorkspace lấy mọi config của workspace
func (r *agentConfigRepo) FindByWorkspace(ctx context.Context, workspaceID string) ([]models.WorkspaceAgentConfig, error) {
	var configs []models.WorkspaceAgentConfig
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Find(&configs).Error
	return configs, err
}

// Create tạo config mới
func (r *agentConfigRepo) Create(ctx context.Context, config *models.WorkspaceAgentConfig) error {
	return r.db.WithContext(ctx).Create(config).Error
}

// Update cập nhật config
func (r *agentConfigRepo) Update(ctx context.Context, config *models.WorkspaceAgentConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}
