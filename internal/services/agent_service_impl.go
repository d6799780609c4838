package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "agenthub-gin/internal/errors"
	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Agent Service Implementation
// ===========================================================================

// Mặc định khi config không chỉ định
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// agentServiceImpl implements AgentService
type agentServiceImpl struct {
	agentRepo     repositories.AgentRepository
	configRepo    repositories.AgentConfigRepository
	workspaceRepo repositories.WorkspaceRepository
	graph         graph.Store
	audit         AuditService
	logger        *zap.Logger
}

// NewAgentService tạo AgentService mới
func NewAgentService(
	agentRepo repositories.AgentRepository,
	configRepo repositories.AgentConfigRepository,
	workspaceRepo repositories.WorkspaceRepository,
	graphStore graph.Store,
	audit AuditService,
	logger *zap.Logger,
) AgentService {
	return &agentServiceImpl{
		agentRepo:     agentRepo,
		configRepo:    configRepo,
		workspaceRepo: workspaceRepo,
		graph:         graphStore,
		audit:         audit,
		logger:        logger,
	}
}

// Create tạo agent toàn cục mới
func (s *agentServiceImpl) Create(ctx context.Context, input CreateAgentInput) (*models.Agent, error) {
	key := strings.TrimSpace(input.Key)
	name := strings.TrimSpace(input.Name)
	if key == "" || name == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "key and name are required")
	}

	if _, err := s.agentRepo.FindByKey(ctx, key); err == nil {
		return nil, apperrors.New(apperrors.ErrDuplicateEntry, "agent key already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check agent key: %w", err)
	}

	agent := &models.Agent{
		Key:         key,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		s.logger.Error("create agent failed",
			zap.Error(err),
			zap.String("agent_key", key),
		)
		return nil, fmt.Errorf("create agent: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge agent", func(mctx context.Context) error {
		return s.graph.MergeAgent(mctx, agent.Key, agent.Name)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		Action:     ActionCreateAgent,
		EntityType: "Agent",
		EntityID:   &agent.Key,
		NewValue:   models.JSONMap{"key": agent.Key, "name": agent.Name},
		Status:     models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("agent created", zap.String("agent_key", key))
	return agent, nil
}

// Get lấy agent theo key
func (s *agentServiceImpl) Get(ctx context.Context, key string) (*models.Agent, error) {
	agent, err := s.agentRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "agent not found")
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}
	return agent, nil
}

// List lấy danh sách agents với phân trang
func (s *agentServiceImpl) List(ctx context.Context, opts repositories.FindOptions) ([]models.Agent, int64, error) {
	return s.agentRepo.List(ctx, opts)
}

// Update cập nhật agent
func (s *agentServiceImpl) Update(ctx context.Context, key string, input UpdateAgentInput) (*models.Agent, error) {
	agent, err := s.agentRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "agent not found")
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}

	oldValue := models.JSONMap{"name": agent.Name, "description": agent.Description}

	if input.Name != nil {
		agent.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		agent.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, fmt.Errorf("update agent: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge agent", func(mctx context.Context) error {
		return s.graph.MergeAgent(mctx, agent.Key, agent.Name)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		Action:     ActionUpdateAgent,
		EntityType: "Agent",
		EntityID:   &agent.Key,
		OldValue:   oldValue,
		NewValue:   models.JSONMap{"name": agent.Name, "description": agent.Description},
		Status:     models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return agent, nil
}

// Delete xóa agent
// Referential guard: từ chối khi còn workspace config tham chiếu
func (s *agentServiceImpl) Delete(ctx context.Context, key string) error {
	agent, err := s.agentRepo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "agent not found")
		}
		return fmt.Errorf("find agent: %w", err)
	}

	count, err := s.agentRepo.CountConfigs(ctx, key)
	if err != nil {
		return fmt.Errorf("count agent configs: %w", err)
	}
	if count > 0 {
		msg := fmt.Sprintf("agent is in use by %d workspace(s)", count)
		if auditErr := s.audit.Log(ctx, AuditEntry{
			Action:       ActionDeleteAgent,
			EntityType:   "Agent",
			EntityID:     &key,
			Status:       models.AuditFailed,
			ErrorMessage: &msg,
		}); auditErr != nil {
			return fmt.Errorf("record agent delete conflict (%s): %w", msg, auditErr)
		}
		return apperrors.New(apperrors.ErrConflict, msg)
	}

	if err := s.agentRepo.Delete(ctx, key); err != nil {
		s.logger.Error("delete agent failed",
			zap.Error(err),
			zap.String("agent_key", key),
		)
		return fmt.Errorf("delete agent: %w", err)
	}

	mirrorWrite(ctx, s.logger, "delete agent", func(mctx context.Context) error {
		return s.graph.DeleteAgent(mctx, key)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		Action:     ActionDeleteAgent,
		EntityType: "Agent",
		EntityID:   &key,
		OldValue:   models.JSONMap{"key": agent.Key, "name": agent.Name},
		Status:     models.AuditSuccess,
	}); err != nil {
		return err
	}

	s.logger.Info("agent deleted", zap.String("agent_key", key))
	return nil
}

// AssignToWorkspace gán agent cho workspace với config riêng
func (s *agentServiceImpl) AssignToWorkspace(ctx context.Context, input AssignAgentInput) (*models.WorkspaceAgentConfig, error) {
	if _, err := s.workspaceRepo.FindByID(ctx, input.WorkspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}
	if _, err := s.agentRepo.FindByKey(ctx, input.AgentKey); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "agent not found")
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}

	// Một agent chỉ được gán một lần cho mỗi workspace
	if _, err := s.configRepo.FindByWorkspaceAndAgent(ctx, input.WorkspaceID, input.AgentKey); err == nil {
		return nil, apperrors.New(apperrors.ErrDuplicateEntry, "agent already assigned to this workspace")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check agent assignment: %w", err)
	}

	config := &models.WorkspaceAgentConfig{
		WorkspaceID:  input.WorkspaceID,
		AgentKey:     input.AgentKey,
		SystemPrompt: input.SystemPrompt,
		Temperature:  defaultTemperature,
		MaxTokens:    defaultMaxTokens,
	}
	if input.Temperature != nil {
		config.Temperature = *input.Temperature
	}
	if input.MaxTokens != nil {
		config.MaxTokens = *input.MaxTokens
	}

	if err := s.configRepo.Create(ctx, config); err != nil {
		s.logger.Error("assign agent failed",
			zap.Error(err),
			zap.String("workspace_id", input.WorkspaceID),
			zap.String("agent_key", input.AgentKey),
		)
		return nil, fmt.Errorf("create agent config: %w", err)
	}

	mirrorWrite(ctx, s.logger, "link workspace agent", func(mctx context.Context) error {
		return s.graph.LinkWorkspaceAgent(mctx, input.WorkspaceID, input.AgentKey)
	})

	configID := config.ID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &input.WorkspaceID,
		Action:      ActionAssignAgent,
		EntityType:  "WorkspaceAgentConfig",
		EntityID:    &configID,
		NewValue: models.JSONMap{
			"agent_key":   config.AgentKey,
			"temperature": config.Temperature,
			"max_tokens":  config.MaxTokens,
		},
		Status: models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("agent assigned to workspace",
		zap.String("workspace_id", input.WorkspaceID),
		zap.String("agent_key", input.AgentKey),
	)

	return config, nil
}

// UpdateWorkspaceConfig cập nhật config của cặp (workspace, agent)
func (s *agentServiceImpl) UpdateWorkspaceConfig(ctx context.Context, workspaceID, agentKey string, input UpdateAgentConfigInput) (*models.WorkspaceAgentConfig, error) {
	config, err := s.configRepo.FindByWorkspaceAndAgent(ctx, workspaceID, agentKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "agent config not found")
		}
		return nil, fmt.Errorf("find agent config: %w", err)
	}

	oldValue := models.JSONMap{
		"system_prompt": config.SystemPrompt,
		"temperature":   config.Temperature,
		"max_tokens":    config.MaxTokens,
	}

	if input.SystemPrompt != nil {
		config.SystemPrompt = *input.SystemPrompt
	}
	if input.Temperature != nil {
		config.Temperature = *input.Temperature
	}
	if input.MaxTokens != nil {
		config.MaxTokens = *input.MaxTokens
	}

	if err := s.configRepo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("update agent config: %w", err)
	}

	configID := config.ID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &workspaceID,
		Action:      ActionUpdateAgentConfig,
		EntityType:  "WorkspaceAgentConfig",
		EntityID:    &configID,
		OldValue:    oldValue,
		NewValue: models.JSONMap{
			"system_prompt": config.SystemPrompt,
			"temperature":   config.Temperature,
			"max_tokens":    config.MaxTokens,
		},
		Status: models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return config, nil
}

// ListWorkspaceConfigs lấy mọi agent config của workspace
func (s *agentServiceImpl) ListWorkspaceConfigs(ctx context.Context, workspaceID string) ([]models.WorkspaceAgentConfig, error) {
	return s.configRepo.FindByWorkspace(ctx, workspaceID)
}
