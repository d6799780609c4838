package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Policy Service Implementation
//
// Fail-closed với relational store: lỗi DB ngoài dự kiến -> deny
// INTERNAL_ERROR. Fail-open với graph mirror: graph chỉ để đối chiếu,
// lỗi graph không bao giờ đổi kết quả
// ===========================================================================

// policyServiceImpl implements PolicyService
type policyServiceImpl struct {
	groupRepo  repositories.ZaloGroupRepository
	userRepo   repositories.UserRepository
	roleRepo   repositories.RoleRepository
	configRepo repositories.AgentConfigRepository
	graph      graph.Store
	logger     *zap.Logger
}

// NewPolicyService tạo PolicyService mới
func NewPolicyService(
	groupRepo repositories.ZaloGroupRepository,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	configRepo repositories.AgentConfigRepository,
	graphStore graph.Store,
	logger *zap.Logger,
) PolicyService {
	return &policyServiceImpl{
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		configRepo: configRepo,
		graph:      graphStore,
		logger:     logger,
	}
}

// deny helper tạo kết quả từ chối
func deny(code DenyCode, reason string) *ResolveResult {
	return &ResolveResult{
		Allowed: false,
		Code:    code,
		Reason:  reason,
	}
}

// ResolveContext chạy chuỗi quyết định short-circuit
func (s *policyServiceImpl) ResolveContext(ctx context.Context, req ResolveRequest) (*ResolveResult, error) {
	threadID := strings.TrimSpace(req.ThreadID)
	externalUserID := strings.TrimSpace(req.ExternalUserID)

	// Bước 1: validate input - không chạm store nào
	if threadID == "" || externalUserID == "" {
		return deny(DenyInvalidRequest, "thread_id and external_user_id are required"), nil
	}

	// Bước 2: tìm nhóm theo thread_id - luôn hỏi relational store
	group, err := s.groupRepo.FindByThreadID(ctx, threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deny(DenyGroupNotFound, "Zalo group not found or not configured"), nil
		}
		s.logger.Error("resolve: find group failed",
			zap.Error(err),
			zap.String("thread_id", threadID),
		)
		return deny(DenyInternalError, "Internal error during context resolution"), nil
	}

	// Nhóm tồn tại nhưng chưa gắn workspace coi như chưa cấu hình
	if group.WorkspaceID == nil || *group.WorkspaceID == "" {
		return deny(DenyGroupNotFound, "Zalo group not found or not configured"), nil
	}
	workspaceID := *group.WorkspaceID

	// Bước 3: nhóm phải có agent
	if !group.HasAgent() {
		return deny(DenyAgentNotConfigured, "No agent configured for this group"), nil
	}
	agentKey := *group.AgentKey

	// Bước 4: user phải tồn tại - hệ thống không tự tạo user khi resolve
	user, err := s.userRepo.FindByZaloID(ctx, externalUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deny(DenyUserNotFound, "User not found"), nil
		}
		s.logger.Error("resolve: find user failed",
			zap.Error(err),
			zap.String("external_user_id", externalUserID),
		)
		return deny(DenyInternalError, "Internal error during context resolution"), nil
	}

	// Bước 5: user phải có role trong workspace của nhóm
	role, err := s.roleRepo.Find(ctx, workspaceID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deny(DenyUserNotInWorkspace, "User is not a member of this workspace"), nil
		}
		s.logger.Error("resolve: find role failed",
			zap.Error(err),
			zap.String("workspace_id", workspaceID),
			zap.String("user_id", user.ID.String()),
		)
		return deny(DenyInternalError, "Internal error during context resolution"), nil
	}

	// Bước 6: enrich với workspace agent config nếu có
	// Không có config không phải lỗi - dùng mặc định
	result := &ResolveResult{
		Allowed:     true,
		WorkspaceID: workspaceID,
		UserID:      &user.ID,
		Role:        role.Role,
		AgentKey:    agentKey,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		CreatedAt:   &group.CreatedAt,
	}

	config, err := s.configRepo.FindByWorkspaceAndAgent(ctx, workspaceID, agentKey)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("resolve: find agent config failed",
				zap.Error(err),
				zap.String("workspace_id", workspaceID),
				zap.String("agent_key", agentKey),
			)
			return deny(DenyInternalError, "Internal error during context resolution"), nil
		}
	} else {
		result.SystemPrompt = config.SystemPrompt
		result.Temperature = config.Temperature
		result.MaxTokens = config.MaxTokens
	}

	// Bước 7: đối chiếu với graph mirror - best-effort, fail-open
	// Mismatch chỉ được log để phát hiện staleness, không đổi quyết định
	consistent, err := s.graph.HasMembership(ctx, threadID, user.ID.String())
	if err != nil {
		if !errors.Is(err, graph.ErrUnavailable) {
			s.logger.Warn("resolve: graph corroboration failed",
				zap.Error(err),
				zap.String("thread_id", threadID),
			)
		}
	} else {
		result.GraphConsistent = &consistent
		if !consistent {
			s.logger.Warn("graph mirror out of sync with relational store",
				zap.String("thread_id", threadID),
				zap.String("user_id", user.ID.String()),
				zap.String("workspace_id", workspaceID),
			)
		}
	}

	s.logger.Info("context resolved",
		zap.String("thread_id", threadID),
		zap.String("workspace_id", workspaceID),
		zap.String("agent_key", agentKey),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role.Role)),
	)

	return result, nil
}

// IsAdminInWorkspace user (theo zalo_id) có phải ADMIN của workspace không
func (s *policyServiceImpl) IsAdminInWorkspace(ctx context.Context, workspaceID, externalUserID string) (bool, error) {
	role, err := s.findRole(ctx, workspaceID, externalUserID)
	if err != nil || role == nil {
		return false, err
	}
	return role.Role == models.RoleAdmin, nil
}

// IsMemberOfWorkspace user (theo zalo_id) có thuộc workspace không
func (s *policyServiceImpl) IsMemberOfWorkspace(ctx context.Context, workspaceID, externalUserID string) (bool, error) {
	role, err := s.findRole(ctx, workspaceID, externalUserID)
	if err != nil || role == nil {
		return false, err
	}
	return true, nil
}

// findRole tra role theo (workspace, zalo_id)
// Trả về (nil, nil) khi user hoặc role không tồn tại
func (s *policyServiceImpl) findRole(ctx context.Context, workspaceID, externalUserID string) (*models.WorkspaceUserRole, error) {
	user, err := s.userRepo.FindByZaloID(ctx, externalUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by zalo_id: %w", err)
	}

	role, err := s.roleRepo.Find(ctx, workspaceID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	return role, nil
}
