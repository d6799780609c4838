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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Workspace Service Implementation
// ===========================================================================

// workspaceServiceImpl implements WorkspaceService
type workspaceServiceImpl struct {
	workspaceRepo repositories.WorkspaceRepository
	groupRepo     repositories.ZaloGroupRepository
	userRepo      repositories.UserRepository
	roleRepo      repositories.RoleRepository
	agentRepo     repositories.AgentRepository
	graph         graph.Store
	audit         AuditService
	logger        *zap.Logger
}

// NewWorkspaceService tạo WorkspaceService mới
func NewWorkspaceService(
	workspaceRepo repositories.WorkspaceRepository,
	groupRepo repositories.ZaloGroupRepository,
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	agentRepo repositories.AgentRepository,
	graphStore graph.Store,
	audit AuditService,
	logger *zap.Logger,
) WorkspaceService {
	return &workspaceServiceImpl{
		workspaceRepo: workspaceRepo,
		groupRepo:     groupRepo,
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		agentRepo:     agentRepo,
		graph:         graphStore,
		audit:         audit,
		logger:        logger,
	}
}

// Create tạo workspace mới
func (s *workspaceServiceImpl) Create(ctx context.Context, input CreateWorkspaceInput) (*models.Workspace, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "workspace name is required")
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = "ws-" + uuid.NewString()
	}

	if _, err := s.workspaceRepo.FindByID(ctx, id); err == nil {
		return nil, apperrors.New(apperrors.ErrDuplicateEntry, "workspace id already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check workspace id: %w", err)
	}

	workspace := &models.Workspace{
		ID:          id,
		Name:        name,
		Status:      models.WorkspaceActive,
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		s.logger.Error("create workspace failed",
			zap.Error(err),
			zap.String("workspace_id", id),
		)
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge workspace", func(mctx context.Context) error {
		return s.graph.MergeWorkspace(mctx, workspace.ID, workspace.Name)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &workspace.ID,
		Action:      ActionCreateWorkspace,
		EntityType:  "Workspace",
		EntityID:    &workspace.ID,
		NewValue:    models.JSONMap{"name": workspace.Name, "status": string(workspace.Status)},
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("workspace created",
		zap.String("workspace_id", workspace.ID),
		zap.String("name", workspace.Name),
	)

	return workspace, nil
}

// Get lấy workspace theo ID
func (s *workspaceServiceImpl) Get(ctx context.Context, id string) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}
	return workspace, nil
}

// List lấy danh sách workspaces với phân trang
func (s *workspaceServiceImpl) List(ctx context.Context, opts repositories.FindOptions) ([]models.Workspace, int64, error) {
	return s.workspaceRepo.List(ctx, opts)
}

// Update cập nhật workspace
func (s *workspaceServiceImpl) Update(ctx context.Context, id string, input UpdateWorkspaceInput) (*models.Workspace, error) {
	workspace, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}

	oldValue := models.JSONMap{"name": workspace.Name, "status": string(workspace.Status)}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.New(apperrors.ErrInvalidInput, "workspace name is required")
		}
		workspace.Name = name
	}
	if input.Description != nil {
		workspace.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		if *input.Status != models.WorkspaceActive && *input.Status != models.WorkspaceDisabled {
			return nil, apperrors.New(apperrors.ErrInvalidInput, "invalid workspace status")
		}
		workspace.Status = *input.Status
	}

	if err := s.workspaceRepo.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("update workspace: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge workspace", func(mctx context.Context) error {
		return s.graph.MergeWorkspace(mctx, workspace.ID, workspace.Name)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &workspace.ID,
		Action:      ActionUpdateWorkspace,
		EntityType:  "Workspace",
		EntityID:    &workspace.ID,
		OldValue:    oldValue,
		NewValue:    models.JSONMap{"name": workspace.Name, "status": string(workspace.Status)},
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return workspace, nil
}

// Delete xóa workspace và mọi dữ liệu phụ thuộc
func (s *workspaceServiceImpl) Delete(ctx context.Context, id string) error {
	workspace, err := s.workspaceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return fmt.Errorf("find workspace: %w", err)
	}

	if err := s.workspaceRepo.DeleteCascade(ctx, id); err != nil {
		s.logger.Error("delete workspace failed",
			zap.Error(err),
			zap.String("workspace_id", id),
		)
		return fmt.Errorf("delete workspace: %w", err)
	}

	mirrorWrite(ctx, s.logger, "delete workspace", func(mctx context.Context) error {
		return s.graph.DeleteWorkspace(mctx, id)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &id,
		Action:      ActionDeleteWorkspace,
		EntityType:  "Workspace",
		EntityID:    &id,
		OldValue:    models.JSONMap{"name": workspace.Name},
		Status:      models.AuditSuccess,
	}); err != nil {
		return err
	}

	s.logger.Info("workspace deleted", zap.String("workspace_id", id))
	return nil
}

// Search fuzzy search workspace theo tên
func (s *workspaceServiceImpl) Search(ctx context.Context, name string, threshold float64, limit int) ([]repositories.WorkspaceSearchResult, int64, error) {
	if threshold <= 0 {
		threshold = 0.3
	}
	return s.workspaceRepo.SearchByName(ctx, name, threshold, limit)
}

// AddGroup gắn nhóm chat vào workspace
func (s *workspaceServiceImpl) AddGroup(ctx context.Context, input AddGroupInput) (*models.ZaloGroup, error) {
	threadID := strings.TrimSpace(input.ThreadID)
	if threadID == "" {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "thread_id is required")
	}

	if _, err := s.workspaceRepo.FindByID(ctx, input.WorkspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}

	// thread_id unique toàn hệ thống - nhóm không thể thuộc hai workspace
	if existing, err := s.groupRepo.FindByThreadID(ctx, threadID); err == nil {
		msg := "thread already bound to a workspace"
		if existing.WorkspaceID != nil {
			msg = fmt.Sprintf("thread already bound to workspace %s", *existing.WorkspaceID)
		}
		if auditErr := s.audit.Log(ctx, AuditEntry{
			WorkspaceID:  &input.WorkspaceID,
			Action:       ActionAddZaloGroup,
			EntityType:   "ZaloGroup",
			Status:       models.AuditFailed,
			ErrorMessage: &msg,
		}); auditErr != nil {
			// Giữ nguyên nhân gốc trong message: caller thấy 500 vì audit
			// chết chứ không phải vì conflict biến mất
			return nil, fmt.Errorf("record duplicate thread conflict (%s): %w", msg, auditErr)
		}
		return nil, apperrors.New(apperrors.ErrDuplicateEntry, msg)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check thread_id: %w", err)
	}

	if input.AgentKey != nil && *input.AgentKey != "" {
		if _, err := s.agentRepo.FindByKey(ctx, *input.AgentKey); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.New(apperrors.ErrNotFound, "agent not found")
			}
			return nil, fmt.Errorf("find agent: %w", err)
		}
	}

	group := &models.ZaloGroup{
		WorkspaceID: &input.WorkspaceID,
		ThreadID:    threadID,
		Name:        strings.TrimSpace(input.Name),
		AgentKey:    input.AgentKey,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		s.logger.Error("add group failed",
			zap.Error(err),
			zap.String("workspace_id", input.WorkspaceID),
			zap.String("thread_id", threadID),
		)
		return nil, fmt.Errorf("create group: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge group", func(mctx context.Context) error {
		return s.graph.MergeGroup(mctx, group.ID.String(), group.ThreadID, group.Name, input.WorkspaceID)
	})
	if group.HasAgent() {
		mirrorWrite(ctx, s.logger, "set group agent", func(mctx context.Context) error {
			return s.graph.SetGroupAgent(mctx, group.ID.String(), *group.AgentKey)
		})
	}

	groupID := group.ID.String()
	newValue := models.JSONMap{"thread_id": group.ThreadID, "name": group.Name}
	if group.AgentKey != nil {
		newValue["agent_key"] = *group.AgentKey
	}
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &input.WorkspaceID,
		Action:      ActionAddZaloGroup,
		EntityType:  "ZaloGroup",
		EntityID:    &groupID,
		NewValue:    newValue,
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("group added to workspace",
		zap.String("workspace_id", input.WorkspaceID),
		zap.String("thread_id", threadID),
	)

	return group, nil
}

// RemoveGroup gỡ nhóm chat khỏi workspace
func (s *workspaceServiceImpl) RemoveGroup(ctx context.Context, workspaceID string, groupID uuid.UUID) error {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "group not found")
		}
		return fmt.Errorf("find group: %w", err)
	}
	if group.WorkspaceID == nil || *group.WorkspaceID != workspaceID {
		return apperrors.New(apperrors.ErrNotFound, "group not found in this workspace")
	}

	if err := s.groupRepo.Delete(ctx, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}

	mirrorWrite(ctx, s.logger, "delete group", func(mctx context.Context) error {
		return s.graph.DeleteGroup(mctx, groupID.String())
	})

	gid := groupID.String()
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &workspaceID,
		Action:      ActionRemoveZaloGroup,
		EntityType:  "ZaloGroup",
		EntityID:    &gid,
		OldValue:    models.JSONMap{"thread_id": group.ThreadID, "name": group.Name},
		Status:      models.AuditSuccess,
	}); err != nil {
		return err
	}

	return nil
}

// SetGroupAgent thay agent của nhóm chat
func (s *workspaceServiceImpl) SetGroupAgent(ctx context.Context, workspaceID string, groupID uuid.UUID, agentKey string) (*models.ZaloGroup, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "group not found")
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	if group.WorkspaceID == nil || *group.WorkspaceID != workspaceID {
		return nil, apperrors.New(apperrors.ErrNotFound, "group not found in this workspace")
	}

	oldValue := models.JSONMap{}
	if group.AgentKey != nil {
		oldValue["agent_key"] = *group.AgentKey
	}

	agentKey = strings.TrimSpace(agentKey)
	if agentKey == "" {
		group.AgentKey = nil
	} else {
		if _, err := s.agentRepo.FindByKey(ctx, agentKey); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.New(apperrors.ErrNotFound, "agent not found")
			}
			return nil, fmt.Errorf("find agent: %w", err)
		}
		group.AgentKey = &agentKey
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}

	mirrorWrite(ctx, s.logger, "set group agent", func(mctx context.Context) error {
		return s.graph.SetGroupAgent(mctx, group.ID.String(), agentKey)
	})

	gid := group.ID.String()
	newValue := models.JSONMap{}
	if group.AgentKey != nil {
		newValue["agent_key"] = *group.AgentKey
	}
	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &workspaceID,
		Action:      ActionUpdateGroupAgent,
		EntityType:  "ZaloGroup",
		EntityID:    &gid,
		OldValue:    oldValue,
		NewValue:    newValue,
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	return group, nil
}

// ListGroups lấy danh sách nhóm trong workspace
func (s *workspaceServiceImpl) ListGroups(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.ZaloGroup, int64, error) {
	return s.groupRepo.FindByWorkspace(ctx, workspaceID, opts)
}

// AssignRole gán role cho user trong workspace (upsert)
func (s *workspaceServiceImpl) AssignRole(ctx context.Context, input AssignRoleInput) (*models.WorkspaceUserRole, error) {
	if !input.Role.IsValid() {
		return nil, apperrors.New(apperrors.ErrInvalidInput, "role must be ADMIN or MEMBER")
	}

	if _, err := s.workspaceRepo.FindByID(ctx, input.WorkspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "workspace not found")
		}
		return nil, fmt.Errorf("find workspace: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	userID := input.UserID.String()

	existing, err := s.roleRepo.Find(ctx, input.WorkspaceID, input.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find role: %w", err)
	}

	if existing != nil {
		// Upsert: cặp đã tồn tại -> update role, không tạo dòng mới
		oldRole := existing.Role
		existing.Role = input.Role
		existing.AssignedBy = input.AssignedBy

		if err := s.roleRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}

		mirrorWrite(ctx, s.logger, "merge role", func(mctx context.Context) error {
			return s.graph.MergeRole(mctx, userID, input.WorkspaceID, string(input.Role))
		})

		if err := s.audit.Log(ctx, AuditEntry{
			WorkspaceID: &input.WorkspaceID,
			UserID:      &userID,
			Action:      ActionUpdateUserRole,
			EntityType:  "WorkspaceUserRole",
			EntityID:    &userID,
			OldValue:    models.JSONMap{"role": string(oldRole)},
			NewValue:    models.JSONMap{"role": string(input.Role)},
			Status:      models.AuditSuccess,
		}); err != nil {
			return nil, err
		}

		return existing, nil
	}

	role := &models.WorkspaceUserRole{
		WorkspaceID: input.WorkspaceID,
		UserID:      input.UserID,
		Role:        input.Role,
		AssignedBy:  input.AssignedBy,
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		s.logger.Error("assign role failed",
			zap.Error(err),
			zap.String("workspace_id", input.WorkspaceID),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("create role: %w", err)
	}

	mirrorWrite(ctx, s.logger, "merge role", func(mctx context.Context) error {
		return s.graph.MergeRole(mctx, userID, input.WorkspaceID, string(input.Role))
	})

	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &input.WorkspaceID,
		UserID:      &userID,
		Action:      ActionAssignUserRole,
		EntityType:  "WorkspaceUserRole",
		EntityID:    &userID,
		NewValue:    models.JSONMap{"role": string(input.Role)},
		Status:      models.AuditSuccess,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("role assigned",
		zap.String("workspace_id", input.WorkspaceID),
		zap.String("user_id", userID),
		zap.String("role", string(input.Role)),
	)

	return role, nil
}

// RemoveMember gỡ user khỏi workspace
func (s *workspaceServiceImpl) RemoveMember(ctx context.Context, workspaceID string, userID uuid.UUID) error {
	existing, err := s.roleRepo.Find(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.ErrNotFound, "user is not a member of this workspace")
		}
		return fmt.Errorf("find role: %w", err)
	}

	if err := s.roleRepo.Delete(ctx, workspaceID, userID); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	uid := userID.String()
	mirrorWrite(ctx, s.logger, "delete role", func(mctx context.Context) error {
		return s.graph.DeleteRole(mctx, uid, workspaceID)
	})

	if err := s.audit.Log(ctx, AuditEntry{
		WorkspaceID: &workspaceID,
		UserID:      &uid,
		Action:      ActionRemoveUserRole,
		EntityType:  "WorkspaceUserRole",
		EntityID:    &uid,
		OldValue:    models.JSONMap{"role": string(existing.Role)},
		Status:      models.AuditSuccess,
	}); err != nil {
		return err
	}

	return nil
}

// ListMembers lấy danh sách thành viên kèm role
func (s *workspaceServiceImpl) ListMembers(ctx context.Context, workspaceID string, opts repositories.FindOptions) ([]models.WorkspaceUserRole, int64, error) {
	return s.roleRepo.FindByWorkspace(ctx, workspaceID, opts)
}
