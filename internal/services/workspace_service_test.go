package services

import (
	"context"
	"errors"
	"testing"

	apperrors "agenthub-gin/internal/errors"
	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===========================================================================
// Workspace Service Tests
// ===========================================================================

func TestWorkspaceCreateAndGet(t *testing.T) {
	env := setupEnv(t, nil)

	workspace, err := env.workspace.Create(context.Background(), CreateWorkspaceInput{
		ID:   "ws-1",
		Name: "Demo Workspace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws-1", workspace.ID)
	assert.Equal(t, models.WorkspaceActive, workspace.Status)

	got, err := env.workspace.Get(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "Demo Workspace", got.Name)

	// ID trùng bị từ chối
	_, err = env.workspace.Create(context.Background(), CreateWorkspaceInput{ID: "ws-1", Name: "Again"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateEntry))

	// Để trống ID thì server tự generate
	generated, err := env.workspace.Create(context.Background(), CreateWorkspaceInput{Name: "Auto ID"})
	require.NoError(t, err)
	assert.NotEmpty(t, generated.ID)
}

func TestAddGroup_DuplicateThreadConflict(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	_, err := env.workspace.Create(context.Background(), CreateWorkspaceInput{ID: "ws-2", Name: "Other"})
	require.NoError(t, err)

	// grp-1 đã thuộc ws-1 - gắn vào ws-2 phải bị từ chối
	_, err = env.workspace.AddGroup(context.Background(), AddGroupInput{
		WorkspaceID: "ws-2",
		ThreadID:    "grp-1",
		Name:        "Hijack",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateEntry))

	// Thất bại vẫn để lại một dòng audit FAILED
	logs, _, err := env.auditRepo.List(context.Background(), repositories.FindOptions{
		Filters: map[string]interface{}{"action": "ADD_ZALO_GROUP"},
	})
	require.NoError(t, err)

	var failed int
	for _, log := range logs {
		if log.Status == models.AuditFailed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

// Audit chết trong nhánh thread trùng: error trả về phải giữ nguyên nhân
// gốc (audit outage) thay vì chỉ là lỗi trần
func TestAddGroup_DuplicateThreadAuditOutage(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	auditOutage := errors.New("audit store down")
	brokenAudit := NewAuditService(&failingAuditRepo{err: auditOutage}, zap.NewNop())

	// Repos thật trên cùng DB để đi vào đúng nhánh conflict
	ws := NewWorkspaceService(
		repositories.NewWorkspaceRepository(env.db),
		repositories.NewZaloGroupRepository(env.db),
		repositories.NewUserRepository(env.db),
		repositories.NewRoleRepository(env.db),
		repositories.NewAgentRepository(env.db),
		graph.NewNoop(),
		brokenAudit,
		zap.NewNop(),
	)

	_, err := ws.AddGroup(context.Background(), AddGroupInput{
		WorkspaceID: "ws-1",
		ThreadID:    "grp-1",
		Name:        "Duplicate",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, auditOutage)
	assert.Contains(t, err.Error(), "duplicate thread conflict")
}

// Luật upsert: gán lại role cho cặp (workspace, user) đã tồn tại
// update dòng cũ, không tạo dòng mới - nhưng audit ghi hai dòng riêng
func TestAssignRole_Upsert(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	// seedResolveFixture đã gán MEMBER - gán lại ADMIN
	role, err := env.workspace.AssignRole(context.Background(), AssignRoleInput{
		WorkspaceID: "ws-1",
		UserID:      user.ID,
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role.Role)

	// Vẫn chỉ một dòng trong bảng role
	var count int64
	require.NoError(t, env.db.Model(&models.WorkspaceUserRole{}).
		Where("workspace_id = ? AND user_id = ?", "ws-1", user.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Audit: một ASSIGN_USER_ROLE + một UPDATE_USER_ROLE
	assigns, _, err := env.auditRepo.List(context.Background(), repositories.FindOptions{
		Filters: map[string]interface{}{"action": "ASSIGN_USER_ROLE"},
	})
	require.NoError(t, err)
	require.Len(t, assigns, 1)

	updates, _, err := env.auditRepo.List(context.Background(), repositories.FindOptions{
		Filters: map[string]interface{}{"action": "UPDATE_USER_ROLE"},
	})
	require.NoError(t, err)
	require.Len(t, updates, 1)

	// old_value lấy từ dòng thật trong store, không phải từ request
	assert.Equal(t, "MEMBER", updates[0].OldValue["role"])
	assert.Equal(t, "ADMIN", updates[0].NewValue["role"])
}

func TestAssignRole_InvalidRole(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	_, err := env.workspace.AssignRole(context.Background(), AssignRoleInput{
		WorkspaceID: "ws-1",
		UserID:      user.ID,
		Role:        models.Role("OWNER"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestRemoveMember(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	require.NoError(t, env.workspace.RemoveMember(context.Background(), "ws-1", user.ID))

	// Sau khi gỡ, resolve phải deny
	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)
	assert.Equal(t, DenyUserNotInWorkspace, result.Code)

	// Gỡ lần hai -> not found
	err = env.workspace.RemoveMember(context.Background(), "ws-1", user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestSetGroupAgent(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	groups, _, err := env.workspace.ListGroups(context.Background(), "ws-1", repositories.FindOptions{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	groupID := groups[0].ID

	// Gỡ agent
	group, err := env.workspace.SetGroupAgent(context.Background(), "ws-1", groupID, "")
	require.NoError(t, err)
	assert.False(t, group.HasAgent())

	// Resolve giờ deny AGENT_NOT_CONFIGURED
	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)
	assert.Equal(t, DenyAgentNotConfigured, result.Code)

	// Agent không tồn tại bị từ chối
	_, err = env.workspace.SetGroupAgent(context.Background(), "ws-1", groupID, "agent_ghost")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestWorkspaceDeleteCascade(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	require.NoError(t, env.workspace.Delete(context.Background(), "ws-1"))

	// Workspace, nhóm và role đều biến mất
	_, err := env.workspace.Get(context.Background(), "ws-1")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	var groupCount, roleCount int64
	require.NoError(t, env.db.Model(&models.ZaloGroup{}).Where("workspace_id = ?", "ws-1").Count(&groupCount).Error)
	require.NoError(t, env.db.Model(&models.WorkspaceUserRole{}).Where("workspace_id = ?", "ws-1").Count(&roleCount).Error)
	assert.Zero(t, groupCount)
	assert.Zero(t, roleCount)

	// User toàn cục không bị xóa theo
	got, err := env.users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "u-42", got.ZaloID)
}

func TestWorkspaceSearchFallback(t *testing.T) {
	env := setupEnv(t, nil)

	for _, name := range []string{"Acme Support", "Acme Sales", "Globex"} {
		_, err := env.workspace.Create(context.Background(), CreateWorkspaceInput{Name: name})
		require.NoError(t, err)
	}

	// SQLite không có pg_trgm - query similarity lỗi và fallback sang LIKE
	results, total, err := env.workspace.Search(context.Background(), "acme", 0.3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Name, "Acme")
		assert.Greater(t, r.Similarity, 0.0)
	}
}
