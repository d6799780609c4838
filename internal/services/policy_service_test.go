package services

import (
	"context"
	"errors"
	"testing"

	"agenthub-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===========================================================================
// Context Resolution Tests
// ===========================================================================

func TestResolveContext_Allow(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	require.True(t, result.Allowed)
	assert.Empty(t, result.Code)
	assert.Equal(t, "ws-1", result.WorkspaceID)
	assert.Equal(t, "agent_support", result.AgentKey)
	require.NotNil(t, result.UserID)
	assert.Equal(t, user.ID, *result.UserID)
	assert.Equal(t, models.RoleMember, result.Role)

	// created_at của nhóm đi kèm allow
	require.NotNil(t, result.CreatedAt)
	assert.False(t, result.CreatedAt.IsZero())

	// Không có workspace agent config -> dùng mặc định
	assert.Equal(t, 0.7, result.Temperature)
	assert.Equal(t, 2000, result.MaxTokens)
}

func TestResolveContext_ConfigEnrichment(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	temperature := 0.2
	maxTokens := 512
	_, err := env.agents.AssignToWorkspace(context.Background(), AssignAgentInput{
		WorkspaceID:  "ws-1",
		AgentKey:     "agent_support",
		SystemPrompt: "Trả lời ngắn gọn.",
		Temperature:  &temperature,
		MaxTokens:    &maxTokens,
	})
	require.NoError(t, err)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	require.True(t, result.Allowed)
	assert.Equal(t, "Trả lời ngắn gọn.", result.SystemPrompt)
	assert.Equal(t, 0.2, result.Temperature)
	assert.Equal(t, 512, result.MaxTokens)
}

func TestResolveContext_InvalidRequest(t *testing.T) {
	// Mọi store đều nổ nếu bị gọi - validate phải chạy trước tiên
	groupRepo := &failingGroupRepo{err: errors.New("must not be called")}
	userRepo := &failingUserRepo{err: errors.New("must not be called")}
	policy := NewPolicyService(
		groupRepo,
		userRepo,
		&failingRoleRepo{err: errors.New("must not be called")},
		&failingConfigRepo{err: errors.New("must not be called")},
		&stubGraph{},
		zap.NewNop(),
	)

	for _, req := range []ResolveRequest{
		{},
		{ThreadID: "grp-1"},
		{ExternalUserID: "u-42"},
		{ThreadID: "   ", ExternalUserID: "u-42"},
	} {
		result, err := policy.ResolveContext(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, DenyInvalidRequest, result.Code)
	}

	assert.Zero(t, groupRepo.calls)
	assert.Zero(t, userRepo.calls)
}

func TestResolveContext_GroupNotFound(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-unknown",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, DenyGroupNotFound, result.Code)

	// Deny không mang context fields
	assert.Empty(t, result.WorkspaceID)
	assert.Nil(t, result.UserID)
	assert.Nil(t, result.CreatedAt)
}

func TestResolveContext_AgentNotConfigured(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	// Nhóm thứ hai không có agent
	_, err := env.workspace.AddGroup(context.Background(), AddGroupInput{
		WorkspaceID: "ws-1",
		ThreadID:    "grp-2",
		Name:        "No Agent Group",
	})
	require.NoError(t, err)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-2",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, DenyAgentNotConfigured, result.Code)
}

func TestResolveContext_UserNotFound(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-unknown",
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, DenyUserNotFound, result.Code)
}

func TestResolveContext_UserNotInWorkspace(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	// User tồn tại nhưng không có role trong ws-1
	_, _, err := env.users.CreateOrGet(context.Background(), CreateUserInput{
		ZaloID:   "u-99",
		FullName: "Outsider",
	})
	require.NoError(t, err)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-99",
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, DenyUserNotInWorkspace, result.Code)
}

// Fail-closed: lỗi relational store ngoài dự kiến -> deny INTERNAL_ERROR,
// không bao giờ allow
func TestResolveContext_RelationalOutageFailsClosed(t *testing.T) {
	policy := NewPolicyService(
		&failingGroupRepo{err: errors.New("connection refused")},
		&failingUserRepo{err: errors.New("connection refused")},
		&failingRoleRepo{err: errors.New("connection refused")},
		&failingConfigRepo{err: errors.New("connection refused")},
		&stubGraph{},
		zap.NewNop(),
	)

	result, err := policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, DenyInternalError, result.Code)
}

// Fail-open: graph mirror chết không đổi kết quả allow
func TestResolveContext_GraphOutageFailsOpen(t *testing.T) {
	env := setupEnv(t, &stubGraph{membershipErr: errors.New("neo4j down")})
	seedResolveFixture(t, env)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	require.True(t, result.Allowed)
	assert.Nil(t, result.GraphConsistent)
}

// Graph mismatch chỉ được ghi nhận, không đổi quyết định
func TestResolveContext_GraphMismatchStillAllows(t *testing.T) {
	env := setupEnv(t, &stubGraph{membership: false})
	seedResolveFixture(t, env)

	result, err := env.policy.ResolveContext(context.Background(), ResolveRequest{
		ThreadID:       "grp-1",
		ExternalUserID: "u-42",
	})
	require.NoError(t, err)

	require.True(t, result.Allowed)
	require.NotNil(t, result.GraphConsistent)
	assert.False(t, *result.GraphConsistent)
}

func TestIsAdminInWorkspace(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	isAdmin, err := env.policy.IsAdminInWorkspace(context.Background(), "ws-1", "u-42")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isMember, err := env.policy.IsMemberOfWorkspace(context.Background(), "ws-1", "u-42")
	require.NoError(t, err)
	assert.True(t, isMember)

	// Nâng lên ADMIN
	_, err = env.workspace.AssignRole(context.Background(), AssignRoleInput{
		WorkspaceID: "ws-1",
		UserID:      user.ID,
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)

	isAdmin, err = env.policy.IsAdminInWorkspace(context.Background(), "ws-1", "u-42")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	// User không tồn tại -> false, không error
	isMember, err = env.policy.IsMemberOfWorkspace(context.Background(), "ws-1", "u-unknown")
	require.NoError(t, err)
	assert.False(t, isMember)
}
