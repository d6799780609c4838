package services

import (
	"context"
	"testing"

	apperrors "agenthub-gin/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================================================================
// Agent Service Tests
// ===========================================================================

func TestAgentAssignToWorkspace_Defaults(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	config, err := env.agents.AssignToWorkspace(context.Background(), AssignAgentInput{
		WorkspaceID: "ws-1",
		AgentKey:    "agent_support",
	})
	require.NoError(t, err)

	// Không chỉ định thì dùng mặc định
	assert.Equal(t, 0.7, config.Temperature)
	assert.Equal(t, 2000, config.MaxTokens)
}

func TestAgentAssignToWorkspace_Duplicate(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	_, err := env.agents.AssignToWorkspace(context.Background(), AssignAgentInput{
		WorkspaceID: "ws-1",
		AgentKey:    "agent_support",
	})
	require.NoError(t, err)

	// Cặp (workspace, agent) chỉ được gán một lần
	_, err = env.agents.AssignToWorkspace(context.Background(), AssignAgentInput{
		WorkspaceID: "ws-1",
		AgentKey:    "agent_support",
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateEntry))
}

// Referential guard: agent còn được workspace tham chiếu thì không xóa được
func TestAgentDelete_ReferentialGuard(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	_, err := env.agents.AssignToWorkspace(context.Background(), AssignAgentInput{
		WorkspaceID: "ws-1",
		AgentKey:    "agent_support",
	})
	require.NoError(t, err)

	err = env.agents.Delete(context.Background(), "agent_support")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	// Agent không còn được tham chiếu thì xóa được
	_, err = env.agents.Create(context.Background(), CreateAgentInput{Key: "agent_unused", Name: "Unused"})
	require.NoError(t, err)
	require.NoError(t, env.agents.Delete(context.Background(), "agent_unused"))

	_, err = env.agents.Get(context.Background(), "agent_unused")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestAgentCreate_DuplicateKey(t *testing.T) {
	env := setupEnv(t, nil)

	_, err := env.agents.Create(context.Background(), CreateAgentInput{Key: "agent_sales", Name: "Sales"})
	require.NoError(t, err)

	_, err = env.agents.Create(context.Background(), CreateAgentInput{Key: "agent_sales", Name: "Sales Again"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateEntry))
}

func TestUpdateWorkspaceConfig(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	_, err := env.agents.AssignToWorkspace(context.Background(), AssignAgentInput{
		WorkspaceID: "ws-1",
		AgentKey:    "agent_support",
	})
	require.NoError(t, err)

	prompt := "Chỉ trả lời về đơn hàng."
	maxTokens := 1000
	config, err := env.agents.UpdateWorkspaceConfig(context.Background(), "ws-1", "agent_support", UpdateAgentConfigInput{
		SystemPrompt: &prompt,
		MaxTokens:    &maxTokens,
	})
	require.NoError(t, err)

	assert.Equal(t, prompt, config.SystemPrompt)
	assert.Equal(t, 1000, config.MaxTokens)
	// Temperature không đổi
	assert.Equal(t, 0.7, config.Temperature)
}
