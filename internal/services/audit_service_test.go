package services

import (
	"context"
	"testing"

	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================================================================
// Audit Service Tests
// ===========================================================================

func TestAuditTrail_MutationsAppendRows(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	// Fixture thực hiện 5 mutation: workspace, agent, group, user, role
	logs, total, err := env.audit.List(context.Background(), "", repositories.FindOptions{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 5)

	for _, log := range logs {
		assert.Equal(t, models.AuditSuccess, log.Status)
		assert.NotEmpty(t, log.Action)
		assert.NotEmpty(t, log.EntityType)
	}
}

// Filter action là substring match, không phân biệt hoa thường
func TestAuditList_ActionSubstringFilter(t *testing.T) {
	env := setupEnv(t, nil)
	user := seedResolveFixture(t, env)

	_, err := env.workspace.AssignRole(context.Background(), AssignRoleInput{
		WorkspaceID: "ws-1",
		UserID:      user.ID,
		Role:        models.RoleAdmin,
	})
	require.NoError(t, err)

	// "role" khớp cả ASSIGN_USER_ROLE lẫn UPDATE_USER_ROLE
	logs, total, err := env.audit.List(context.Background(), "role", repositories.FindOptions{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, log := range logs {
		assert.Contains(t, log.Action, "ROLE")
	}
}

func TestAuditListByWorkspaceAndEntity(t *testing.T) {
	env := setupEnv(t, nil)
	seedResolveFixture(t, env)

	byWorkspace, _, err := env.audit.ListByWorkspace(context.Background(), "ws-1", repositories.FindOptions{Limit: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, byWorkspace)
	for _, log := range byWorkspace {
		require.NotNil(t, log.WorkspaceID)
		assert.Equal(t, "ws-1", *log.WorkspaceID)
	}

	byEntity, err := env.audit.ListByEntity(context.Background(), "Workspace", "ws-1", 10)
	require.NoError(t, err)
	require.Len(t, byEntity, 1)
	assert.Equal(t, ActionCreateWorkspace, byEntity[0].Action)
}
