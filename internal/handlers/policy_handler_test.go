package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"
	"agenthub-gin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Policy Handler Tests
// End-to-end qua HTTP layer: gin router + sqlite in-memory
// ===========================================================================

// setupRouter dựng router với dữ liệu resolve mẫu:
// ws-1 / grp-1 / agent_support / u-42 (MEMBER)
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	logger := zap.NewNop()
	graphStore := graph.NewNoop()

	workspaceRepo := repositories.NewWorkspaceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewZaloGroupRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	configRepo := repositories.NewAgentConfigRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	audit := services.NewAuditService(auditRepo, logger)
	userService := services.NewUserService(userRepo, graphStore, audit, logger)
	agentService := services.NewAgentService(agentRepo, configRepo, workspaceRepo, graphStore, audit, logger)
	workspaceService := services.NewWorkspaceService(
		workspaceRepo, groupRepo, userRepo, roleRepo, agentRepo, graphStore, audit, logger,
	)
	policyService := services.NewPolicyService(groupRepo, userRepo, roleRepo, configRepo, graphStore, logger)

	ctx := context.Background()
	_, err = workspaceService.Create(ctx, services.CreateWorkspaceInput{ID: "ws-1", Name: "Demo"})
	require.NoError(t, err)
	_, err = agentService.Create(ctx, services.CreateAgentInput{Key: "agent_support", Name: "Support"})
	require.NoError(t, err)
	agentKey := "agent_support"
	_, err = workspaceService.AddGroup(ctx, services.AddGroupInput{
		WorkspaceID: "ws-1", ThreadID: "grp-1", AgentKey: &agentKey,
	})
	require.NoError(t, err)
	user, _, err := userService.CreateOrGet(ctx, services.CreateUserInput{ZaloID: "u-42"})
	require.NoError(t, err)
	_, err = workspaceService.AssignRole(ctx, services.AssignRoleInput{
		WorkspaceID: "ws-1", UserID: user.ID, Role: models.RoleMember,
	})
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api/v1")
	NewPolicyHandler(policyService, logger).RegisterRoutes(api)
	return router
}

// resolve gọi endpoint và parse response
func resolve(t *testing.T, router *gin.Engine, body map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/resolve-context", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// Body của resolve-context là ResolveResult phẳng, không bọc envelope:
// allow mang context fields ở top-level
func TestResolveEndpoint_Allow(t *testing.T) {
	router := setupRouter(t)

	w, body := resolve(t, router, map[string]string{
		"thread_id":        "grp-1",
		"external_user_id": "u-42",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["allowed"])
	assert.Equal(t, "ws-1", body["workspace_id"])
	assert.Equal(t, "agent_support", body["agent_key"])
	assert.Equal(t, "MEMBER", body["role"])
	assert.NotEmpty(t, body["user_id"])
	assert.NotEmpty(t, body["created_at"])
	assert.Equal(t, 0.7, body["temperature"])
	assert.Equal(t, float64(2000), body["max_tokens"])

	// Không có envelope, không leak kết quả đối chiếu graph
	assert.NotContains(t, body, "success")
	assert.NotContains(t, body, "data")
	assert.NotContains(t, body, "graph_consistent")
}

// Deny phẳng: error là string code, message là free text ở top-level
func TestResolveEndpoint_DenyIs403(t *testing.T) {
	router := setupRouter(t)

	w, body := resolve(t, router, map[string]string{
		"thread_id":        "grp-unknown",
		"external_user_id": "u-42",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, false, body["allowed"])
	assert.Equal(t, "ZALO_GROUP_NOT_FOUND", body["error"])
	assert.Equal(t, "Zalo group not found or not configured", body["message"])

	// Deny không mang context fields
	assert.NotContains(t, body, "workspace_id")
	assert.NotContains(t, body, "created_at")
	assert.NotContains(t, body, "data")
}

func TestResolveEndpoint_MissingFieldsIs400(t *testing.T) {
	router := setupRouter(t)

	w, body := resolve(t, router, map[string]string{
		"thread_id": "grp-1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["allowed"])
	assert.Equal(t, "INVALID_REQUEST", body["error"])
	assert.NotEmpty(t, body["message"])
}
