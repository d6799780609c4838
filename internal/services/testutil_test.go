package services

import (
	"context"
	"testing"

	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===========================================================================
// Test Helpers
// Tests chạy trên SQLite in-memory với repository thật
// ===========================================================================

// testEnv gom toàn bộ services với dependencies thật trên SQLite
type testEnv struct {
	db *gorm.DB

	audit     AuditService
	users     UserService
	agents    AgentService
	workspace WorkspaceService
	accounts  AccountService
	policy    PolicyService

	auditRepo repositories.AuditLogRepository
	roleRepo  repositories.RoleRepository
}

// setupDB mở SQLite in-memory và migrate toàn bộ schema
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// setupEnv dựng services với graph store tùy chọn
// graphStore nil thì dùng noop
func setupEnv(t *testing.T, graphStore graph.Store) *testEnv {
	t.Helper()

	db := setupDB(t)
	if graphStore == nil {
		graphStore = graph.NewNoop()
	}
	logger := zap.NewNop()

	workspaceRepo := repositories.NewWorkspaceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewZaloGroupRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	configRepo := repositories.NewAgentConfigRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	audit := NewAuditService(auditRepo, logger)

	return &testEnv{
		db:        db,
		audit:     audit,
		users:     NewUserService(userRepo, graphStore, audit, logger),
		agents:    NewAgentService(agentRepo, configRepo, workspaceRepo, graphStore, audit, logger),
		workspace: NewWorkspaceService(workspaceRepo, groupRepo, userRepo, roleRepo, agentRepo, graphStore, audit, logger),
		accounts:  NewAccountService(accountRepo, workspaceRepo, audit, logger),
		policy:    NewPolicyService(groupRepo, userRepo, roleRepo, configRepo, graphStore, logger),
		auditRepo: auditRepo,
		roleRepo:  roleRepo,
	}
}

// seedResolveFixture dựng dữ liệu đủ để resolve thành công:
// workspace ws-1, nhóm grp-1 gắn agent_support, user u-42 là MEMBER
func seedResolveFixture(t *testing.T, env *testEnv) *models.User {
	t.Helper()
	ctx := context.Background()

	_, err := env.workspace.Create(ctx, CreateWorkspaceInput{ID: "ws-1", Name: "Demo Workspace"})
	require.NoError(t, err)

	_, err = env.agents.Create(ctx, CreateAgentInput{Key: "agent_support", Name: "Support Agent"})
	require.NoError(t, err)

	agentKey := "agent_support"
	_, err = env.workspace.AddGroup(ctx, AddGroupInput{
		WorkspaceID: "ws-1",
		ThreadID:    "grp-1",
		Name:        "Support Group",
		AgentKey:    &agentKey,
	})
	require.NoError(t, err)

	user, created, err := env.users.CreateOrGet(ctx, CreateUserInput{ZaloID: "u-42", FullName: "Nguyễn Văn A"})
	require.NoError(t, err)
	require.True(t, created)

	_, err = env.workspace.AssignRole(ctx, AssignRoleInput{
		WorkspaceID: "ws-1",
		UserID:      user.ID,
		Role:        models.RoleMember,
	})
	require.NoError(t, err)

	return user
}
