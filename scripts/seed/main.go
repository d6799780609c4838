package main

import (
	"context"
	"fmt"
	"os"

	"agenthub-gin/internal/config"
	"agenthub-gin/internal/database"
	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/repositories"
	"agenthub-gin/internal/services"
	"agenthub-gin/pkg/logger"

	"go.uber.org/zap"
)

// ===========================================================================
// Seed Script
// Tạo dữ liệu mẫu cho development: một workspace với nhóm chat,
// agent và thành viên đầy đủ để test resolve-context
//
// Chạy: go run scripts/seed/main.go
// ===========================================================================

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger("info", "console")
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	var graphStore graph.Store
	graphStore, err = graph.NewNeo4jStore(&cfg.Neo4j)
	if err != nil {
		log.Warn("neo4j unavailable, seeding relational store only", zap.Error(err))
		graphStore = graph.NewNoop()
	}
	defer graphStore.Close(context.Background())

	ctx := context.Background()

	// Repositories + services - seed đi qua service layer để graph mirror
	// và audit log được ghi giống hệt production
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewZaloGroupRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	configRepo := repositories.NewAgentConfigRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	auditService := services.NewAuditService(auditRepo, log)
	userService := services.NewUserService(userRepo, graphStore, auditService, log)
	agentService := services.NewAgentService(agentRepo, configRepo, workspaceRepo, graphStore, auditService, log)
	workspaceService := services.NewWorkspaceService(
		workspaceRepo,
		groupRepo,
		userRepo,
		roleRepo,
		agentRepo,
		graphStore,
		auditService,
		log,
	)

	// =========================================================================
	// Workspace
	// =========================================================================
	workspace, err := workspaceService.Create(ctx, services.CreateWorkspaceInput{
		ID:          "ws-1",
		Name:        "Demo Workspace",
		Description: "Workspace mẫu cho development",
	})
	if err != nil {
		log.Fatal("seed workspace failed", zap.Error(err))
	}
	log.Info("seeded workspace", zap.String("id", workspace.ID))

	// =========================================================================
	// Agent + config cho workspace
	// =========================================================================
	agent, err := agentService.Create(ctx, services.CreateAgentInput{
		Key:         "agent_support",
		Name:        "Support Agent",
		Description: "Agent trả lời câu hỏi hỗ trợ khách hàng",
	})
	if err != nil {
		log.Fatal("seed agent failed", zap.Error(err))
	}

	temperature := 0.5
	if _, err := agentService.AssignToWorkspace(ctx, services.AssignAgentInput{
		WorkspaceID:  workspace.ID,
		AgentKey:     agent.Key,
		SystemPrompt: "Bạn là trợ lý hỗ trợ khách hàng thân thiện.",
		Temperature:  &temperature,
	}); err != nil {
		log.Fatal("seed agent config failed", zap.Error(err))
	}
	log.Info("seeded agent", zap.String("key", agent.Key))

	// =========================================================================
	// Nhóm chat gắn agent
	// =========================================================================
	agentKey := agent.Key
	group, err := workspaceService.AddGroup(ctx, services.AddGroupInput{
		WorkspaceID: workspace.ID,
		ThreadID:    "grp-1",
		Name:        "Nhóm hỗ trợ khách hàng",
		AgentKey:    &agentKey,
	})
	if err != nil {
		log.Fatal("seed group failed", zap.Error(err))
	}
	log.Info("seeded group", zap.String("thread_id", group.ThreadID))

	// =========================================================================
	// Users + roles
	// =========================================================================
	member, _, err := userService.CreateOrGet(ctx, services.CreateUserInput{
		ZaloID:   "u-42",
		FullName: "Nguyễn Văn A",
	})
	if err != nil {
		log.Fatal("seed member failed", zap.Error(err))
	}
	if _, err := workspaceService.AssignRole(ctx, services.AssignRoleInput{
		WorkspaceID: workspace.ID,
		UserID:      member.ID,
		Role:        models.RoleMember,
	}); err != nil {
		log.Fatal("seed member role failed", zap.Error(err))
	}

	admin, _, err := userService.CreateOrGet(ctx, services.CreateUserInput{
		ZaloID:   "u-1",
		FullName: "Trần Thị B",
	})
	if err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}
	if _, err := workspaceService.AssignRole(ctx, services.AssignRoleInput{
		WorkspaceID: workspace.ID,
		UserID:      admin.ID,
		Role:        models.RoleAdmin,
	}); err != nil {
		log.Fatal("seed admin role failed", zap.Error(err))
	}

	log.Info("seed completed",
		zap.String("workspace", workspace.ID),
		zap.String("thread_id", group.ThreadID),
		zap.String("member_zalo_id", member.ZaloID),
		zap.String("admin_zalo_id", admin.ZaloID),
	)
}
