package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agenthub-gin/internal/config"
	"agenthub-gin/internal/database"
	"agenthub-gin/internal/graph"
	"agenthub-gin/internal/handlers"
	"agenthub-gin/internal/middleware"
	"agenthub-gin/internal/repositories"
	"agenthub-gin/internal/services"
	"agenthub-gin/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// =========================================================================
	// Load configuration
	// =========================================================================
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Khởi tạo Logger
	// =========================================================================
	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// =========================================================================
	// Kết nối Database (source of truth)
	// =========================================================================
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Auto migrate trong development mode
	if cfg.App.IsDevelopment() {
		if err := database.AutoMigrate(db); err != nil {
			log.Warn("auto migrate failed", zap.Error(err))
		} else {
			log.Info("database auto migration completed")
		}
	}

	// pg_trgm cho fuzzy search - cần quyền CREATE EXTENSION
	if err := database.EnableTrigram(db); err != nil {
		log.Warn("pg_trgm extension not available, search falls back to ILIKE", zap.Error(err))
	}

	// =========================================================================
	// Kết nối Graph Store (mirror, advisory)
	// Không kết nối được -> noop store, server vẫn chạy bình thường
	// =========================================================================
	var graphStore graph.Store
	graphStore, err = graph.NewNeo4jStore(&cfg.Neo4j)
	if err != nil {
		log.Warn("neo4j driver init failed, using noop graph store", zap.Error(err))
		graphStore = graph.NewNoop()
	} else {
		verifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := graphStore.VerifyConnectivity(verifyCtx); err != nil {
			log.Warn("neo4j unreachable, using noop graph store", zap.Error(err))
			graphStore = graph.NewNoop()
		} else {
			log.Info("neo4j connected", zap.String("uri", cfg.Neo4j.URI))
		}
		cancel()
	}
	defer graphStore.Close(context.Background())

	// =========================================================================
	// Khởi tạo Repositories
	// =========================================================================
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewZaloGroupRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	configRepo := repositories.NewAgentConfigRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	log.Info("repositories initialized")

	// =========================================================================
	// Khởi tạo Services
	// =========================================================================
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
	accountService := services.NewAccountService(accountRepo, workspaceRepo, auditService, log)
	policyService := services.NewPolicyService(groupRepo, userRepo, roleRepo, configRepo, graphStore, log)

	log.Info("services initialized")

	// =========================================================================
	// Khởi tạo Handlers
	// =========================================================================
	policyHandler := handlers.NewPolicyHandler(policyService, log)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, log)
	userHandler := handlers.NewUserHandler(userService, log)
	agentHandler := handlers.NewAgentHandler(agentService, log)
	accountHandler := handlers.NewAccountHandler(accountService, log)
	auditHandler := handlers.NewAuditHandler(auditService, log)

	log.Info("handlers initialized")

	// =========================================================================
	// Thiết lập Gin Router
	// =========================================================================
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORS([]string{"*"}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.App.Name,
			"version": "1.0.0",
		})
	})

	// =========================================================================
	// API Routes
	// =========================================================================
	api := router.Group("/api/v1")
	{
		// Resolve endpoint - gọi bởi message gateway, không cần API key
		policyHandler.RegisterRoutes(api)

		// Admin routes - bảo vệ bằng API key nếu được cấu hình
		admin := api.Group("")
		admin.Use(middleware.APIKey(cfg.App.APIKey))
		{
			workspaceHandler.RegisterRoutes(admin)
			userHandler.RegisterRoutes(admin)
			agentHandler.RegisterRoutes(admin)
			accountHandler.RegisterRoutes(admin)
			auditHandler.RegisterRoutes(admin)
		}
	}

	log.Info("routes registered",
		zap.Strings("endpoints", []string{
			"/api/v1/agent/resolve-context",
			"/api/v1/workspaces",
			"/api/v1/users",
			"/api/v1/agents",
			"/api/v1/audit-logs",
		}),
	)

	// =========================================================================
	// Khởi động HTTP Server
	// =========================================================================
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// =========================================================================
	// Graceful Shutdown
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
