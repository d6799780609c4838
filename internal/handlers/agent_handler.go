package handlers

import (
	"net/http"

	"agenthub-gin/internal/dto"
	"agenthub-gin/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Agent Handler
// Admin endpoints quản lý agent toàn cục và gán agent cho workspace
// ===========================================================================

// AgentHandler xử lý các endpoint agent
type AgentHandler struct {
	agentService services.AgentService
	logger       *zap.Logger
}

// NewAgentHandler tạo agent handler mới
func NewAgentHandler(
	agentService services.AgentService,
	logger *zap.Logger,
) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		logger:       logger,
	}
}

// RegisterRoutes đăng ký routes
func (h *AgentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	agents := rg.Group("/agents")
	{
		agents.POST("", h.Create)
		agents.GET("", h.List)
		agents.GET("/:key", h.Get)
		agents.PATCH("/:key", h.Update)
		agents.DELETE("/:key", h.Delete)
	}

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("/:id/agents", h.AssignToWorkspace)
		workspaces.GET("/:id/agents", h.ListWorkspaceConfigs)
		workspaces.PATCH("/:id/agents/:key", h.UpdateWorkspaceConfig)
	}
}

// Create tạo agent toàn cục mới
// POST /api/v1/agents
func (h *AgentHandler) Create(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	agent, err := h.agentService.Create(c.Request.Context(), services.CreateAgentInput{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(agent))
}

// List lấy danh sách agents
// GET /api/v1/agents
func (h *AgentHandler) List(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	agents, total, err := h.agentService.List(c.Request.Context(), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(agents, dto.NewMeta(p.Page, p.Limit, total)))
}

// Get lấy agent theo key
// GET /api/v1/agents/:key
func (h *AgentHandler) Get(c *gin.Context) {
	agent, err := h.agentService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(agent))
}

// Update cập nhật agent
// PATCH /api/v1/agents/:key
func (h *AgentHandler) Update(c *gin.Context) {
	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	agent, err := h.agentService.Update(c.Request.Context(), c.Param("key"), services.UpdateAgentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(agent))
}

// Delete xóa agent
// DELETE /api/v1/agents/:key
//
// 409 nếu agent còn được workspace nào tham chiếu
func (h *AgentHandler) Delete(c *gin.Context) {
	if err := h.agentService.Delete(c.Request.Context(), c.Param("key")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// AssignToWorkspace gán agent cho workspace với config riêng
// POST /api/v1/workspaces/:id/agents
func (h *AgentHandler) AssignToWorkspace(c *gin.Context) {
	var req dto.AssignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	config, err := h.agentService.AssignToWorkspace(c.Request.Context(), services.AssignAgentInput{
		WorkspaceID:  c.Param("id"),
		AgentKey:     req.AgentKey,
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(config))
}

// ListWorkspaceConfigs lấy mọi agent config của workspace
// GET /api/v1/workspaces/:id/agents
func (h *AgentHandler) ListWorkspaceConfigs(c *gin.Context) {
	configs, err := h.agentService.ListWorkspaceConfigs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(configs))
}

// UpdateWorkspaceConfig cập nhật config của cặp (workspace, agent)
// PATCH /api/v1/workspaces/:id/agents/:key
func (h *AgentHandler) UpdateWorkspaceConfig(c *gin.Context) {
	var req dto.UpdateAgentConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	config, err := h.agentService.UpdateWorkspaceConfig(c.Request.Context(), c.Param("id"), c.Param("key"), services.UpdateAgentConfigInput{
		SystemPrompt: req.SystemPrompt,
		Temperature:  req.Temperature,
		MaxTokens:    req.MaxTokens,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(config))
}
