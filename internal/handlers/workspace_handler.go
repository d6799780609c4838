package handlers

import (
	"net/http"

	"agenthub-gin/internal/dto"
	"agenthub-gin/internal/models"
	"agenthub-gin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Workspace Handler
// Admin endpoints: workspace CRUD, nhóm chat, thành viên
// ===========================================================================

// WorkspaceHandler xử lý các endpoint workspace
type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
	logger           *zap.Logger
}

// NewWorkspaceHandler tạo workspace handler mới
func NewWorkspaceHandler(
	workspaceService services.WorkspaceService,
	logger *zap.Logger,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		logger:           logger,
	}
}

// RegisterRoutes đăng ký routes
func (h *WorkspaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.Create)
		workspaces.GET("", h.List)
		workspaces.GET("/search", h.Search)
		workspaces.GET("/:id", h.Get)
		workspaces.PATCH("/:id", h.Update)
		workspaces.DELETE("/:id", h.Delete)

		workspaces.POST("/:id/groups", h.AddGroup)
		workspaces.GET("/:id/groups", h.ListGroups)
		workspaces.DELETE("/:id/groups/:groupId", h.RemoveGroup)
		workspaces.PUT("/:id/groups/:groupId/agent", h.SetGroupAgent)

		workspaces.POST("/:id/members", h.AssignRole)
		workspaces.GET("/:id/members", h.ListMembers)
		workspaces.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}

// Create tạo workspace mới
// POST /api/v1/workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	workspace, err := h.workspaceService.Create(c.Request.Context(), services.CreateWorkspaceInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(workspace))
}

// List lấy danh sách workspaces
// GET /api/v1/workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	workspaces, total, err := h.workspaceService.List(c.Request.Context(), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(workspaces, dto.NewMeta(p.Page, p.Limit, total)))
}

// Search fuzzy search workspace theo tên
// GET /api/v1/workspaces/search?name=...
func (h *WorkspaceHandler) Search(c *gin.Context) {
	var req dto.SearchWorkspaceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	results, total, err := h.workspaceService.Search(c.Request.Context(), req.Name, req.Threshold, req.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    results,
		Meta:    &dto.Meta{Total: total, Page: 1, Limit: len(results), TotalPages: 1},
	})
}

// Get lấy workspace theo ID
// GET /api/v1/workspaces/:id
func (h *WorkspaceHandler) Get(c *gin.Context) {
	workspace, err := h.workspaceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(workspace))
}

// Update cập nhật workspace
// PATCH /api/v1/workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	input := services.UpdateWorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.WorkspaceStatus(*req.Status)
		input.Status = &status
	}

	workspace, err := h.workspaceService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(workspace))
}

// Delete xóa workspace và mọi dữ liệu phụ thuộc
// DELETE /api/v1/workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	if err := h.workspaceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// AddGroup gắn nhóm chat vào workspace
// POST /api/v1/workspaces/:id/groups
func (h *WorkspaceHandler) AddGroup(c *gin.Context) {
	var req dto.AddGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	group, err := h.workspaceService.AddGroup(c.Request.Context(), services.AddGroupInput{
		WorkspaceID: c.Param("id"),
		ThreadID:    req.ThreadID,
		Name:        req.Name,
		AgentKey:    req.AgentKey,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(group))
}

// ListGroups lấy danh sách nhóm trong workspace
// GET /api/v1/workspaces/:id/groups
func (h *WorkspaceHandler) ListGroups(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	groups, total, err := h.workspaceService.ListGroups(c.Request.Context(), c.Param("id"), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(groups, dto.NewMeta(p.Page, p.Limit, total)))
}

// RemoveGroup gỡ nhóm chat khỏi workspace
// DELETE /api/v1/workspaces/:id/groups/:groupId
func (h *WorkspaceHandler) RemoveGroup(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid group id"))
		return
	}

	if err := h.workspaceService.RemoveGroup(c.Request.Context(), c.Param("id"), groupID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}

// SetGroupAgent thay agent của nhóm chat
// PUT /api/v1/workspaces/:id/groups/:groupId/agent
func (h *WorkspaceHandler) SetGroupAgent(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid group id"))
		return
	}

	var req dto.SetGroupAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	group, err := h.workspaceService.SetGroupAgent(c.Request.Context(), c.Param("id"), groupID, req.AgentKey)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(group))
}

// AssignRole gán role cho user trong workspace (upsert)
// POST /api/v1/workspaces/:id/members
func (h *WorkspaceHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid user id"))
		return
	}

	role, err := h.workspaceService.AssignRole(c.Request.Context(), services.AssignRoleInput{
		WorkspaceID: c.Param("id"),
		UserID:      userID,
		Role:        models.Role(req.Role),
		AssignedBy:  req.AssignedBy,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(role))
}

// ListMembers lấy danh sách thành viên kèm role
// GET /api/v1/workspaces/:id/members
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	members, total, err := h.workspaceService.ListMembers(c.Request.Context(), c.Param("id"), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(members, dto.NewMeta(p.Page, p.Limit, total)))
}

// RemoveMember gỡ user khỏi workspace
// DELETE /api/v1/workspaces/:id/members/:userId
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid user id"))
		return
	}

	if err := h.workspaceService.RemoveMember(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
