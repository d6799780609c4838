package handlers

import (
	"net/http"

	"agenthub-gin/internal/dto"
	"agenthub-gin/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ===========================================================================
// Account Handler
// Admin endpoints quản lý tài khoản liên kết của workspace
// ===========================================================================

// AccountHandler xử lý các endpoint account
type AccountHandler struct {
	accountService services.AccountService
	logger         *zap.Logger
}

// NewAccountHandler tạo account handler mới
func NewAccountHandler(
	accountService services.AccountService,
	logger *zap.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// RegisterRoutes đăng ký routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("/:id/accounts", h.Create)
		workspaces.GET("/:id/accounts", h.List)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id", h.Get)
		accounts.PATCH("/:id", h.Update)
		accounts.DELETE("/:id", h.Delete)
	}
}

// Create tạo account mới trong workspace
// POST /api/v1/workspaces/:id/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), services.CreateAccountInput{
		WorkspaceID: c.Param("id"),
		Type:        req.Type,
		ReferenceID: req.ReferenceID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(account))
}

// List lấy danh sách accounts trong workspace
// GET /api/v1/workspaces/:id/accounts
func (h *AccountHandler) List(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	accounts, total, err := h.accountService.ListByWorkspace(c.Request.Context(), c.Param("id"), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(accounts, dto.NewMeta(p.Page, p.Limit, total)))
}

// Get lấy account theo ID
// GET /api/v1/accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid account id"))
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(account))
}

// Update cập nhật account
// PATCH /api/v1/accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid account id"))
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), id, services.UpdateAccountInput{
		Type:        req.Type,
		ReferenceID: req.ReferenceID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(account))
}

// Delete xóa account
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid account id"))
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
