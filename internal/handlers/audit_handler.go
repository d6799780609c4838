package handlers

import (
	"net/http"
	"strconv"

	"agenthub-gin/internal/dto"
	"agenthub-gin/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Audit Handler
// Read-only endpoints truy vấn nhật ký audit
// ===========================================================================

// AuditHandler xử lý các endpoint audit
type AuditHandler struct {
	auditService services.AuditService
	logger       *zap.Logger
}

// NewAuditHandler tạo audit handler mới
func NewAuditHandler(
	auditService services.AuditService,
	logger *zap.Logger,
) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
		logger:       logger,
	}
}

// RegisterRoutes đăng ký routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := rg.Group("/audit-logs")
	{
		audit.GET("", h.List)
		audit.GET("/workspace/:id", h.ListByWorkspace)
		audit.GET("/user/:id", h.ListByUser)
		audit.GET("/entity/:type/:id", h.ListByEntity)
	}
}

// List lấy toàn bộ audit logs, filter substring theo action nếu có
// GET /api/v1/audit-logs?action=ROLE
func (h *AuditHandler) List(c *gin.Context) {
	var req dto.ListAuditRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	req.SetDefaults()

	logs, total, err := h.auditService.List(c.Request.Context(), req.Action, findOptions(req.PaginationRequest))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(logs, dto.NewMeta(req.Page, req.Limit, total)))
}

// ListByWorkspace lấy audit logs của workspace
// GET /api/v1/audit-logs/workspace/:id
func (h *AuditHandler) ListByWorkspace(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	logs, total, err := h.auditService.ListByWorkspace(c.Request.Context(), c.Param("id"), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(logs, dto.NewMeta(p.Page, p.Limit, total)))
}

// ListByUser lấy audit logs của user
// GET /api/v1/audit-logs/user/:id
func (h *AuditHandler) ListByUser(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	logs, total, err := h.auditService.ListByUser(c.Request.Context(), c.Param("id"), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(logs, dto.NewMeta(p.Page, p.Limit, total)))
}

// ListByEntity lấy lịch sử thay đổi của một entity
// GET /api/v1/audit-logs/entity/:type/:id?limit=50
func (h *AuditHandler) ListByEntity(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid limit"))
			return
		}
		limit = parsed
	}

	logs, err := h.auditService.ListByEntity(c.Request.Context(), c.Param("type"), c.Param("id"), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(logs))
}
