package handlers

import (
	"net/http"

	"agenthub-gin/internal/dto"
	"agenthub-gin/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Policy Handler
// Endpoint chính của hệ thống: message gateway gọi resolve-context
// cho mỗi tin nhắn đến để quyết định allow/deny
// ===========================================================================

// PolicyHandler xử lý các endpoint access control
type PolicyHandler struct {
	policyService services.PolicyService
	logger        *zap.Logger
}

// NewPolicyHandler tạo policy handler mới
func NewPolicyHandler(
	policyService services.PolicyService,
	logger *zap.Logger,
) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
		logger:        logger,
	}
}

// RegisterRoutes đăng ký routes
func (h *PolicyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	agent := rg.Group("/agent")
	{
		agent.POST("/resolve-context", h.ResolveContext)
	}
}

// ResolveContext quyết định user có được nói chuyện với agent không
// POST /api/v1/agent/resolve-context
//
// Endpoint này KHÔNG dùng dto.Response envelope: message gateway parse
// body phẳng {allowed, error?, message?, workspace_id?, ...} - body chính
// là ResolveResult serialize trực tiếp
//
// 200: allow kèm context fields
// 403: deny có cấu trúc (trừ INVALID_REQUEST -> 400)
func (h *PolicyHandler) ResolveContext(c *gin.Context) {
	var req dto.ResolveContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, &services.ResolveResult{
			Allowed: false,
			Code:    services.DenyInvalidRequest,
			Reason:  "thread_id and external_user_id are required",
		})
		return
	}

	result, err := h.policyService.ResolveContext(c.Request.Context(), services.ResolveRequest{
		ThreadID:       req.ThreadID,
		ExternalUserID: req.ExternalUserID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if result.Allowed {
		c.JSON(http.StatusOK, result)
		return
	}

	status := http.StatusForbidden
	if result.Code == services.DenyInvalidRequest {
		status = http.StatusBadRequest
	}
	c.JSON(status, result)
}
