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
// User Handler
// Admin endpoints quản lý user
// ===========================================================================

// UserHandler xử lý các endpoint user
type UserHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUserHandler tạo user handler mới
func NewUserHandler(
	userService services.UserService,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes đăng ký routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.PATCH("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}

// Create tạo user mới - idempotent theo zalo_id
// POST /api/v1/users
//
// 201 khi tạo mới, 200 khi zalo_id đã tồn tại (trả về record cũ)
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	user, created, err := h.userService.CreateOrGet(c.Request.Context(), services.CreateUserInput{
		ZaloID:   req.ZaloID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   req.Gender,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.Success(user))
}

// List lấy danh sách users
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var p dto.PaginationRequest
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}
	p.SetDefaults()

	users, total, err := h.userService.List(c.Request.Context(), findOptions(p))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessWithMeta(users, dto.NewMeta(p.Page, p.Limit, total)))
}

// Get lấy user theo ID
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid user id"))
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(user))
}

// Update cập nhật profile user
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid user id"))
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", err.Error()))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, services.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Gender:   req.Gender,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(user))
}

// Delete xóa user
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Error("INVALID_INPUT", "invalid user id"))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
