package handlers

import (
	"errors"

	"agenthub-gin/internal/dto"
	apperrors "agenthub-gin/internal/errors"
	"agenthub-gin/internal/repositories"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ===========================================================================
// Handler Helpers
// ===========================================================================

// respondError map error sang HTTP response chuẩn
// AppError giữ nguyên message, lỗi ngoài dự kiến trả về generic 500
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.StatusCode, dto.Error(appErr.Code, appErr.Message))
		return
	}

	logger.Error("unhandled error",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(apperrors.StatusCode(err), dto.Error(apperrors.ErrorCode(err), "Đã có lỗi xảy ra"))
}

// findOptions chuyển pagination request sang repository options
func findOptions(p dto.PaginationRequest) repositories.FindOptions {
	p.SetDefaults()
	return repositories.FindOptions{
		Offset: p.Offset(),
		Limit:  p.Limit,
	}
}
