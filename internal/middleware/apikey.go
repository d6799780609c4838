package middleware

import (
	"crypto/subtle"
	"net/http"

	"agenthub-gin/internal/dto"

	"github.com/gin-gonic/gin"
)

// ===========================================================================
// API Key Middleware
// Bảo vệ admin endpoints bằng shared API key trong header X-API-Key
// Key rỗng (môi trường dev) -> middleware cho qua tất cả
// ===========================================================================

// APIKeyHeader tên header chứa API key
const APIKeyHeader = "X-API-Key"

// APIKey middleware kiểm tra API key
// So sánh constant-time để tránh timing attack
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error(
				"UNAUTHORIZED",
				"Invalid or missing API key",
			))
			return
		}

		c.Next()
	}
}
