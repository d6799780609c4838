package middleware

import (
	"github.com/gin-gonic/gin"
)

// ===========================================================================
// CORS Middleware
// Xử lý Cross-Origin Resource Sharing cho admin dashboard
// Cho phép browser gọi API từ domain khác
// ===========================================================================

// CORS middleware xử lý CORS headers
// allowedOrigins: danh sách origins được phép (dùng "*" cho tất cả)
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, o := range allowedOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Request-ID, X-API-Key")
			c.Header("Access-Control-Allow-Credentials", "true")

			// Cache preflight request 24 giờ
			c.Header("Access-Control-Max-Age", "86400")
		}

		// Handle preflight request (OPTIONS)
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
