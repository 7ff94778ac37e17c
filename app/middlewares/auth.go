package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KhoaTranFitus/backend-food-app/app/responses"
	"github.com/KhoaTranFitus/backend-food-app/app/services"
)

// Keys set vào gin context sau khi auth thành công.
const (
	ContextUserID   = "uid"
	ContextUserName = "name"
	ContextEmail    = "email"
	ContextClaims   = "claims"
)

// RequireAuth middleware kiểm tra Bearer token. Token hợp lệ thì set
// uid/name/email vào context cho controller dùng.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Error:   "unauthorized",
				Message: "Thiếu header Authorization",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Error:   "unauthorized",
				Message: "Header Authorization phải dạng 'Bearer <token>'",
			})
			return
		}

		claims, err := auth.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			msg := "Token không hợp lệ hoặc đã hết hạn"
			if err == services.ErrTokenRevoked {
				msg = "Token đã đăng xuất"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Error:   "unauthorized",
				Message: msg,
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}
