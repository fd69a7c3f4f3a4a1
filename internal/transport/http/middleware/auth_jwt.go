package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"personnel-api/internal/core/auth"
)

// AuthJWT 解析 Bearer token 并把调用方放进请求 context。
// token 缺失或无效时不拦截，交给 service 层按操作判定 401/403。
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.Next()
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(auth.WithCaller(c.Request.Context(), claims.Caller()))
		c.Next()
	}
}
