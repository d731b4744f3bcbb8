package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/api/handler"
	"whereabouts/backend/pkg/jwt"
	"whereabouts/backend/pkg/response"
)

// TokenChecker 查询 Token 是否已登出（Redis 实现见 pkg/redis）
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token。
// checker 为 nil 时跳过黑名单检查；查询黑名单出错时降级放行。
func JWTAuth(jwtMgr *jwt.Manager, checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" || claims.OwnerID == "" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		if checker != nil {
			revoked, err := checker.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "Token 已登出")
				c.Abort()
				return
			}
		}

		c.Set(handler.CtxOwnerID, claims.OwnerID)
		c.Set(handler.CtxTokenJTI, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(handler.CtxTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// IdentityKey 身份组件调用校验
// 只有持有 X-Identity-Key 的外部身份组件可以为摊主建档、换取 Token。
func IdentityKey(key string) gin.HandlerFunc {
	expected := []byte(key)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader("X-Identity-Key"))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			response.Forbidden(c, 10003, "身份组件密钥无效")
			c.Abort()
			return
		}
		c.Next()
	}
}
