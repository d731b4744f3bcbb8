package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/pkg/response"
)

// 认证中间件写入 Gin 上下文的键
const (
	CtxOwnerID  = "owner_id"
	CtxTokenJTI = "token_jti"
	CtxTokenExp = "token_exp"
)

// MustGetOwnerID 从 Gin 上下文中安全提取 owner_id。
// 如果 JWT 中间件未正确注入 owner_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetOwnerID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxOwnerID)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// tokenMeta 当前 Token 的 jti 与过期时间（登出时使用）
func tokenMeta(c *gin.Context) (string, time.Time) {
	jti := c.GetString(CtxTokenJTI)
	exp, _ := c.Get(CtxTokenExp)
	expAt, _ := exp.(time.Time)
	return jti, expAt
}

// bindPathID 读取路径中的 :id。
// 主键是 UUID，格式不合法的 ID 不可能存在，调用方按"未找到"处理，不再查库。
func bindPathID(c *gin.Context) (string, bool) {
	var p dto.PathID
	if err := c.ShouldBindUri(&p); err != nil {
		return "", false
	}
	return p.ID, true
}
