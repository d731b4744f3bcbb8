package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whereabouts/backend/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes: 允许的最大请求体字节数（如 1<<20 = 1MB）；<=0 表示不限制
//
// 声明了 Content-Length 的请求直接拒绝；未声明的由 MaxBytesReader 在读取时截断，
// 之后的 JSON 绑定会失败并返回 400。
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10006, "请求体过大")
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
