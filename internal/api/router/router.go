package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whereabouts/backend/config"
	"whereabouts/backend/internal/api/handler"
	"whereabouts/backend/internal/api/middleware"
	"whereabouts/backend/pkg/jwt"
	"whereabouts/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可以为 nil：此时跳过 Token 黑名单与限流。
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// 避免把 nil *redis.Client 包成非 nil 接口
	var (
		checker middleware.TokenChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		checker = rdb
		limiter = rdb
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 身份组件回调（无需 Token，校验组件密钥）
		identity := v1.Group("/identity")
		{
			identity.POST("/sign-in", middleware.IdentityKey(cfg.Auth.IdentityKey), h.Owner.SignIn)
		}

		// 公开查询
		v1.GET("/availability", h.Availability.ListActive)
		v1.GET("/vendors/:id/schedules", h.Vendor.ListVendorSchedules)
		v1.GET("/export/availability", h.Export.ExportAvailability)
		v1.GET("/export/vendors/:id/calendar", h.Export.ExportVendorCalendar)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, checker))
		{
			authorized.POST("/identity/sign-out", h.Owner.SignOut)
			authorized.GET("/owners/me", h.Owner.GetCurrentOwner)

			// 摊主的商家（所有权校验在 Handler 层完成）
			vendors := authorized.Group("/vendors")
			{
				vendors.GET("/mine", h.Vendor.ListMyVendors)
				vendors.POST("", h.Vendor.CreateVendor)
				vendors.PUT("/:id", h.Vendor.UpdateVendor)
				vendors.DELETE("/:id", h.Vendor.DeleteVendor)
			}

			authorized.DELETE("/schedules/:id", h.Availability.DeleteSchedule)
		}
	}

	return r
}
