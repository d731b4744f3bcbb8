package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"whereabouts/backend/config"
	"whereabouts/backend/internal/api/handler"
	"whereabouts/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── 测试辅助 ──

type stubChecker struct {
	revoked map[string]bool
	err     error
}

func (s *stubChecker) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func newJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "middleware-test-secret-0123456789",
		AccessTokenTTL: time.Hour,
	})
}

func protectedRouter(mgr *jwt.Manager, checker TokenChecker) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuth(mgr, checker), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(handler.CtxOwnerID))
	})
	return r
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── JWTAuth ──

func TestJWTAuth_MissingHeader(t *testing.T) {
	r := protectedRouter(newJWTManager(), nil)
	w := doRequest(r, httptest.NewRequest("GET", "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := newJWTManager()
	token, _ := mgr.GenerateAccessToken("owner-1")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(protectedRouter(mgr, &stubChecker{}), req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if w.Body.String() != "owner-1" {
		t.Errorf("期望注入 owner-1，实际=%s", w.Body.String())
	}
}

func TestJWTAuth_BlacklistedToken(t *testing.T) {
	mgr := newJWTManager()
	token, _ := mgr.GenerateAccessToken("owner-1")
	claims, _ := mgr.ParseToken(token)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(protectedRouter(mgr, &stubChecker{revoked: map[string]bool{claims.ID: true}}), req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("已登出的 Token 应返回 401，实际=%d", w.Code)
	}
}

func TestJWTAuth_CheckerErrorFailsOpen(t *testing.T) {
	mgr := newJWTManager()
	token, _ := mgr.GenerateAccessToken("owner-1")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := doRequest(protectedRouter(mgr, &stubChecker{err: errors.New("redis down")}), req)

	if w.Code != http.StatusOK {
		t.Errorf("黑名单不可用时应降级放行，实际=%d", w.Code)
	}
}

// ── IdentityKey ──

func TestIdentityKey(t *testing.T) {
	r := gin.New()
	r.POST("/sign-in", IdentityKey("gateway-key"), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"缺少密钥", "", http.StatusForbidden},
		{"密钥错误", "nope", http.StatusForbidden},
		{"密钥正确", "gateway-key", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/sign-in", nil)
			if tt.header != "" {
				req.Header.Set("X-Identity-Key", tt.header)
			}
			if w := doRequest(r, req); w.Code != tt.want {
				t.Errorf("期望 %d，实际=%d", tt.want, w.Code)
			}
		})
	}
}

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{allow: false}
	r := gin.New()
	r.GET("/availability", RateLimit(limiter, 10, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, httptest.NewRequest("GET", "/availability", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("期望 429，实际=%d", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("期望 Retry-After=60，实际=%s", w.Header().Get("Retry-After"))
	}
	if len(limiter.keys) != 1 || !strings.HasSuffix(limiter.keys[0], ":/availability") {
		t.Errorf("限流键应包含路由，实际=%v", limiter.keys)
	}
}

func TestRateLimit_NilLimiterPasses(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 10, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := doRequest(r, httptest.NewRequest("GET", "/x", nil)); w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

// ── BodyLimit ──

func TestBodyLimit_DeclaredLengthTooLarge(t *testing.T) {
	r := gin.New()
	r.POST("/vendors", BodyLimit(16), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("POST", "/vendors", strings.NewReader(strings.Repeat("x", 64)))
	if w := doRequest(r, req); w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("期望 413，实际=%d", w.Code)
	}
}

// ── RequestID / CORS / SecurityHeaders ──

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := doRequest(r, httptest.NewRequest("GET", "/x", nil))
	rid := w.Header().Get("X-Request-ID")
	if rid == "" || rid != w.Body.String() {
		t.Errorf("响应头与上下文中的 request_id 应一致，header=%s body=%s", rid, w.Body.String())
	}

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	w = doRequest(r, req)
	if w.Header().Get("X-Request-ID") != "upstream-123" {
		t.Error("应沿用上游 X-Request-ID")
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := doRequest(r, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("允许的来源应回写 Allow-Origin")
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = doRequest(r, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应回写 Allow-Origin")
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, httptest.NewRequest("GET", "/x", nil))
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("期望 X-Frame-Options=DENY")
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("期望 X-Content-Type-Options=nosniff")
	}
}
