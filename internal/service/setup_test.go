package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"whereabouts/backend/config"
	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/model"
	"whereabouts/backend/internal/repository"
	"whereabouts/backend/internal/testutil"
	"whereabouts/backend/pkg/jwt"
)

// ── 测试辅助 ──

type fakeBlacklist struct {
	jti string
	ttl time.Duration
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.jti = jti
	f.ttl = ttl
	return nil
}

type testEnv struct {
	db        *gorm.DB
	repo      *repository.Repository
	svc       *Service
	jwtMgr    *jwt.Manager
	blacklist *fakeBlacklist
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repository.NewRepository(db)
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "service-test-secret-0123456789",
		AccessTokenTTL: time.Hour,
	})
	bl := &fakeBlacklist{}
	return &testEnv{
		db:        db,
		repo:      repo,
		svc:       NewService(repo, jwtMgr, bl, zap.NewNop()),
		jwtMgr:    jwtMgr,
		blacklist: bl,
	}
}

func (e *testEnv) owner(t *testing.T, subject string) *model.Owner {
	t.Helper()
	return testutil.SeedOwner(t, e.db, subject, "摊主-"+subject, subject+"@example.com")
}

func ptr[T any](v T) *T { return &v }

// tacoCartRequest Taco Cart 示例：2024-06-01 10:00–14:00
func tacoCartRequest() *dto.CreateVendorRequest {
	return &dto.CreateVendorRequest{
		Name:      "Taco Cart",
		Start:     "2024-06-01T10:00Z",
		End:       "2024-06-01T14:00Z",
		Latitude:  ptr(37.77),
		Longitude: ptr(-122.41),
		Address:   ptr("5th & Main"),
	}
}

func (e *testEnv) countSchedules(t *testing.T, vendorID string) int {
	t.Helper()
	list, err := e.repo.Schedule.ListByVendor(context.Background(), vendorID)
	if err != nil {
		t.Fatalf("列出时段失败: %v", err)
	}
	return len(list)
}
