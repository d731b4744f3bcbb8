package service

import (
	"go.uber.org/zap"

	"whereabouts/backend/internal/repository"
	"whereabouts/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Owner        OwnerService
	Vendor       VendorService
	Availability AvailabilityService
	Export       ExportService
}

// NewService 创建 Service 聚合；blacklist 可为 nil
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	engine := NewReconcileEngine(logger)
	return &Service{
		Owner:        NewOwnerService(repo, jwtMgr, blacklist, logger),
		Vendor:       NewVendorService(repo, engine, logger),
		Availability: NewAvailabilityService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}
