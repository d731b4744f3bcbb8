package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/model"
	"whereabouts/backend/internal/repository"
	pkgerrors "whereabouts/backend/pkg/errors"
)

// ── 商家模块业务错误 ──

var (
	ErrVendorNotFound  = pkgerrors.NotFound("商家不存在")
	ErrVendorNameTaken = pkgerrors.Conflict("商家名称已被占用")
)

// VendorService 商家注册表
//
// 所有修改类操作都以 owner_id 为授权边界，唯独 Delete 例外：
// 它不做归属校验，由路由层在调用前完成。
type VendorService interface {
	// ResolveOrCreate 按 (name, owner_id) 幂等注册
	ResolveOrCreate(ctx context.Context, ownerID, name string, link *string) (*dto.VendorResponse, error)
	// Create 注册商家并登记首个时段（单事务）
	Create(ctx context.Context, ownerID string, req *dto.CreateVendorRequest) (*dto.CreateVendorResponse, error)
	// Update 归属校验 + 名称/链接补丁 + 时段协调（单事务）
	Update(ctx context.Context, vendorID, ownerID string, req *dto.UpdateVendorRequest) (*dto.UpdateVendorResponse, error)
	GetByID(ctx context.Context, vendorID string) (*dto.VendorResponse, error)
	// Delete 删除商家及其全部时段；不校验归属
	Delete(ctx context.Context, vendorID string) error
}

type vendorService struct {
	repo   *repository.Repository
	engine *ReconcileEngine
	logger *zap.Logger
}

// NewVendorService 创建 VendorService 实例
func NewVendorService(repo *repository.Repository, engine *ReconcileEngine, logger *zap.Logger) VendorService {
	return &vendorService{repo: repo, engine: engine, logger: logger}
}

// ────────────────────── ResolveOrCreate ──────────────────────

func (s *vendorService) ResolveOrCreate(ctx context.Context, ownerID, name string, link *string) (*dto.VendorResponse, error) {
	var vendor *model.Vendor
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		v, err := s.resolveOrCreate(ctx, tx, ownerID, name, link)
		vendor = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// ────────────────────── Create ──────────────────────

func (s *vendorService) Create(ctx context.Context, ownerID string, req *dto.CreateVendorRequest) (*dto.CreateVendorResponse, error) {
	// 写库前先校验时段，失败时不会留下空商家
	schedule, err := NewScheduleFromTimestamps("", req.Start, req.End, req.Latitude, req.Longitude, req.Address)
	if err != nil {
		return nil, err
	}

	var vendor *model.Vendor
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		v, err := s.resolveOrCreate(ctx, tx, ownerID, req.Name, req.Link)
		if err != nil {
			return err
		}
		vendor = v

		schedule.VendorID = v.VendorID
		if err := tx.Schedule.Create(ctx, schedule); err != nil {
			s.logger.Error("创建时段失败", zap.String("vendor_id", v.VendorID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("商家已登记",
		zap.String("vendor_id", vendor.VendorID),
		zap.String("owner_id", ownerID),
		zap.String("schedule_id", schedule.ScheduleID),
	)

	return &dto.CreateVendorResponse{
		Vendor:   *toVendorResponse(vendor),
		Schedule: *toScheduleResponse(schedule),
	}, nil
}

// ────────────────────── Update ──────────────────────

func (s *vendorService) Update(ctx context.Context, vendorID, ownerID string, req *dto.UpdateVendorRequest) (*dto.UpdateVendorResponse, error) {
	var (
		vendor *model.Vendor
		result *ReconcileResult
	)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		v, err := tx.Vendor.GetByID(ctx, vendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVendorNotFound
			}
			s.logger.Error("查询商家失败", zap.String("vendor_id", vendorID), zap.Error(err))
			return err
		}
		// 不属于调用方与不存在不做区分
		if v.OwnerID != ownerID {
			return ErrVendorNotFound
		}

		if req.Name != nil || req.Link != nil {
			if req.Name != nil {
				v.Name = *req.Name
			}
			if req.Link != nil {
				v.Link = req.Link
			}
			if err := tx.Vendor.Update(ctx, v); err != nil {
				return s.translateWriteError(err, vendorID)
			}
		}
		vendor = v

		result, err = s.engine.Apply(ctx, tx, vendorID, req.Schedules)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpdateVendorResponse{
		Vendor:   *toVendorResponse(vendor),
		Inserted: result.Inserted,
		Updated:  result.Updated,
	}, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *vendorService) GetByID(ctx context.Context, vendorID string) (*dto.VendorResponse, error) {
	vendor, err := s.repo.Vendor.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		s.logger.Error("查询商家失败", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// ────────────────────── Delete ──────────────────────

func (s *vendorService) Delete(ctx context.Context, vendorID string) error {
	return s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Schedule.DeleteByVendor(ctx, vendorID); err != nil {
			s.logger.Error("删除商家时段失败", zap.String("vendor_id", vendorID), zap.Error(err))
			return err
		}

		n, err := tx.Vendor.Delete(ctx, vendorID)
		if err != nil {
			s.logger.Error("删除商家失败", zap.String("vendor_id", vendorID), zap.Error(err))
			return err
		}
		if n == 0 {
			return ErrVendorNotFound
		}
		return nil
	})
}

// ── 内部辅助方法 ──

// resolveOrCreate 在给定事务内按 (name, owner_id) 查找或新建商家
func (s *vendorService) resolveOrCreate(ctx context.Context, tx *repository.Repository, ownerID, name string, link *string) (*model.Vendor, error) {
	if _, err := tx.Owner.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("查询摊主失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	existing, err := tx.Vendor.GetByNameAndOwner(ctx, name, ownerID)
	switch {
	case err == nil:
		if link != nil {
			existing.Link = link
			if err := tx.Vendor.Update(ctx, existing); err != nil {
				return nil, s.translateWriteError(err, existing.VendorID)
			}
		}
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.logger.Error("查询商家失败", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	vendor := &model.Vendor{Name: name, Link: link, OwnerID: ownerID}
	if err := tx.Vendor.Create(ctx, vendor); err != nil {
		return nil, s.translateWriteError(err, "")
	}
	return vendor, nil
}

// translateWriteError 唯一索引冲突映射为 Conflict，其余记录日志后原样返回
func (s *vendorService) translateWriteError(err error, vendorID string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrVendorNameTaken
	}
	s.logger.Error("写入商家失败", zap.String("vendor_id", vendorID), zap.Error(err))
	return err
}

func toVendorResponse(v *model.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:        v.VendorID,
		Name:      v.Name,
		Link:      v.Link,
		OwnerID:   v.OwnerID,
		CreatedAt: v.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: v.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
