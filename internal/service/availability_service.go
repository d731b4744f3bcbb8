package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/model"
	"whereabouts/backend/internal/repository"
	pkgerrors "whereabouts/backend/pkg/errors"
)

// ── 出摊查询模块业务错误 ──

var (
	ErrScheduleNotFound = pkgerrors.NotFound("时段不存在")
)

// AvailabilityService 出摊查询
type AvailabilityService interface {
	// ListActive onDate 为 nil 时返回全部时段；每个时段一行，不去重
	ListActive(ctx context.Context, onDate *time.Time) ([]dto.ActiveScheduleResponse, error)
	ListForOwner(ctx context.Context, ownerID string) ([]dto.VendorResponse, error)
	ListSchedules(ctx context.Context, vendorID string) ([]dto.ScheduleResponse, error)
	// DeleteSchedule 幂等删除：时段不存在或不属于调用方时返回 deleted=false，不报错
	DeleteSchedule(ctx context.Context, scheduleID, ownerID string) (bool, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

// ────────────────────── ListActive ──────────────────────

func (s *availabilityService) ListActive(ctx context.Context, onDate *time.Time) ([]dto.ActiveScheduleResponse, error) {
	schedules, err := s.repo.Schedule.ListActive(ctx, onDate)
	if err != nil {
		s.logger.Error("查询出摊时段失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActiveScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, toActiveScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── ListForOwner ──────────────────────

func (s *availabilityService) ListForOwner(ctx context.Context, ownerID string) ([]dto.VendorResponse, error) {
	vendors, err := s.repo.Vendor.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("列出摊主商家失败", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.VendorResponse, 0, len(vendors))
	for i := range vendors {
		result = append(result, *toVendorResponse(&vendors[i]))
	}
	return result, nil
}

// ────────────────────── ListSchedules ──────────────────────

func (s *availabilityService) ListSchedules(ctx context.Context, vendorID string) ([]dto.ScheduleResponse, error) {
	if _, err := s.repo.Vendor.GetByID(ctx, vendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		s.logger.Error("查询商家失败", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, err
	}

	schedules, err := s.repo.Schedule.ListByVendor(ctx, vendorID)
	if err != nil {
		s.logger.Error("列出商家时段失败", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		result = append(result, *toScheduleResponse(&schedules[i]))
	}
	return result, nil
}

// ────────────────────── DeleteSchedule ──────────────────────

func (s *availabilityService) DeleteSchedule(ctx context.Context, scheduleID, ownerID string) (bool, error) {
	if !isUUID(scheduleID) {
		return false, nil
	}

	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error("查询时段失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return false, err
	}

	vendor, err := s.repo.Vendor.GetByID(ctx, schedule.VendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		s.logger.Error("查询商家失败", zap.String("vendor_id", schedule.VendorID), zap.Error(err))
		return false, err
	}
	if vendor.OwnerID != ownerID {
		return false, nil
	}

	n, err := s.repo.Schedule.Delete(ctx, scheduleID)
	if err != nil {
		s.logger.Error("删除时段失败", zap.String("schedule_id", scheduleID), zap.Error(err))
		return false, err
	}
	return n > 0, nil
}

// ── 内部辅助方法 ──

func toScheduleResponse(sc *model.VendorSchedule) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:        sc.ScheduleID,
		VendorID:  sc.VendorID,
		StartDate: formatDate(sc.StartDate),
		EndDate:   formatDate(sc.EndDate),
		StartTime: sc.StartTime.String(),
		EndTime:   sc.EndTime.String(),
		Latitude:  sc.Latitude,
		Longitude: sc.Longitude,
		Address:   sc.Address,
	}
}

func toActiveScheduleResponse(sc *model.VendorSchedule) dto.ActiveScheduleResponse {
	row := dto.ActiveScheduleResponse{
		ID:         sc.VendorID,
		ScheduleID: sc.ScheduleID,
		Latitude:   sc.Latitude,
		Longitude:  sc.Longitude,
		Address:    sc.Address,
		StartDate:  formatDate(sc.StartDate),
		StartTime:  sc.StartTime.String(),
		EndDate:    formatDate(sc.EndDate),
		EndTime:    sc.EndTime.String(),
	}
	if v := sc.Vendor; v != nil {
		row.Name = v.Name
		row.Link = v.Link
		if o := v.Owner; o != nil {
			name := o.DisplayName
			row.UserName = &name
			if o.Email != "" {
				email := o.Email
				row.UserEmail = &email
			}
		}
	}
	return row
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}
