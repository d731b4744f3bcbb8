package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"whereabouts/backend/internal/model"
)

// VendorScheduleRepository 出摊时段数据访问接口
type VendorScheduleRepository interface {
	Create(ctx context.Context, schedule *model.VendorSchedule) error
	GetByID(ctx context.Context, id string) (*model.VendorSchedule, error)
	// GetByIDForVendor 仅当时段属于该商家时返回，否则 gorm.ErrRecordNotFound
	GetByIDForVendor(ctx context.Context, vendorID, id string) (*model.VendorSchedule, error)
	ListByVendor(ctx context.Context, vendorID string) ([]model.VendorSchedule, error)
	// ListActive onDate 为 nil 时返回全部时段；结果预加载 Vendor 与 Vendor.Owner
	ListActive(ctx context.Context, onDate *time.Time) ([]model.VendorSchedule, error)
	Update(ctx context.Context, schedule *model.VendorSchedule) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByVendor(ctx context.Context, vendorID string) (int64, error)
}

type vendorScheduleRepo struct {
	db *gorm.DB
}

// NewVendorScheduleRepo 创建 VendorScheduleRepository 实例
func NewVendorScheduleRepo(db *gorm.DB) VendorScheduleRepository {
	return &vendorScheduleRepo{db: db}
}

func (r *vendorScheduleRepo) Create(ctx context.Context, schedule *model.VendorSchedule) error {
	return r.db.WithContext(ctx).Omit("Vendor").Create(schedule).Error
}

func (r *vendorScheduleRepo) GetByID(ctx context.Context, id string) (*model.VendorSchedule, error) {
	var schedule model.VendorSchedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *vendorScheduleRepo) GetByIDForVendor(ctx context.Context, vendorID, id string) (*model.VendorSchedule, error) {
	var schedule model.VendorSchedule
	err := r.db.WithContext(ctx).
		Where("schedule_id = ? AND vendor_id = ?", id, vendorID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *vendorScheduleRepo) ListByVendor(ctx context.Context, vendorID string) ([]model.VendorSchedule, error) {
	var schedules []model.VendorSchedule
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("start_date ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *vendorScheduleRepo) ListActive(ctx context.Context, onDate *time.Time) ([]model.VendorSchedule, error) {
	var schedules []model.VendorSchedule
	db := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Vendor.Owner")

	if onDate != nil {
		day := datatypes.Date(*onDate)
		db = db.Where("start_date <= ? AND end_date >= ?", day, day)
	}

	// 存储顺序：按写入时间稳定排序
	err := db.Order("created_at ASC, schedule_id ASC").Find(&schedules).Error
	return schedules, err
}

func (r *vendorScheduleRepo) Update(ctx context.Context, schedule *model.VendorSchedule) error {
	return r.db.WithContext(ctx).
		Model(schedule).
		Select("start_date", "end_date", "start_time", "end_time",
			"latitude", "longitude", "address", "updated_at").
		Updates(schedule).Error
}

func (r *vendorScheduleRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		Delete(&model.VendorSchedule{})
	return result.RowsAffected, result.Error
}

func (r *vendorScheduleRepo) DeleteByVendor(ctx context.Context, vendorID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Delete(&model.VendorSchedule{})
	return result.RowsAffected, result.Error
}
