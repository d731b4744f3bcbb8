package repository

import (
	"context"

	"gorm.io/gorm"

	"whereabouts/backend/internal/model"
)

// VendorRepository 商家数据访问接口
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	// GetByNameAndOwner 按 (name, owner_id) 精确查找，用于幂等注册
	GetByNameAndOwner(ctx context.Context, name, ownerID string) (*model.Vendor, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Vendor, error)
	// Update 只写 name / link；owner_id 不可变
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id string) (int64, error)
}

type vendorRepo struct {
	db *gorm.DB
}

// NewVendorRepo 创建 VendorRepository 实例
func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Omit("Owner").Create(vendor).Error
}

func (r *vendorRepo) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", id).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) GetByNameAndOwner(ctx context.Context, name, ownerID string) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).
		Where("name = ? AND owner_id = ?", name, ownerID).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, vendor_id ASC").
		Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).
		Model(vendor).
		Select("name", "link", "updated_at").
		Updates(vendor).Error
}

func (r *vendorRepo) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("vendor_id = ?", id).
		Delete(&model.Vendor{})
	return result.RowsAffected, result.Error
}
