package repository

import (
	"context"

	"gorm.io/gorm"

	"whereabouts/backend/internal/model"
)

// OwnerRepository 摊主数据访问接口
type OwnerRepository interface {
	Create(ctx context.Context, owner *model.Owner) error
	GetByID(ctx context.Context, id string) (*model.Owner, error)
	GetBySubject(ctx context.Context, subject string) (*model.Owner, error)
	Update(ctx context.Context, owner *model.Owner) error
}

type ownerRepo struct {
	db *gorm.DB
}

// NewOwnerRepo 创建 OwnerRepository 实例
func NewOwnerRepo(db *gorm.DB) OwnerRepository {
	return &ownerRepo{db: db}
}

func (r *ownerRepo) Create(ctx context.Context, owner *model.Owner) error {
	return r.db.WithContext(ctx).Create(owner).Error
}

func (r *ownerRepo) GetByID(ctx context.Context, id string) (*model.Owner, error) {
	var owner model.Owner
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", id).
		First(&owner).Error
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) GetBySubject(ctx context.Context, subject string) (*model.Owner, error) {
	var owner model.Owner
	err := r.db.WithContext(ctx).
		Where("external_subject = ?", subject).
		First(&owner).Error
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepo) Update(ctx context.Context, owner *model.Owner) error {
	return r.db.WithContext(ctx).
		Model(owner).
		Select("display_name", "email", "picture_url", "updated_at").
		Updates(owner).Error
}
