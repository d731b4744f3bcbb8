package model

import "gorm.io/gorm"

// Vendor 商家，对应表 vendors
//
// name 全局唯一（唯一索引兜底并发注册）；owner_id 一经写入不可变。
type Vendor struct {
	VendorID string  `gorm:"type:uuid;primaryKey"                                json:"vendor_id"`
	Name     string  `gorm:"type:varchar(64);not null;uniqueIndex:uk_vendors_name" json:"name"`
	Link     *string `gorm:"type:varchar(120)"                                   json:"link,omitempty"`
	OwnerID  string  `gorm:"type:uuid;not null;index"                            json:"owner_id"`
	BaseModel

	// 关联：仅供 Preload；表结构与外键以 pkg/database/migrations 为准，不走 AutoMigrate
	Owner *Owner `gorm:"foreignKey:OwnerID;references:OwnerID" json:"owner,omitempty"`
}

// TableName 指定表名
func (Vendor) TableName() string { return "vendors" }

func (v *Vendor) BeforeCreate(_ *gorm.DB) error {
	newID(&v.VendorID)
	return nil
}
