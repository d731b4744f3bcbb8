package model

import "gorm.io/gorm"

// Owner 摊主（外部身份），对应表 owners
//
// 核心层不创建摊主，只有外部身份组件首次登录时才会 upsert。
type Owner struct {
	OwnerID         string `gorm:"type:uuid;primaryKey"                                   json:"owner_id"`
	ExternalSubject string `gorm:"type:varchar(128);not null;uniqueIndex:uk_owners_external_subject" json:"-"`
	DisplayName     string `gorm:"type:varchar(64);not null"                              json:"display_name"`
	Email           string `gorm:"type:varchar(120)"                                      json:"email,omitempty"`
	PictureURL      string `gorm:"type:varchar(256)"                                      json:"picture_url,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Owner) TableName() string { return "owners" }

func (o *Owner) BeforeCreate(_ *gorm.DB) error {
	newID(&o.OwnerID)
	return nil
}
