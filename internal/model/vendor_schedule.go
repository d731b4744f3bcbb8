package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// VendorSchedule 商家出摊时段，对应表 vendor_schedules
//
// [StartDate, EndDate] 为闭区间；时间精确到秒。
// 经纬度与地址可为空（通过更新协议新增、未提供地理信息的时段）。
type VendorSchedule struct {
	ScheduleID string         `gorm:"type:uuid;primaryKey"                                      json:"schedule_id"`
	VendorID   string         `gorm:"type:uuid;not null;index"                                  json:"vendor_id"`
	StartDate  datatypes.Date `gorm:"not null;index:idx_vendor_schedules_date_range,priority:1" json:"start_date"`
	EndDate    datatypes.Date `gorm:"not null;index:idx_vendor_schedules_date_range,priority:2" json:"end_date"`
	StartTime  datatypes.Time `gorm:"not null"                                                  json:"start_time"`
	EndTime    datatypes.Time `gorm:"not null"                                                  json:"end_time"`
	Latitude   *float64       `json:"latitude,omitempty"`
	Longitude  *float64       `json:"longitude,omitempty"`
	Address    *string        `gorm:"type:text"                                                 json:"address,omitempty"`
	BaseModel

	// 关联：仅供 Preload，级联删除由迁移中的外键实现
	Vendor *Vendor `gorm:"foreignKey:VendorID;references:VendorID;constraint:OnDelete:CASCADE" json:"vendor,omitempty"`
}

// TableName 指定表名
func (VendorSchedule) TableName() string { return "vendor_schedules" }

func (s *VendorSchedule) BeforeCreate(_ *gorm.DB) error {
	newID(&s.ScheduleID)
	return nil
}
