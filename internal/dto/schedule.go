package dto

import "whereabouts/backend/internal/model"

// ── 出摊时段 DTO ──

// ScheduleEntryRequest 客户端提交的单个时段
//
// 两种写法二选一：
//   - start / end：完整时间戳（与创建流程相同，要求结束严格晚于开始）
//   - start_date / end_date / start_time / end_time：分开的日期与时间
//
// id 为 "temp-" 前缀或缺省时视为新建。
type ScheduleEntryRequest struct {
	ID        model.EntryRef `json:"id"`
	Start     string         `json:"start"`
	End       string         `json:"end"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Latitude  *float64       `json:"latitude"  binding:"omitempty,latitude"`
	Longitude *float64       `json:"longitude" binding:"omitempty,longitude"`
	Address   *string        `json:"address"`
}

// UsesTimestamps 是否以时间戳对的形式提交
func (r *ScheduleEntryRequest) UsesTimestamps() bool {
	return r.Start != "" || r.End != ""
}

// ScheduleResponse 时段信息
type ScheduleResponse struct {
	ID        string   `json:"id"`
	VendorID  string   `json:"vendor_id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address"`
}

// DeleteScheduleResponse 删除时段结果（幂等，未找到不算错误）
type DeleteScheduleResponse struct {
	Deleted bool `json:"deleted"`
}

// PathID 路径中的实体 ID（商家或时段），主键均为 UUID
type PathID struct {
	ID string `uri:"id" binding:"required,uuid"`
}
