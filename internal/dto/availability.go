package dto

// ── 出摊查询 DTO ──

// AvailabilityQuery 查询参数；date 缺省时返回全部时段
type AvailabilityQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ActiveScheduleResponse 某日在营业的（商家, 时段, 摊主）一行
//
// 同一商家多个时段重叠时逐条返回，不做去重。
type ActiveScheduleResponse struct {
	ID         string   `json:"id"` // 商家 ID
	ScheduleID string   `json:"schedule_id"`
	Name       string   `json:"name"`
	Link       *string  `json:"link"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Address    *string  `json:"address"`
	UserName   *string  `json:"user_name"`
	UserEmail  *string  `json:"user_email"`
	StartDate  string   `json:"start_date"`
	StartTime  string   `json:"start_time"`
	EndDate    string   `json:"end_date"`
	EndTime    string   `json:"end_time"`
}
