package dto

// ── 商家模块 DTO ──

// CreateVendorRequest 创建商家并登记第一个出摊时段
//
// start_date / end_date 是完整时间戳（如 2024-06-01T10:00Z），
// 沿用前端原有字段名；其余时段字段由业务层统一校验。
type CreateVendorRequest struct {
	Name      string   `json:"name"       binding:"required,max=64"`
	Link      *string  `json:"link"       binding:"omitempty,max=120"`
	Start     string   `json:"start_date"`
	End       string   `json:"end_date"`
	Latitude  *float64 `json:"latitude"   binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude"  binding:"omitempty,longitude"`
	Address   *string  `json:"address"`
}

// UpdateVendorRequest 更新商家（字段均可选）并协调提交的时段列表
type UpdateVendorRequest struct {
	Name      *string                `json:"name"      binding:"omitempty,min=1,max=64"`
	Link      *string                `json:"link"      binding:"omitempty,max=120"`
	Schedules []ScheduleEntryRequest `json:"schedules" binding:"omitempty,dive"`
}

// VendorResponse 商家信息
type VendorResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Link      *string `json:"link"`
	OwnerID   string  `json:"owner_id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateVendorResponse 创建结果：商家 + 首个时段
type CreateVendorResponse struct {
	Vendor   VendorResponse   `json:"vendor"`
	Schedule ScheduleResponse `json:"schedule"`
}

// UpdateVendorResponse 更新结果
type UpdateVendorResponse struct {
	Vendor   VendorResponse `json:"vendor"`
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
}
