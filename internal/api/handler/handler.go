package handler

import "whereabouts/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Owner        *OwnerHandler
	Vendor       *VendorHandler
	Availability *AvailabilityHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Owner:        NewOwnerHandler(svc.Owner),
		Vendor:       NewVendorHandler(svc.Vendor, svc.Availability),
		Availability: NewAvailabilityHandler(svc.Availability),
		Export:       NewExportHandler(svc.Export),
	}
}
