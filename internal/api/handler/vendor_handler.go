package handler

import (
	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/service"
	"whereabouts/backend/pkg/response"
)

// VendorHandler 商家模块 HTTP 处理器
type VendorHandler struct {
	vendorSvc       service.VendorService
	availabilitySvc service.AvailabilityService
}

// NewVendorHandler 创建 VendorHandler
func NewVendorHandler(vendorSvc service.VendorService, availabilitySvc service.AvailabilityService) *VendorHandler {
	return &VendorHandler{vendorSvc: vendorSvc, availabilitySvc: availabilitySvc}
}

// ListMyVendors 当前摊主的商家列表
// GET /api/v1/vendors/mine
func (h *VendorHandler) ListMyVendors(c *gin.Context) {
	ownerID, ok := MustGetOwnerID(c)
	if !ok {
		return
	}

	vendors, err := h.availabilitySvc.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": vendors})
}

// CreateVendor 注册商家并登记首个时段
// POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ownerID, ok := MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.vendorSvc.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateVendor 更新商家并协调时段
// PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, ok := bindPathID(c)
	if !ok {
		handleServiceError(c, service.ErrVendorNotFound)
		return
	}

	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ownerID, ok := MustGetOwnerID(c)
	if !ok {
		return
	}

	result, err := h.vendorSvc.Update(c.Request.Context(), id, ownerID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteVendor 删除商家（连同全部时段）
// DELETE /api/v1/vendors/:id
//
// 注册表的 Delete 不校验归属，这里先确认商家属于调用方。
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, ok := bindPathID(c)
	if !ok {
		handleServiceError(c, service.ErrVendorNotFound)
		return
	}

	ownerID, ok := MustGetOwnerID(c)
	if !ok {
		return
	}

	vendor, err := h.vendorSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if vendor.OwnerID != ownerID {
		handleServiceError(c, service.ErrVendorNotFound)
		return
	}

	if err := h.vendorSvc.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OKWithMessage(c, "商家已删除", nil)
}

// ListVendorSchedules 商家的全部时段
// GET /api/v1/vendors/:id/schedules
func (h *VendorHandler) ListVendorSchedules(c *gin.Context) {
	id, ok := bindPathID(c)
	if !ok {
		handleServiceError(c, service.ErrVendorNotFound)
		return
	}

	schedules, err := h.availabilitySvc.ListSchedules(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}
