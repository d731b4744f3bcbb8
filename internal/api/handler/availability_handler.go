package handler

import (
	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/service"
	"whereabouts/backend/pkg/response"
)

// AvailabilityHandler 出摊查询 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// ListActive 某日在营业的商家（不带 date 返回全部时段）
// GET /api/v1/availability?date=2024-06-01
func (h *AvailabilityHandler) ListActive(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	onDate, err := service.ParseQueryDate(q.Date)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	rows, err := h.availabilitySvc.ListActive(c.Request.Context(), onDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// DeleteSchedule 删除时段（幂等：未找到也返回 200）
// DELETE /api/v1/schedules/:id
func (h *AvailabilityHandler) DeleteSchedule(c *gin.Context) {
	id, ok := bindPathID(c)
	if !ok {
		response.OKWithMessage(c, "时段不存在", dto.DeleteScheduleResponse{Deleted: false})
		return
	}

	ownerID, ok := MustGetOwnerID(c)
	if !ok {
		return
	}

	deleted, err := h.availabilitySvc.DeleteSchedule(c.Request.Context(), id, ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	message := "时段已删除"
	if !deleted {
		message = "时段不存在"
	}
	response.OKWithMessage(c, message, dto.DeleteScheduleResponse{Deleted: deleted})
}
