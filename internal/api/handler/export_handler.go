package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/service"
	"whereabouts/backend/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportAvailability 导出出摊表
// GET /api/v1/export/availability?date=2024-06-01
func (h *ExportHandler) ExportAvailability(c *gin.Context) {
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

	buf, filename, err := h.exportSvc.ExportActive(c.Request.Context(), onDate)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportVendorCalendar 商家时段日历订阅
// GET /api/v1/export/vendors/:id/calendar
func (h *ExportHandler) ExportVendorCalendar(c *gin.Context) {
	id, ok := bindPathID(c)
	if !ok {
		handleServiceError(c, service.ErrVendorNotFound)
		return
	}

	body, filename, err := h.exportSvc.VendorCalendar(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, icsContentType, body)
}
