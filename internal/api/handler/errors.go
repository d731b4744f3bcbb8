package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/service"
	pkgerrors "whereabouts/backend/pkg/errors"
	"whereabouts/backend/pkg/response"
)

// handleServiceError 业务错误 → HTTP 响应
//
// 先匹配具体模块错误（给出业务码），再按种类兜底：
// ValidationError → 400，NotFound → 404，Conflict → 409，其余 500。
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOwnerNotFound):
		response.NotFound(c, 20001, "摊主不存在")
		return
	case errors.Is(err, service.ErrVendorNotFound):
		response.NotFound(c, 21001, "商家不存在")
		return
	case errors.Is(err, service.ErrVendorNameTaken):
		response.Conflict(c, 21002, "商家名称已被占用")
		return
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 22002, "时段不存在")
		return
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, 23001, "生成 Excel 文件失败")
		return
	}

	if ve, ok := pkgerrors.AsValidation(err); ok {
		response.ErrorWithDetails(c, http.StatusBadRequest, 22001, "时段参数不合法", ve.Reason)
		return
	}

	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 10004, "资源不存在")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 10005, "资源冲突")
	default:
		response.InternalError(c)
	}
}
