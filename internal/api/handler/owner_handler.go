package handler

import (
	"github.com/gin-gonic/gin"

	"whereabouts/backend/internal/dto"
	"whereabouts/backend/internal/service"
	"whereabouts/backend/pkg/response"
)

// OwnerHandler 摊主（身份）模块 HTTP 处理器
type OwnerHandler struct {
	ownerSvc service.OwnerService
}

// NewOwnerHandler 创建 OwnerHandler
func NewOwnerHandler(ownerSvc service.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerSvc: ownerSvc}
}

// SignIn 身份组件回调：建档并签发 Token
// POST /api/v1/identity/sign-in
func (h *OwnerHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.ownerSvc.SignIn(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// SignOut 登出（当前 Token 加入黑名单）
// POST /api/v1/identity/sign-out
func (h *OwnerHandler) SignOut(c *gin.Context) {
	if _, ok := MustGetOwnerID(c); !ok {
		return
	}

	jti, exp := tokenMeta(c)
	if err := h.ownerSvc.SignOut(c.Request.Context(), jti, exp); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetCurrentOwner 获取当前摊主
// GET /api/v1/owners/me
func (h *OwnerHandler) GetCurrentOwner(c *gin.Context) {
	ownerID, ok := MustGetOwnerID(c)
	if !ok {
		return
	}

	owner, err := h.ownerSvc.GetCurrent(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, owner)
}
