package dto

// ── 摊主（身份）模块 DTO ──

// SignInRequest 身份组件回调：外部登录完成后，把可信的身份信息交给本服务
type SignInRequest struct {
	Subject     string `json:"subject"      binding:"required,max=128"`
	DisplayName string `json:"display_name" binding:"required,max=64"`
	Email       string `json:"email"        binding:"omitempty,email,max=120"`
	PictureURL  string `json:"picture_url"  binding:"omitempty,max=256"`
}

// OwnerResponse 摊主信息
type OwnerResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	PictureURL  string `json:"picture_url,omitempty"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int           `json:"expires_in"` // 秒
	Owner       OwnerResponse `json:"owner"`
}
