package dto

import (
	"time"

	"tradefair/internal/model"
)

// ==================== 请求 DTO ====================

// SyncUserReq 同步身份档案请求
type SyncUserReq struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// ==================== 响应 DTO ====================

// UserResp 用户档案响应
type UserResp struct {
	ID          int64  `json:"id"`
	ClerkUserID string `json:"clerkUserId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	CreatedAt   string `json:"createdAt"`
}

// ToUserVO 将数据库 Model 转换为前端 VO
func ToUserVO(u *model.User) UserResp {
	return UserResp{
		ID:          u.ID,
		ClerkUserID: u.ClerkUserID,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
