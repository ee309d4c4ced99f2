package model

import (
	"time"

	"gorm.io/gorm"
)

// ==================== 角色常量 ====================

// UserRole 系统角色
const (
	RoleBuyer  = "BUYER"  // 买家（默认）
	RoleVendor = "VENDOR" // 卖家
	RoleAdmin  = "ADMIN"  // 管理员
)

// ==================== User 用户 ====================

// User 平台用户
// 首次通过身份服务认证时创建，ClerkUserID 对应外部身份主体
type User struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ClerkUserID string `gorm:"size:128;uniqueIndex;not null"`

	Role        string `gorm:"size:20;index;default:'BUYER'"`
	DisplayName string `gorm:"size:255"`
	Email       string `gorm:"size:255;index"`

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (*User) TableName() string {
	return "users"
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsVendor 是否卖家
func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}
