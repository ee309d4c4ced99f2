package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 通知类型常量 ====================

// NotificationType 通知类型
const (
	NotificationVendorApproved = "VENDOR_APPROVED" // 入驻审核通过
	NotificationVendorRejected = "VENDOR_REJECTED" // 入驻审核驳回
	NotificationOrderStatus    = "ORDER_STATUS"    // 订单状态变更
)

// ==================== Notification 通知 ====================

// Notification 站内通知（追加写，不更新内容）
type Notification struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"index;not null"`

	Type    string `gorm:"size:64;not null"`
	Title   string `gorm:"size:255"`
	Message string `gorm:"type:text"`

	// 业务上下文（PostgreSQL JSONB）
	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	ReadAt *time.Time

	CreatedAt time.Time
}

func (*Notification) TableName() string {
	return "notifications"
}

// IsRead 是否已读
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
