package model

import (
	"time"

	"gorm.io/gorm"
)

// ==================== 卖家状态常量 ====================

// VendorStatus 卖家入驻状态
// 状态只能从 PENDING 单向流转到 APPROVED 或 REJECTED
const (
	VendorStatusPending  = "PENDING"  // 待审核
	VendorStatusApproved = "APPROVED" // 已通过
	VendorStatusRejected = "REJECTED" // 已驳回
)

// ==================== Vendor 卖家 ====================

// Vendor 卖家实体，与用户 1:1
type Vendor struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"uniqueIndex;not null"`

	BusinessName string `gorm:"size:255;not null"`
	Description  string `gorm:"type:text"`

	Status          string `gorm:"size:20;index;default:'PENDING'"`
	ApprovedAt      *time.Time
	RejectionReason string `gorm:"type:text"`

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// 关联
	User *User `gorm:"foreignKey:UserID"`
}

func (*Vendor) TableName() string {
	return "vendors"
}

// IsPending 是否待审核
func (v *Vendor) IsPending() bool {
	return v.Status == VendorStatusPending
}

// IsApproved 是否已通过
func (v *Vendor) IsApproved() bool {
	return v.Status == VendorStatusApproved
}
