package model

import (
	"time"

	"gorm.io/gorm"
)

// ==================== Review 商品评价 ====================

// Review 商品评价
// HelpfulCount 必须始终等于 review_helpfuls 表中对应行数
type Review struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ListingID int64 `gorm:"index;not null"`
	AuthorID  int64 `gorm:"index;not null"`

	Rating int    `gorm:"not null"`
	Body   string `gorm:"type:text"`

	HelpfulCount int64 `gorm:"default:0"`

	// 卖家回复（一次性写入）
	VendorResponse    string `gorm:"type:text"`
	VendorRespondedAt *time.Time

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// 关联
	Author  *User    `gorm:"foreignKey:AuthorID"`
	Listing *Listing `gorm:"foreignKey:ListingID"`
}

func (*Review) TableName() string {
	return "reviews"
}

// HasVendorResponse 卖家是否已回复
func (r *Review) HasVendorResponse() bool {
	return r.VendorResponse != ""
}

// ==================== ReviewHelpful 有用投票 ====================

// ReviewHelpful 每用户每评价最多一行，行的存在即代表投票
type ReviewHelpful struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	ReviewID int64 `gorm:"uniqueIndex:idx_review_user;not null"`
	UserID   int64 `gorm:"uniqueIndex:idx_review_user;not null"`

	CreatedAt time.Time
}

func (*ReviewHelpful) TableName() string {
	return "review_helpfuls"
}
