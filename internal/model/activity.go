package model

import (
	"time"

	"gorm.io/datatypes"
)

// ==================== 行为类型常量 ====================

// ActivityType 用户行为类型
const (
	ActivityViewProduct  = "VIEW_PRODUCT"
	ActivityAddToCart    = "ADD_TO_CART"
	ActivitySearch       = "SEARCH"
	ActivityViewCategory = "VIEW_CATEGORY"
	ActivityPurchase     = "PURCHASE"
)

var activityTypeSet = map[string]struct{}{
	ActivityViewProduct:  {},
	ActivityAddToCart:    {},
	ActivitySearch:       {},
	ActivityViewCategory: {},
	ActivityPurchase:     {},
}

// IsValidActivityType 行为类型是否合法
func IsValidActivityType(t string) bool {
	_, ok := activityTypeSet[t]
	return ok
}

// ==================== UserActivity 用户行为 ====================

// UserActivity 用户行为记录（追加写、尽力而为）
// 匿名调用不产生记录
type UserActivity struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	ListingID *int64 `gorm:"index"`

	ActivityType string `gorm:"size:32;index;not null"`

	// 附加上下文（PostgreSQL JSONB）
	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"index"`
}

func (*UserActivity) TableName() string {
	return "user_activities"
}
