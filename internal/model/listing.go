package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== Listing 商品 ====================

// Listing 商品
// 价格以最小货币单位（分）存储；商品只软下架，不做物理删除
type Listing struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	VendorID int64 `gorm:"index;not null"`

	Title       string `gorm:"size:500;not null"`
	Description string `gorm:"type:text"`

	// 金额（分为单位存储），库存均为非负整数
	PriceAmount int64  `gorm:"not null"`
	Inventory   int    `gorm:"not null;default:0"`
	Currency    string `gorm:"size:10;default:NGN"`

	// 分类与图片（PostgreSQL JSONB）
	Categories datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Images     datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	IsActive bool `gorm:"index;default:true"`

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// 关联
	Vendor *Vendor `gorm:"foreignKey:VendorID"`
}

func (*Listing) TableName() string {
	return "listings"
}

// GetPrice 获取价格（元）
func (l *Listing) GetPrice() float64 {
	return float64(l.PriceAmount) / 100
}

// HasCategory 是否包含指定分类（不区分大小写由调用方保证规范化）
func (l *Listing) HasCategory(category string) bool {
	for _, c := range l.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// MainImage 获取主图
func (l *Listing) MainImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}
