package dto

import (
	"time"

	"tradefair/internal/model"
)

// ==================== 请求 DTO ====================

// CreateListingReq 创建商品请求
// Price / Inventory 按表单语义接收字符串, 服务层负责解析与校验
type CreateListingReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`     // 单位: 分
	Inventory   string   `json:"inventory"` // 库存数量
	Categories  []string `json:"categories"`
	Images      []string `json:"images"`
}

// ToggleActiveReq 上下架请求
type ToggleActiveReq struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ==================== 响应 DTO ====================

// ListingResp 商品响应
type ListingResp struct {
	ID          int64    `json:"id"`
	VendorID    int64    `json:"vendorId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"` // 转换后的小数价格
	PriceAmount int64    `json:"priceAmount"`
	Currency    string   `json:"currency"`
	Inventory   int      `json:"inventory"`
	Categories  []string `json:"categories"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"isActive"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ToListingVO 将数据库 Model 转换为前端 VO
func ToListingVO(l *model.Listing) ListingResp {
	return ListingResp{
		ID:          l.ID,
		VendorID:    l.VendorID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.GetPrice(),
		PriceAmount: l.PriceAmount,
		Currency:    l.Currency,
		Inventory:   l.Inventory,
		Categories:  l.Categories,
		Images:      l.Images,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
}

// ToListingVOList 批量转换
func ToListingVOList(listings []model.Listing) []ListingResp {
	result := make([]ListingResp, 0, len(listings))
	for i := range listings {
		result = append(result, ToListingVO(&listings[i]))
	}
	return result
}
