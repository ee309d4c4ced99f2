package dto

import (
	"time"

	"tradefair/internal/model"
)

// ==================== 请求 DTO ====================

// UpdateOrderStatusReq 更新订单状态请求
type UpdateOrderStatusReq struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"trackingNumber"`
}

// ==================== 响应 DTO ====================

// OrderItemResp 订单行响应
type OrderItemResp struct {
	ID          int64   `json:"id"`
	ListingID   int64   `json:"listingId"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	PriceAmount int64   `json:"priceAmount"`
}

// OrderResp 订单响应
type OrderResp struct {
	ID             int64           `json:"id"`
	BuyerID        int64           `json:"buyerId"`
	VendorID       int64           `json:"vendorId"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	Total          float64         `json:"total"`
	TotalAmount    int64           `json:"totalAmount"`
	Currency       string          `json:"currency"`
	PaidAt         string          `json:"paidAt,omitempty"`
	Items          []OrderItemResp `json:"items"`
	BuyerName      string          `json:"buyerName,omitempty"`
	VendorName     string          `json:"vendorName,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	UpdatedAt      string          `json:"updatedAt"`
}

// ToOrderVO 将数据库 Model 转换为前端 VO
func ToOrderVO(o *model.Order) OrderResp {
	items := make([]OrderItemResp, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResp{
			ID:          item.ID,
			ListingID:   item.ListingID,
			Title:       item.Title,
			ImageURL:    item.ImageURL,
			Quantity:    item.Quantity,
			Price:       float64(item.PriceAmount) / 100,
			PriceAmount: item.PriceAmount,
		})
	}

	resp := OrderResp{
		ID:             o.ID,
		BuyerID:        o.BuyerID,
		VendorID:       o.VendorID,
		Status:         o.Status,
		TrackingNumber: o.TrackingNumber,
		Total:          o.GetTotal(),
		TotalAmount:    o.TotalAmount,
		Currency:       o.Currency,
		Items:          items,
		CreatedAt:      o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      o.UpdatedAt.Format(time.RFC3339),
	}
	if o.PaidAt != nil {
		resp.PaidAt = o.PaidAt.Format(time.RFC3339)
	}
	if o.Buyer != nil {
		resp.BuyerName = o.Buyer.DisplayName
	}
	if o.Vendor != nil {
		resp.VendorName = o.Vendor.BusinessName
	}
	return resp
}

// ToOrderVOList 批量转换
func ToOrderVOList(orders []model.Order) []OrderResp {
	result := make([]OrderResp, 0, len(orders))
	for i := range orders {
		result = append(result, ToOrderVO(&orders[i]))
	}
	return result
}
