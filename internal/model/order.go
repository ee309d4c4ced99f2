package model

import (
	"time"

	"gorm.io/gorm"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
const (
	OrderStatusPaid       = "PAID"       // 已支付（下单即进入）
	OrderStatusProcessing = "PROCESSING" // 处理中
	OrderStatusShipped    = "SHIPPED"    // 已发货
	OrderStatusDelivered  = "DELIVERED"  // 已签收
	OrderStatusCancelled  = "CANCELLED"  // 已取消（终态）
	OrderStatusRefunded   = "REFUNDED"   // 已退款（终态）
)

// orderStatusSet 合法状态集合
var orderStatusSet = map[string]struct{}{
	OrderStatusPaid:       {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

// orderTransitions 状态流转表
// 正向推进：PAID → PROCESSING → SHIPPED → DELIVERED
// CANCELLED / REFUNDED 仅可从 PAID / PROCESSING 进入
var orderTransitions = map[string][]string{
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// IsValidOrderStatus 状态值是否合法
func IsValidOrderStatus(status string) bool {
	_, ok := orderStatusSet[status]
	return ok
}

// CanTransitionOrderStatus 状态流转是否允许
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ==================== Order 订单主表 ====================

// Order 订单
// 由买家结账创建（核心之外），之后由卖家推进状态
type Order struct {
	ID       int64 `gorm:"primaryKey;autoIncrement"`
	BuyerID  int64 `gorm:"index;not null"`
	VendorID int64 `gorm:"index;not null"`

	Status         string `gorm:"size:32;index;default:'PAID'"`
	TrackingNumber string `gorm:"size:128"`

	// 金额（分为单位存储）
	TotalAmount int64
	Currency    string `gorm:"size:10;default:NGN"`

	PaidAt *time.Time

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// 关联
	Items  []OrderItem `gorm:"foreignKey:OrderID"`
	Buyer  *User       `gorm:"foreignKey:BuyerID"`
	Vendor *Vendor     `gorm:"foreignKey:VendorID"`
}

func (*Order) TableName() string {
	return "orders"
}

// GetTotal 获取总金额（元）
func (o *Order) GetTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// IsTerminal 是否处于终态
func (o *Order) IsTerminal() bool {
	return len(orderTransitions[o.Status]) == 0
}

// ==================== OrderItem 订单项 ====================

// OrderItem 订单项
// 标题与图片为下单时快照，不随商品后续修改变化
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"index;not null"`
	ListingID int64 `gorm:"index;not null"`

	Title    string `gorm:"size:500"`
	ImageURL string `gorm:"size:500"`

	Quantity    int `gorm:"default:1"`
	PriceAmount int64

	// 审计
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*OrderItem) TableName() string {
	return "order_items"
}

// GetPrice 获取单价（元）
func (i *OrderItem) GetPrice() float64 {
	return float64(i.PriceAmount) / 100
}
