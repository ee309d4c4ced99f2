package repository

import (
	"context"

	"gorm.io/gorm"

	"tradefair/internal/model"
)

// ==================== OrderRepository 订单仓储 ====================

// OrderRepository 订单仓储接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDWithRelations(ctx context.Context, id int64) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]model.Order, error)

	// UpdateStatusWithNotification 状态写入与买家通知在同一事务内完成。
	// 条件更新：仅当订单仍处于 fromStatus 时写入，返回 false 表示状态
	// 已被并发请求抢先推进，此时不产生通知
	UpdateStatusWithNotification(ctx context.Context, orderID int64, fromStatus string, fields map[string]interface{}, notification *model.Notification) (bool, error)
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithRelations(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Buyer").
		Preload("Vendor").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Vendor").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Buyer").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatusWithNotification(ctx context.Context, orderID int64, fromStatus string, fields map[string]interface{}, notification *model.Notification) (bool, error) {
	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", orderID, fromStatus).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		updated = true
		return tx.Create(notification).Error
	})
	return updated, err
}
