package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单生命周期
// 状态机：PAID → PROCESSING → SHIPPED → DELIVERED，
// CANCELLED / REFUNDED 仅可从 PAID / PROCESSING 进入
type OrderService struct {
	orders  repository.OrderRepository
	vendors repository.VendorRepository
	users   repository.UserRepository
}

// NewOrderService 创建订单服务
func NewOrderService(
	orders repository.OrderRepository,
	vendors repository.VendorRepository,
	users repository.UserRepository,
) *OrderService {
	return &OrderService{
		orders:  orders,
		vendors: vendors,
		users:   users,
	}
}

// ==================== 状态推进 ====================

// UpdateStatus 卖家推进订单状态
// 非本卖家的订单返回 ErrNotFound（不泄露订单存在性）；
// 目标值不在六个合法状态内返回 ErrValidation；
// 流转表不允许的变更返回 ErrInvalidState；
// 状态写入与买家通知在同一事务内完成，且写入以读取到的源状态为条件，
// 读写之间状态被并发请求推进时同样返回 ErrInvalidState
func (s *OrderService) UpdateStatus(ctx context.Context, p *Principal, orderID int64, newStatus, trackingNumber string) (*model.Order, error) {
	_, vendor, err := s.requireVendor(ctx, p)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 订单不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	if order.VendorID != vendor.ID {
		return nil, fmt.Errorf("%w: 订单不存在", ErrNotFound)
	}

	if !model.IsValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: 非法的订单状态 %q", ErrValidation, newStatus)
	}
	if !model.CanTransitionOrderStatus(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: 不允许从 %s 变更为 %s", ErrInvalidState, order.Status, newStatus)
	}

	fields := map[string]interface{}{"status": newStatus}
	if trackingNumber != "" {
		fields["tracking_number"] = trackingNumber
	}

	message := fmt.Sprintf("您的订单 #%d 状态已更新为 %s。", order.ID, newStatus)
	if trackingNumber != "" {
		message += fmt.Sprintf("物流单号：%s", trackingNumber)
	}
	notification := &model.Notification{
		UserID:  order.BuyerID,
		Type:    model.NotificationOrderStatus,
		Title:   "订单状态更新",
		Message: message,
		Metadata: datatypes.JSONMap{
			"order_id": order.ID,
			"status":   newStatus,
		},
	}

	updated, err := s.orders.UpdateStatusWithNotification(ctx, order.ID, order.Status, fields, notification)
	if err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}
	if !updated {
		// 读取与写入之间状态已被并发请求推进，按流转冲突处理
		return nil, fmt.Errorf("%w: 订单状态已变更，请刷新后重试", ErrInvalidState)
	}

	return s.orders.GetByIDWithRelations(ctx, order.ID)
}

// ==================== 读路径 ====================

// GetForBuyer 买家订单详情（仅本人可见）
func (s *OrderService) GetForBuyer(ctx context.Context, p *Principal, orderID int64) (*model.Order, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByIDWithRelations(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 订单不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询订单失败: %w", err)
	}
	if order.BuyerID != user.ID {
		return nil, fmt.Errorf("%w: 订单不存在", ErrNotFound)
	}
	return order, nil
}

// ListForBuyer 买家订单列表
func (s *OrderService) ListForBuyer(ctx context.Context, p *Principal) ([]model.Order, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByBuyer(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return orders, nil
}

// ListForVendor 卖家订单列表
func (s *OrderService) ListForVendor(ctx context.Context, p *Principal) ([]model.Order, error) {
	_, vendor, err := s.requireVendor(ctx, p)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("查询订单列表失败: %w", err)
	}
	return orders, nil
}

// ==================== 辅助方法 ====================

func (s *OrderService) requireVendor(ctx context.Context, p *Principal) (*model.User, *model.Vendor, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, nil, err
	}
	vendor, err := s.vendors.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: 仅卖家可执行该操作", ErrForbidden)
		}
		return nil, nil, fmt.Errorf("查询卖家信息失败: %w", err)
	}
	return user, vendor, nil
}
