package service

import (
	"context"
	"fmt"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== NotificationService 通知服务 ====================

// NotificationService 站内通知读路径
// 通知的写入发生在各业务事务内（入驻审核、订单状态变更）
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
	}
}

// ListForUser 当前用户的通知（最新优先）
func (s *NotificationService) ListForUser(ctx context.Context, p *Principal) ([]model.Notification, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifications.ListByUser(ctx, user.ID, 50)
	if err != nil {
		return nil, fmt.Errorf("查询通知失败: %w", err)
	}
	return notifications, nil
}

// MarkRead 标记已读（仅限本人的通知）
func (s *NotificationService) MarkRead(ctx context.Context, p *Principal, notificationID int64) error {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return err
	}
	affected, err := s.notifications.MarkRead(ctx, notificationID, user.ID)
	if err != nil {
		return fmt.Errorf("标记已读失败: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: 通知不存在", ErrNotFound)
	}
	return nil
}
