package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradefair/internal/model"
)

// ==================== NotificationRepository 通知仓储 ====================

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	// MarkRead 只允许本人标记，返回受影响行数用于判断归属
	MarkRead(ctx context.Context, id, userID int64) (int64, error)
}

// ==================== 实现 ====================

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) (int64, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", &now)
	return result.RowsAffected, result.Error
}
