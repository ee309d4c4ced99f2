package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradefair/internal/model"
)

// ==================== ActivityRepository 行为仓储 ====================

// ActivityRepository 用户行为仓储接口
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.UserActivity) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	// DeleteBefore 清理保留期之外的行为记录，返回删除行数
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 实现 ====================

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository 创建行为仓储
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *model.UserActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserActivity{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *activityRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.UserActivity{})
	return result.RowsAffected, result.Error
}
