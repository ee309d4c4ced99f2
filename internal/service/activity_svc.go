package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== ActivityService 行为记录服务 ====================

// ActivityService 用户行为记录（尽力而为）
type ActivityService struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
}

// NewActivityService 创建行为记录服务
func NewActivityService(activities repository.ActivityRepository, users repository.UserRepository) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
	}
}

// Track 记录一次行为
// 匿名调用成功返回 tracked=false 且不落任何记录——
// 前端埋点无需为未登录用户做特殊分支；
// 已认证调用要求行为类型合法、用户已注册
func (s *ActivityService) Track(ctx context.Context, p *Principal, listingID *int64, activityType string, metadata map[string]interface{}) (bool, error) {
	if p.IsAnonymous() {
		return false, nil
	}

	if !model.IsValidActivityType(activityType) {
		return false, fmt.Errorf("%w: 非法的行为类型 %q", ErrValidation, activityType)
	}

	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return false, err
	}

	activity := &model.UserActivity{
		UserID:       user.ID,
		ListingID:    listingID,
		ActivityType: activityType,
		Metadata:     datatypes.JSONMap(metadata),
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return false, fmt.Errorf("记录行为失败: %w", err)
	}
	return true, nil
}

// PruneOlderThan 清理保留期之外的行为记录
// 由定时任务调用，返回删除行数
func (s *ActivityService) PruneOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = 180
	}
	before := time.Now().AddDate(0, 0, -retentionDays)
	return s.activities.DeleteBefore(ctx, before)
}
