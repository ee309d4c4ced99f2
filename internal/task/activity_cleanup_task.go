package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tradefair/internal/service"
	"tradefair/pkg/logger"
)

// ==================== ActivityCleanupTask 行为日志清理任务 ====================

// ActivityCleanupTask 按保留期清理历史行为日志
// 清理策略：每日凌晨 4 点删除超过保留期的记录
type ActivityCleanupTask struct {
	activitySvc   *service.ActivityService
	cron          *cron.Cron
	retentionDays int
}

// NewActivityCleanupTask 创建行为日志清理任务
func NewActivityCleanupTask(activitySvc *service.ActivityService, retentionDays int) *ActivityCleanupTask {
	return &ActivityCleanupTask{
		activitySvc:   activitySvc,
		cron:          cron.New(cron.WithSeconds()),
		retentionDays: retentionDays,
	}
}

// Start 启动定时任务
func (t *ActivityCleanupTask) Start() {
	// 每日凌晨 4 点
	_, _ = t.cron.AddFunc("0 0 4 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		t.runOnce(ctx)
	})

	t.cron.Start()
	logger.L.Info("行为日志清理任务已启动",
		zap.Int("retention_days", t.retentionDays))
}

// Stop 停止任务并等待在途清理完成
func (t *ActivityCleanupTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	logger.L.Info("行为日志清理任务已停止")
}

// RunNow 立即执行一次清理（供运维手动触发）
func (t *ActivityCleanupTask) RunNow(ctx context.Context) (int64, error) {
	return t.activitySvc.PruneOlderThan(ctx, t.retentionDays)
}

func (t *ActivityCleanupTask) runOnce(ctx context.Context) {
	deleted, err := t.activitySvc.PruneOlderThan(ctx, t.retentionDays)
	if err != nil {
		logger.L.Error("行为日志清理失败", zap.Error(err))
		return
	}
	logger.L.Info("行为日志清理完成",
		zap.Int64("deleted", deleted),
		zap.Int("retention_days", t.retentionDays))
}
