/*
 * @module service/scheduler/refresh_scheduler
 * @description 报告刷新调度器，按 cron 表达式定期重算最近的分析以保持缓存新鲜
 * @architecture 定时任务模式
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 启动调度 -> 到点触发 -> 重算最近分析 -> 等待下个周期
 * @rules 调度表达式带秒字段；单次刷新失败不影响后续周期
 * @dependencies github.com/robfig/cron/v3
 * @refs service/activity/activity_service.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher 可被定时刷新的服务
type Refresher interface {
	RefreshRecent(ctx context.Context, limit int)
}

// RefreshScheduler 报告刷新调度器
type RefreshScheduler struct {
	cron      *cron.Cron
	refresher Refresher
	cronExpr  string
	limit     int
}

// NewRefreshScheduler 创建刷新调度器
// cronExpr 为带秒字段的 cron 表达式，limit 为每轮刷新的最近记录数上限
func NewRefreshScheduler(refresher Refresher, cronExpr string, limit int) *RefreshScheduler {
	return &RefreshScheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		cronExpr:  cronExpr,
		limit:     limit,
	}
}

// Start 注册任务并启动调度
func (s *RefreshScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronExpr, func() {
		slog.Info("开始定时刷新分析报告", "limit", s.limit)
		s.refresher.RefreshRecent(context.Background(), s.limit)
	})
	if err != nil {
		return fmt.Errorf("注册刷新任务失败: %w", err)
	}

	s.cron.Start()
	slog.Info("报告刷新调度器已启动", "cron", s.cronExpr)
	return nil
}

// Stop 停止调度，等待执行中的任务结束
func (s *RefreshScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("报告刷新调度器已停止")
}
