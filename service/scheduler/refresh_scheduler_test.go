/*
 * @module service/scheduler/refresh_scheduler_test
 * @description 报告刷新调度器的单元测试
 * @architecture 单元测试 - 验证任务注册与触发
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 注册任务 -> 秒级触发 -> 验证刷新调用
 * @rules 非法表达式必须在启动时报错
 * @dependencies testing, github.com/stretchr/testify
 * @refs refresh_scheduler.go
 */

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRefresher 记录刷新调用次数
type countingRefresher struct {
	calls int32
}

func (c *countingRefresher) RefreshRecent(_ context.Context, _ int) {
	atomic.AddInt32(&c.calls, 1)
}

func TestRefreshScheduler_InvalidCron(t *testing.T) {
	s := NewRefreshScheduler(&countingRefresher{}, "not-a-cron", 10)
	err := s.Start()
	require.Error(t, err)
}

func TestRefreshScheduler_Triggers(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewRefreshScheduler(refresher, "* * * * * *", 10) // 每秒触发
	require.NoError(t, s.Start())
	defer s.Stop()

	// 最多等3秒，至少触发一次
	deadline := time.After(3 * time.Second)
	for atomic.LoadInt32(&refresher.calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("调度器未触发刷新")
		case <-time.After(50 * time.Millisecond):
		}
	}
	assert.GreaterOrEqual(t, atomic.LoadInt32(&refresher.calls), int32(1))
}
