/*
 * @module service/activity/report_cache
 * @description 分析报告的 Redis 缓存，按 (用户, 平台, 日期范围) 维度缓存只读报告
 * @architecture 缓存层 - Cache-Aside 模式
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 分析前查缓存 -> 未命中则执行分析 -> 结果写回并设置TTL
 * @rules 报告构建后只读，可安全缓存；缓存故障降级为直接分析，不阻断请求
 * @dependencies github.com/go-redis/redis/v8, encoding/json
 * @refs activity_service.go, service/scheduler/
 */

package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"activity-service/service/models"

	"github.com/go-redis/redis/v8"
)

// ReportCache 分析报告缓存
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache 创建报告缓存
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Key 缓存键：activity:report:{user}:{platform}:{start}:{end}
func (c *ReportCache) Key(userID, platform, startDate, endDate string) string {
	return fmt.Sprintf("activity:report:%s:%s:%s:%s", userID, platform, startDate, endDate)
}

// Get 读取缓存的报告，未命中返回 (nil, nil)
func (c *ReportCache) Get(ctx context.Context, userID, platform, startDate, endDate string) (*models.SummaryReport, error) {
	data, err := c.client.Get(ctx, c.Key(userID, platform, startDate, endDate)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取报告缓存失败: %w", err)
	}

	var report models.SummaryReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("解析缓存报告失败: %w", err)
	}
	return &report, nil
}

// Set 写入报告缓存
func (c *ReportCache) Set(ctx context.Context, userID, platform, startDate, endDate string, report *models.SummaryReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("序列化报告失败: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(userID, platform, startDate, endDate), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入报告缓存失败: %w", err)
	}
	return nil
}
