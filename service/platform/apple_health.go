/*
 * @module service/platform/apple_health
 * @description Apple Health 数据源，处理 iOS 应用推送的 HealthKit 导出记录
 * @architecture 推送模式 - HealthKit 仅 iOS 可用，无服务端拉取接口，导出数据由应用上传后缓存
 * @documentReference ai_docs/platform_integration_req.md, https://developer.apple.com/healthkit
 * @stateFlow 应用上传导出记录 -> 过滤步数类型 -> 按用户缓存 -> 分析时按范围取出
 * @rules 只接受 HKQuantityTypeIdentifierStepCount 类型的记录，其余类型忽略
 * @dependencies sync, time
 * @refs interface.go, api/controllers/activity_controller.go
 */

package platform

import (
	"context"
	"sync"
	"time"

	"activity-service/service/models"
)

// stepCountType HealthKit 步数记录类型标识
const stepCountType = "HKQuantityTypeIdentifierStepCount"

// HealthKitRecord HealthKit 导出中的单条记录
type HealthKitRecord struct {
	Type      string      `json:"type"`
	StartDate string      `json:"start_date"` // RFC3339 或 "2006-01-02 15:04:05"
	Value     interface{} `json:"value"`
}

// AppleHealthClient Apple Health 数据源
// HealthKit 无服务端 API，导出数据由 iOS 应用上传后按用户缓存在内存中
type AppleHealthClient struct {
	mutex   sync.RWMutex
	exports map[string][]models.RawSample // userID -> 已转换的采样
}

// NewAppleHealthClient 创建 Apple Health 数据源
func NewAppleHealthClient() *AppleHealthClient {
	return &AppleHealthClient{exports: make(map[string][]models.RawSample)}
}

// Name 平台标识
func (a *AppleHealthClient) Name() string {
	return "apple"
}

// ImportExport 导入一批 HealthKit 导出记录，返回接受的步数记录数
// 非步数类型的记录直接忽略；时刻无法解析的记录跳过
func (a *AppleHealthClient) ImportExport(userID string, records []HealthKitRecord) int {
	samples := make([]models.RawSample, 0, len(records))
	for _, record := range records {
		if record.Type != stepCountType {
			continue
		}
		start, ok := parseHealthKitTime(record.StartDate)
		if !ok {
			continue
		}
		samples = append(samples, models.RawSample{
			Date:     start.Format(models.DateLayout),
			Interval: start.Format("15:04"),
			Steps:    record.Value,
		})
	}

	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.exports[userID] = append(a.exports[userID], samples...)
	return len(samples)
}

// FetchSamples 取出该用户已上传且落在范围内的采样
// 范围过滤由规范化器完成，这里直接返回全部缓存
func (a *AppleHealthClient) FetchSamples(ctx context.Context, req *FetchRequest) ([]models.RawSample, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	cached := a.exports[req.UserID]
	samples := make([]models.RawSample, len(cached))
	copy(samples, cached)
	return samples, nil
}

// parseHealthKitTime 解析 HealthKit 导出的时刻字段
func parseHealthKitTime(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04:05 -0700"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
