/*
 * @module service/platform/apple_health_test
 * @description Apple Health 数据源与平台注册表的单元测试
 * @architecture 单元测试 - 验证导出记录过滤与注册表解析
 * @documentReference ai_docs/platform_integration_req.md
 * @stateFlow 导入导出记录 -> 类型过滤 -> 按用户取出
 * @rules 非步数类型必须被忽略；不同用户的缓存互不可见
 * @dependencies testing, github.com/stretchr/testify
 * @refs apple_health.go, interface.go
 */

package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleHealthClient_ImportExport(t *testing.T) {
	client := NewAppleHealthClient()

	accepted := client.ImportExport("u1", []HealthKitRecord{
		{Type: stepCountType, StartDate: "2022-10-01 08:03:00", Value: 25},
		{Type: stepCountType, StartDate: "2022-10-01T09:30:00Z", Value: 40},
		{Type: "HKQuantityTypeIdentifierHeartRate", StartDate: "2022-10-01 08:03:00", Value: 72},
		{Type: stepCountType, StartDate: "not-a-time", Value: 10},
	})
	assert.Equal(t, 2, accepted)

	samples, err := client.FetchSamples(context.Background(), &FetchRequest{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "2022-10-01", samples[0].Date)
	assert.Equal(t, "08:03", samples[0].Interval)
	assert.Equal(t, "09:30", samples[1].Interval)
}

func TestAppleHealthClient_IsolatesUsers(t *testing.T) {
	client := NewAppleHealthClient()
	client.ImportExport("u1", []HealthKitRecord{
		{Type: stepCountType, StartDate: "2022-10-01 08:00:00", Value: 25},
	})

	samples, err := client.FetchSamples(context.Background(), &FetchRequest{UserID: "u2"})
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewAppleHealthClient())
	registry.Register(NewFitbitClient("id", "secret"))

	client, err := registry.Get("fitbit")
	require.NoError(t, err)
	assert.Equal(t, "fitbit", client.Name())

	_, err = registry.Get("unknown")
	require.Error(t, err)

	assert.ElementsMatch(t, []string{"apple", "fitbit"}, registry.Names())
}
