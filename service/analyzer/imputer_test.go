/*
 * @module service/analyzer/imputer_test
 * @description 缺失值插补器的单元测试
 * @architecture 单元测试 - 验证同时段均值插补策略和零值回退
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 构造含缺口的网格 -> 插补 -> 验证填充值与回退事件
 * @rules 插补后不得残留缺失值；插补前网格必须保持原样
 * @dependencies testing, github.com/stretchr/testify
 * @refs imputer.go
 */

package analyzer

import (
	"testing"

	"activity-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeSamples 构造一组日期上全部288个间隔的采样，步数恒为 value
func completeSamples(dates []string, value float64) []models.RawSample {
	samples := make([]models.RawSample, 0, len(dates)*models.IntervalsPerDay)
	for _, date := range dates {
		for id := 0; id < models.IntervalsPerDay; id++ {
			samples = append(samples, models.RawSample{Date: date, Interval: id, Steps: value})
		}
	}
	return samples
}

func TestImpute_SameIntervalCrossDayMean(t *testing.T) {
	// 规格场景：2022-10-01 ~ 2022-10-02 两个完整天，间隔100的值为 [500, NA]
	samples := completeSamples([]string{"2022-10-01", "2022-10-02"}, 10)
	samples[100].Steps = 500
	samples[models.IntervalsPerDay+100].Steps = "NA"

	grid, err := Normalize(samples, "2022-10-01", "2022-10-02")
	require.NoError(t, err)

	result := Impute(grid)

	// 第二天间隔100被填充为该时段唯一的有效观测 500
	imputed := result.Grid.Records[models.IntervalsPerDay+100]
	require.NotNil(t, imputed.Steps)
	assert.Equal(t, 500.0, *imputed.Steps)
	assert.Empty(t, result.FallbackIntervals)

	// 插补前网格保持原样
	assert.True(t, grid.Records[models.IntervalsPerDay+100].IsMissing())
}

func TestImpute_NoMissingAfterImputation(t *testing.T) {
	samples := []models.RawSample{
		{Date: "2022-10-01", Interval: 5, Steps: 50},
		{Date: "2022-10-03", Interval: 5, Steps: 150},
		{Date: "2022-10-02", Interval: 9, Steps: 30},
	}

	grid, err := Normalize(samples, "2022-10-01", "2022-10-03")
	require.NoError(t, err)

	result := Impute(grid)

	// 插补后所有记录都必须有值
	for _, record := range result.Grid.Records {
		require.NotNil(t, record.Steps, "间隔 %d 插补后仍缺失", record.IntervalID)
	}

	// 间隔5的缺失天填充为跨天均值 (50+150)/2
	middle := result.Grid.Records[models.IntervalsPerDay+5]
	assert.Equal(t, 100.0, *middle.Steps)
}

func TestImpute_ZeroFallback(t *testing.T) {
	// 间隔7在整个范围内没有任何有效观测，回退为0并上报事件
	samples := []models.RawSample{
		{Date: "2022-10-01", Interval: 3, Steps: 10},
		{Date: "2022-10-02", Interval: 3, Steps: 20},
	}

	grid, err := Normalize(samples, "2022-10-01", "2022-10-02")
	require.NoError(t, err)

	result := Impute(grid)

	record := result.Grid.Records[7]
	require.NotNil(t, record.Steps)
	assert.Equal(t, 0.0, *record.Steps)

	// 除间隔3外的287个间隔全部发生回退
	assert.Len(t, result.FallbackIntervals, models.IntervalsPerDay-1)
	assert.NotContains(t, result.FallbackIntervals, 3)
	assert.Contains(t, result.FallbackIntervals, 7)
}

func TestImpute_KeepsObservedValues(t *testing.T) {
	samples := completeSamples([]string{"2022-10-01"}, 42)

	grid, err := Normalize(samples, "2022-10-01", "2022-10-01")
	require.NoError(t, err)

	result := Impute(grid)
	for _, record := range result.Grid.Records {
		assert.Equal(t, 42.0, *record.Steps)
	}
	assert.Empty(t, result.FallbackIntervals)
}
