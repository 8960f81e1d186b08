/*
 * @module service/analyzer/analyzer_test
 * @description 汇总报告组装流水线的单元测试
 * @architecture 单元测试 - 端到端验证报告结构与错误传播
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 原始采样 -> 完整流水线 -> 报告字段与线格式验证
 * @rules 报告的JSON字段名是前端契约，必须逐字保持稳定
 * @dependencies testing, encoding/json, github.com/stretchr/testify
 * @refs analyzer.go
 */

package analyzer

import (
	"encoding/json"
	"testing"

	"activity-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_FullPipeline(t *testing.T) {
	// 2022-10-01(六)/10-02(日)，间隔100为 [500, NA]，其余恒为10
	samples := completeSamples([]string{"2022-10-01", "2022-10-02"}, 10)
	samples[100].Steps = 500
	samples[models.IntervalsPerDay+100].Steps = "NA"

	result, err := Analyze(samples, "2022-10-01", "2022-10-02")
	require.NoError(t, err)
	report := result.Report

	// 质量指标基于插补前快照
	assert.Equal(t, 576, report.DataQuality.TotalRows)
	assert.Equal(t, 1, report.DataQuality.MissingSteps)
	assert.InDelta(t, 99.83, report.DataQuality.DataCompleteness, 0.01)

	// 插补后两天总数一致：287*10 + 500
	expectedTotal := 287.0*10 + 500
	assert.Equal(t, expectedTotal, report.DailyStatistics.MeanSteps)
	assert.Equal(t, expectedTotal, report.DailyStatistics.MedianSteps)

	// 峰值为间隔100，两天插补后均为500
	assert.Equal(t, 100, report.PeakActivity.Interval)
	assert.Equal(t, 500.0, report.PeakActivity.AverageSteps)

	// 两天都是周末
	assert.Empty(t, report.WeekdayPatterns.WeekdayIntervals)
	assert.Equal(t, 0.0, report.WeekdayPatterns.WeekdayAvg)
	require.Len(t, report.WeekdayPatterns.WeekendIntervals, models.IntervalsPerDay)

	assert.Equal(t, "2022-10-01", report.TimeSpan.StartDate)
	assert.Equal(t, "2022-10-02", report.TimeSpan.EndDate)
	assert.Equal(t, 2, report.TimeSpan.TotalDays)

	assert.Empty(t, result.FallbackIntervals)
	assert.Equal(t, len(samples), result.SampleCount)
}

func TestAnalyze_PropagatesFirstFailure(t *testing.T) {
	tests := []struct {
		name      string
		samples   []models.RawSample
		startDate string
		endDate   string
		check     func(error) bool
	}{
		{
			name:      "结构性输入错误立即中止",
			samples:   []models.RawSample{{Date: "bad-date", Interval: 0, Steps: 1}},
			startDate: "2022-10-01",
			endDate:   "2022-10-02",
			check:     IsInvalidInput,
		},
		{
			name:      "空日期范围不产出报告",
			samples:   nil,
			startDate: "2022-10-05",
			endDate:   "2022-10-01",
			check:     IsInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Analyze(tt.samples, tt.startDate, tt.endDate)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, tt.check(err))
		})
	}
}

func TestAnalyze_SparseInputRecordsFallbacks(t *testing.T) {
	// 仅间隔0有数据：其余287个间隔零值回退，属于质量问题而非失败
	samples := []models.RawSample{
		{Date: "2022-10-01", Interval: 0, Steps: 100},
	}

	result, err := Analyze(samples, "2022-10-01", "2022-10-01")
	require.NoError(t, err)
	assert.Len(t, result.FallbackIntervals, models.IntervalsPerDay-1)
	assert.Equal(t, 100.0, result.Report.DailyStatistics.MeanSteps)
}

func TestAnalyze_WireFormat(t *testing.T) {
	samples := completeSamples([]string{"2022-10-01"}, 1)

	result, err := Analyze(samples, "2022-10-01", "2022-10-01")
	require.NoError(t, err)

	data, err := json.Marshal(result.Report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// 顶层与嵌套字段名是仪表盘渲染依赖的线格式契约
	for _, key := range []string{"daily_statistics", "peak_activity", "weekday_patterns", "data_quality", "time_span"} {
		assert.Contains(t, decoded, key)
	}

	daily := decoded["daily_statistics"].(map[string]interface{})
	assert.Contains(t, daily, "mean_steps")
	assert.Contains(t, daily, "median_steps")

	peak := decoded["peak_activity"].(map[string]interface{})
	assert.Contains(t, peak, "interval")
	assert.Contains(t, peak, "average_steps")

	patterns := decoded["weekday_patterns"].(map[string]interface{})
	for _, key := range []string{"weekday_avg", "weekend_avg", "weekday_intervals", "weekend_intervals"} {
		assert.Contains(t, patterns, key)
	}

	quality := decoded["data_quality"].(map[string]interface{})
	for _, key := range []string{"data_completeness", "total_rows", "missing_steps"} {
		assert.Contains(t, quality, key)
	}

	span := decoded["time_span"].(map[string]interface{})
	for _, key := range []string{"start_date", "end_date", "total_days"} {
		assert.Contains(t, span, key)
	}
}
