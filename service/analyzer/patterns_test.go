/*
 * @module service/analyzer/patterns_test
 * @description 模式分析器的单元测试
 * @architecture 单元测试 - 验证日类划分、分时段均值和峰值检测
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 构造网格 -> 模式分析 -> 类均值与峰值验证
 * @rules 覆盖划分穷尽互斥、峰值并列确定性和空日类的退化输出
 * @dependencies testing, github.com/stretchr/testify
 * @refs patterns.go
 */

package analyzer

import (
	"testing"

	"activity-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeWeekdayPatterns(t *testing.T) {
	// 2022-10-01(六)/10-02(日) 为周末，10-03(一) 为工作日
	samples := completeSamples([]string{"2022-10-01", "2022-10-02"}, 30)
	samples = append(samples, completeSamples([]string{"2022-10-03"}, 10)...)

	grid, err := Normalize(samples, "2022-10-01", "2022-10-03")
	require.NoError(t, err)

	patterns := AnalyzeWeekdayPatterns(Impute(grid).Grid)

	require.Len(t, patterns.WeekdayIntervals, models.IntervalsPerDay)
	require.Len(t, patterns.WeekendIntervals, models.IntervalsPerDay)
	assert.Equal(t, 10.0, patterns.WeekdayAvg)
	assert.Equal(t, 30.0, patterns.WeekendAvg)

	for _, im := range patterns.WeekdayIntervals {
		assert.Equal(t, 10.0, im.Steps)
	}
	for _, im := range patterns.WeekendIntervals {
		assert.Equal(t, 30.0, im.Steps)
	}
}

func TestAnalyzeWeekdayPatterns_PartitionIsExhaustive(t *testing.T) {
	// 范围内每一天恰好属于一个日类，仅由其星期几决定
	samples := completeSamples([]string{
		"2022-10-03", "2022-10-04", "2022-10-05", "2022-10-06", "2022-10-07", // 一~五
		"2022-10-08", "2022-10-09", // 六日
	}, 1)

	grid, err := Normalize(samples, "2022-10-03", "2022-10-09")
	require.NoError(t, err)

	imputed := Impute(grid).Grid
	totals := DailyTotals(imputed)

	weekdays, weekends := 0, 0
	for _, record := range totals {
		if record.IsWeekend {
			weekends++
		} else {
			weekdays++
		}
	}
	assert.Equal(t, 5, weekdays)
	assert.Equal(t, 2, weekends)
}

func TestAnalyzeWeekdayPatterns_NoWeekendDays(t *testing.T) {
	// 范围内没有周六/周日：周末输出为空序列和零均值，不报错
	samples := completeSamples([]string{
		"2022-10-03", "2022-10-04", "2022-10-05", "2022-10-06", "2022-10-07",
	}, 20)

	grid, err := Normalize(samples, "2022-10-03", "2022-10-07")
	require.NoError(t, err)

	patterns := AnalyzeWeekdayPatterns(Impute(grid).Grid)

	assert.Empty(t, patterns.WeekendIntervals)
	assert.Equal(t, 0.0, patterns.WeekendAvg)
	assert.Equal(t, 20.0, patterns.WeekdayAvg)
	assert.Len(t, patterns.WeekdayIntervals, models.IntervalsPerDay)
}

func TestFindPeakActivity(t *testing.T) {
	samples := completeSamples([]string{"2022-10-01", "2022-10-02"}, 5)
	samples[150].Steps = 800
	samples[models.IntervalsPerDay+150].Steps = 600

	grid, err := Normalize(samples, "2022-10-01", "2022-10-02")
	require.NoError(t, err)

	peak := FindPeakActivity(Impute(grid).Grid)
	assert.Equal(t, 150, peak.Interval)
	assert.Equal(t, 700.0, peak.AverageSteps)
}

func TestFindPeakActivity_TieBreaksToEarlierInterval(t *testing.T) {
	// 均值并列时取较小的间隔ID保证确定性
	samples := completeSamples([]string{"2022-10-01"}, 0)
	samples[50].Steps = 100
	samples[200].Steps = 100

	grid, err := Normalize(samples, "2022-10-01", "2022-10-01")
	require.NoError(t, err)

	peak := FindPeakActivity(Impute(grid).Grid)
	assert.Equal(t, 50, peak.Interval)
	assert.Equal(t, 100.0, peak.AverageSteps)
}
