/*
 * @module service/analyzer/patterns
 * @description 模式分析器，计算工作日/周末的分时段活动均值和全时段峰值间隔
 * @architecture 分层架构 - 分析核心层，纯函数
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 插补网格 -> 按日类划分 -> 分间隔求均值 -> 类均值与峰值检测
 * @rules 周六/周日为周末，划分既穷尽又互斥；峰值均值并列时取较小的间隔ID保证确定性；
 *        某一类天数为零时输出空序列和零均值而非报错
 * @dependencies activity-service/service/models
 * @refs imputer.go, analyzer.go
 */

package analyzer

import (
	"activity-service/service/models"
)

// AnalyzeWeekdayPatterns 对比工作日与周末的分时段活动模式
// 基于插补后的完整网格；weekday_avg/weekend_avg 为该类288个间隔均值的均值
func AnalyzeWeekdayPatterns(grid *models.ActivityGrid) models.WeekdayPatterns {
	weekday := classIntervalMeans(grid, false)
	weekend := classIntervalMeans(grid, true)

	return models.WeekdayPatterns{
		WeekdayAvg:       meanOfIntervals(weekday),
		WeekendAvg:       meanOfIntervals(weekend),
		WeekdayIntervals: weekday,
		WeekendIntervals: weekend,
	}
}

// FindPeakActivity 在全部数据（两类合并）的分间隔均值中检测峰值间隔
func FindPeakActivity(grid *models.ActivityGrid) models.PeakActivity {
	sums := make([]float64, models.IntervalsPerDay)
	counts := make([]int, models.IntervalsPerDay)
	for _, record := range grid.Records {
		if record.Steps != nil {
			sums[record.IntervalID] += *record.Steps
			counts[record.IntervalID]++
		}
	}

	peak := models.PeakActivity{}
	for id := 0; id < models.IntervalsPerDay; id++ {
		if counts[id] == 0 {
			continue
		}
		mean := sums[id] / float64(counts[id])
		// 严格大于才更新，均值并列时保留更早的间隔
		if mean > peak.AverageSteps || counts[peak.Interval] == 0 {
			peak.Interval = id
			peak.AverageSteps = mean
		}
	}

	return peak
}

// classIntervalMeans 计算指定日类（工作日或周末）的288个分间隔均值
// 该类没有任何天时返回空序列
func classIntervalMeans(grid *models.ActivityGrid, weekend bool) []models.IntervalMean {
	sums := make([]float64, models.IntervalsPerDay)
	counts := make([]int, models.IntervalsPerDay)
	classDays := 0

	days := grid.Days()
	for d := 0; d < days; d++ {
		date := grid.StartDate.AddDate(0, 0, d)
		if models.IsWeekendDay(date) != weekend {
			continue
		}
		classDays++
		for i := d * models.IntervalsPerDay; i < (d+1)*models.IntervalsPerDay; i++ {
			record := grid.Records[i]
			if record.Steps != nil {
				sums[record.IntervalID] += *record.Steps
				counts[record.IntervalID]++
			}
		}
	}

	if classDays == 0 {
		return []models.IntervalMean{}
	}

	means := make([]models.IntervalMean, 0, models.IntervalsPerDay)
	for id := 0; id < models.IntervalsPerDay; id++ {
		var mean float64
		if counts[id] > 0 {
			mean = sums[id] / float64(counts[id])
		}
		means = append(means, models.IntervalMean{Interval: id, Steps: mean})
	}
	return means
}

// meanOfIntervals 分间隔均值的总体均值，空序列返回 0
func meanOfIntervals(intervals []models.IntervalMean) float64 {
	if len(intervals) == 0 {
		return 0
	}
	var sum float64
	for _, im := range intervals {
		sum += im.Steps
	}
	return sum / float64(len(intervals))
}
