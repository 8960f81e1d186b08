/*
 * @module service/analyzer/daily
 * @description 每日聚合器，将插补后网格归约为每日总步数及其集中趋势统计量
 * @architecture 分层架构 - 分析核心层，纯函数
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 插补网格 -> 每日求和 -> 均值/中位数/极值/标准差
 * @rules 中位数遵循标准奇偶规则（偶数个取中间两值均值）；零天时报数据量不足而不是除零
 * @dependencies math, sort
 * @refs imputer.go, analyzer.go
 */

package analyzer

import (
	"math"
	"sort"

	"activity-service/service/models"
)

// DailyTotals 计算每日总步数
// 输入应为插补后的完整网格，每天恰好288条记录
func DailyTotals(grid *models.ActivityGrid) []models.DailyRecord {
	days := grid.Days()
	totals := make([]models.DailyRecord, 0, days)

	for d := 0; d < days; d++ {
		var sum float64
		for i := d * models.IntervalsPerDay; i < (d+1)*models.IntervalsPerDay; i++ {
			if grid.Records[i].Steps != nil {
				sum += *grid.Records[i].Steps
			}
		}
		date := grid.StartDate.AddDate(0, 0, d)
		totals = append(totals, models.DailyRecord{
			Date:       date,
			TotalSteps: sum,
			IsWeekend:  models.IsWeekendDay(date),
		})
	}

	return totals
}

// CalculateDailyStatistics 计算每日总步数的统计量
func CalculateDailyStatistics(totals []models.DailyRecord) (models.DailyStatistics, error) {
	if len(totals) == 0 {
		return models.DailyStatistics{}, NewInsufficientDataError("没有可统计的日期")
	}

	values := make([]float64, len(totals))
	var sum float64
	minValue, maxValue := totals[0].TotalSteps, totals[0].TotalSteps
	for i, record := range totals {
		values[i] = record.TotalSteps
		sum += record.TotalSteps
		if record.TotalSteps < minValue {
			minValue = record.TotalSteps
		}
		if record.TotalSteps > maxValue {
			maxValue = record.TotalSteps
		}
	}
	mean := sum / float64(len(values))

	sort.Float64s(values)
	var median float64
	mid := len(values) / 2
	if len(values)%2 == 0 {
		median = (values[mid-1] + values[mid]) / 2
	} else {
		median = values[mid]
	}

	// 样本标准差，单日样本无法估计离散度时为 0
	var std float64
	if len(values) > 1 {
		var squared float64
		for _, v := range values {
			squared += (v - mean) * (v - mean)
		}
		std = math.Sqrt(squared / float64(len(values)-1))
	}

	return models.DailyStatistics{
		MeanSteps:   mean,
		MedianSteps: median,
		MinSteps:    minValue,
		MaxSteps:    maxValue,
		StdSteps:    std,
	}, nil
}
