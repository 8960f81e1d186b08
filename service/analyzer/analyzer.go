/*
 * @module service/analyzer/analyzer
 * @description 汇总报告组装器，按固定流水线驱动各分析阶段并组装只读的汇总报告
 * @architecture 分层架构 - 分析核心层，纯函数流水线
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 规范化 -> (质量评估基于插补前快照, 插补) -> 每日聚合/模式分析 -> 报告组装
 * @rules 组装器自身不做计算，只转发上游的第一个失败；整个流水线无共享可变状态，
 *        可被宿主层对独立请求并发调用
 * @dependencies activity-service/service/models
 * @refs normalizer.go, imputer.go, daily.go, patterns.go, quality.go
 */

package analyzer

import (
	"activity-service/service/models"
)

// Result 一次分析的完整输出
type Result struct {
	Report *models.SummaryReport
	// FallbackIntervals 插补阶段发生零值回退的间隔ID，非致命，由调用方记录
	FallbackIntervals []int
	// SampleCount 参与分析的原始采样点数量
	SampleCount int
}

// Analyze 对原始采样执行完整的统计分析流水线
// 输入快照构建一次，之后所有派生数据均由纯函数计算，调用之间不保留任何状态
func Analyze(samples []models.RawSample, startDate, endDate string) (*Result, error) {
	grid, err := Normalize(samples, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// 质量指标基于插补前的网格快照
	quality, err := AssessQuality(grid)
	if err != nil {
		return nil, err
	}

	imputation := Impute(grid)

	totals := DailyTotals(imputation.Grid)
	dailyStats, err := CalculateDailyStatistics(totals)
	if err != nil {
		return nil, err
	}

	report := &models.SummaryReport{
		DailyStatistics: dailyStats,
		PeakActivity:    FindPeakActivity(imputation.Grid),
		WeekdayPatterns: AnalyzeWeekdayPatterns(imputation.Grid),
		DataQuality:     quality,
		TimeSpan: models.TimeSpan{
			StartDate: grid.StartDate.Format(models.DateLayout),
			EndDate:   grid.EndDate.Format(models.DateLayout),
			TotalDays: grid.Days(),
		},
	}

	return &Result{
		Report:            report,
		FallbackIntervals: imputation.FallbackIntervals,
		SampleCount:       len(samples),
	}, nil
}
