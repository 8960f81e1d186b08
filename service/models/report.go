/*
 * @module service/models/report
 * @description 活动分析报告模型，字段名与嵌套结构是前端仪表盘的线格式契约，不可变更
 * @architecture 数据模型层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 分析器各阶段输出 -> 报告组装 -> API响应/缓存
 * @rules 报告为只读结构，构建后不再修改；weekday/weekend 间隔序列完整时各288项
 * @dependencies 无
 * @refs service/analyzer/analyzer.go, api/controllers/activity_controller.go
 */

package models

// DailyStatistics 每日总步数的统计量
type DailyStatistics struct {
	MeanSteps   float64 `json:"mean_steps"`
	MedianSteps float64 `json:"median_steps"`
	MinSteps    float64 `json:"min_steps"`
	MaxSteps    float64 `json:"max_steps"`
	StdSteps    float64 `json:"std_steps"`
}

// PeakActivity 全时段平均步数最高的间隔
type PeakActivity struct {
	Interval     int     `json:"interval"`
	AverageSteps float64 `json:"average_steps"`
}

// IntervalMean 单个间隔的平均步数
type IntervalMean struct {
	Interval int     `json:"interval"`
	Steps    float64 `json:"steps"`
}

// WeekdayPatterns 工作日/周末活动模式对比
type WeekdayPatterns struct {
	WeekdayAvg       float64        `json:"weekday_avg"`
	WeekendAvg       float64        `json:"weekend_avg"`
	WeekdayIntervals []IntervalMean `json:"weekday_intervals"`
	WeekendIntervals []IntervalMean `json:"weekend_intervals"`
}

// DataQuality 插补前网格的数据质量指标
type DataQuality struct {
	DataCompleteness float64 `json:"data_completeness"` // 完整度百分比 [0,100]
	TotalRows        int     `json:"total_rows"`
	MissingSteps     int     `json:"missing_steps"`
	MissingDays      int     `json:"missing_days"` // 288个间隔全部缺失的天数
}

// TimeSpan 分析覆盖的日期范围
type TimeSpan struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
}

// SummaryReport 活动分析汇总报告（根结构）
type SummaryReport struct {
	DailyStatistics DailyStatistics `json:"daily_statistics"`
	PeakActivity    PeakActivity    `json:"peak_activity"`
	WeekdayPatterns WeekdayPatterns `json:"weekday_patterns"`
	DataQuality     DataQuality     `json:"data_quality"`
	TimeSpan        TimeSpan        `json:"time_span"`
}
