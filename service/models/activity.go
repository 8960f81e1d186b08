/*
 * @module service/models/activity
 * @description 活动数据核心模型，定义原始采样点、规范化网格和间隔记录
 * @architecture 数据模型层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 原始采样 -> 规范化网格 -> 插补网格 -> 统计报告
 * @rules 缺失步数用 nil 表示，严禁与 0 步混淆；网格内 (日期, 间隔) 组合唯一
 * @dependencies time
 * @refs service/analyzer/, service/platform/
 */

package models

import "time"

// IntervalsPerDay 每天的5分钟间隔数量 (24 * 60 / 5)
const IntervalsPerDay = 288

// DateLayout 日期的标准格式
const DateLayout = "2006-01-02"

// RawSample 平台采集的原始采样点
// Interval 和 Steps 为宽松类型，由规范化器负责解析：
// Interval 支持 [0,287] 的数字下标或 "HH:MM" 时刻标签，
// Steps 支持数字、null 或 "NA" 缺失标记
type RawSample struct {
	Date     string      `json:"date"`
	Interval interface{} `json:"interval"`
	Steps    interface{} `json:"steps"`
}

// IntervalRecord 规范化网格中的一条5分钟观测记录
// Steps 为 nil 表示该间隔无观测数据（缺失）
type IntervalRecord struct {
	Date       time.Time `json:"date"`
	IntervalID int       `json:"interval_id"`
	Steps      *float64  `json:"steps"`
}

// IsMissing 判断该记录是否缺失观测值
func (r *IntervalRecord) IsMissing() bool {
	return r.Steps == nil
}

// ActivityGrid 规范化网格：日期范围内每天恰好288条间隔记录
// 记录按 (日期, 间隔) 升序排列，构建后不再修改
type ActivityGrid struct {
	StartDate time.Time
	EndDate   time.Time
	Records   []IntervalRecord
}

// Days 网格覆盖的天数
func (g *ActivityGrid) Days() int {
	if len(g.Records) == 0 {
		return 0
	}
	return len(g.Records) / IntervalsPerDay
}

// DailyRecord 每日汇总记录（派生数据，不独立修改）
type DailyRecord struct {
	Date       time.Time `json:"date"`
	TotalSteps float64   `json:"total_steps"`
	IsWeekend  bool      `json:"is_weekend"`
}

// IsWeekendDay 判断日期是否属于周末（周六/周日）
func IsWeekendDay(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AnalyzeRequest 活动分析请求
type AnalyzeRequest struct {
	Platform     string      `json:"platform"` // fitbit, garmin, apple, stream, manual
	UserID       string      `json:"user_id"`
	StartDate    string      `json:"start_date"` // YYYY-MM-DD，含端点
	EndDate      string      `json:"end_date"`   // YYYY-MM-DD，含端点
	AccessToken  string      `json:"access_token,omitempty"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	Samples      []RawSample `json:"samples,omitempty"` // platform=manual 时直接携带采样数据
}
