/*
 * @module service/models/analysis_record
 * @description 分析执行记录模型，持久化每次活动分析的请求范围、耗时、质量指标和完整报告
 * @architecture 数据模型层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 分析执行 -> 记录落库 -> 定时刷新/历史查询
 * @rules 记录仅追加，报告以 JSONB 快照保存；分析核心本身不读写数据库
 * @dependencies gorm.io/gorm, github.com/lib/pq, time
 * @refs service/activity/repository.go, service/scheduler/
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AnalysisRecord 分析执行记录模型
type AnalysisRecord struct {
	ID                string        `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID            string        `gorm:"type:varchar(100);not null;index" json:"user_id"`
	Platform          string        `gorm:"type:varchar(30);not null;index" json:"platform"` // fitbit, garmin, apple, stream, manual
	StartDate         string        `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate           string        `gorm:"type:varchar(10);not null" json:"end_date"`
	Status            string        `gorm:"type:varchar(20);not null" json:"status"` // success, failed
	Duration          int64         `json:"duration"`                                // 分析时长，毫秒
	SampleCount       int           `json:"sample_count"`                            // 原始采样点数量
	DataCompleteness  float64       `json:"data_completeness"`
	MissingSteps      int           `json:"missing_steps"`
	FallbackIntervals pq.Int64Array `gorm:"type:integer[]" json:"fallback_intervals"` // 零值回退的间隔ID
	Report            JSONB         `gorm:"type:jsonb" json:"report"`                 // 报告快照
	ErrorMessage      string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// TableName 指定表名
func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

// BeforeCreate 创建前钩子
func (a *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
