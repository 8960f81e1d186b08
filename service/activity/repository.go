/*
 * @module service/activity/repository
 * @description 分析执行记录的存取层
 * @architecture 仓储模式 - 封装 gorm 访问
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 分析完成 -> 记录落库 -> 历史查询/定时刷新
 * @rules 记录只增不改；查询按创建时间倒序
 * @dependencies gorm.io/gorm
 * @refs service/models/analysis_record.go, activity_service.go
 */

package activity

import (
	"fmt"

	"activity-service/service/models"

	"gorm.io/gorm"
)

// AnalysisRepository 分析执行记录仓储
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository 创建分析记录仓储
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create 保存一条分析执行记录
func (r *AnalysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("保存分析记录失败: %w", err)
	}
	return nil
}

// GetByID 按ID查询分析记录
func (r *AnalysisRepository) GetByID(id string) (*models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("查询分析记录失败: %w", err)
	}
	return &record, nil
}

// ListByUser 按用户分页查询分析记录，按创建时间倒序
func (r *AnalysisRepository) ListByUser(userID string, page, size int) ([]models.AnalysisRecord, int64, error) {
	var total int64
	query := r.db.Model(&models.AnalysisRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计分析记录失败: %w", err)
	}

	var records []models.AnalysisRecord
	if err := query.Order("created_at DESC").Offset((page - 1) * size).Limit(size).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("查询分析记录失败: %w", err)
	}
	return records, total, nil
}

// ListRecentSuccessful 查询最近的成功记录（定时刷新用）
func (r *AnalysisRepository) ListRecentSuccessful(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	if err := r.db.Where("status = ?", "success").
		Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("查询最近分析记录失败: %w", err)
	}
	return records, nil
}
