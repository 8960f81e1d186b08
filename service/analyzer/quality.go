/*
 * @module service/analyzer/quality
 * @description 数据质量报告器，基于插补前网格计算完整度与缺失指标
 * @architecture 分层架构 - 分析核心层，纯函数
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 插补前网格 -> 缺失计数 -> 完整度百分比
 * @rules 质量指标必须反映真实的数据缺口，只能作用于插补前的网格快照
 * @dependencies activity-service/service/models
 * @refs normalizer.go, analyzer.go
 */

package analyzer

import (
	"activity-service/service/models"
)

// AssessQuality 计算插补前网格的数据质量指标
// total_rows = 288 × 天数；data_completeness 为有效观测占比的百分数
func AssessQuality(grid *models.ActivityGrid) (models.DataQuality, error) {
	totalRows := len(grid.Records)
	if totalRows == 0 {
		return models.DataQuality{}, NewInsufficientDataError("网格中没有任何间隔记录")
	}

	missingSteps := 0
	missingDays := 0
	days := grid.Days()
	for d := 0; d < days; d++ {
		dayMissing := 0
		for i := d * models.IntervalsPerDay; i < (d+1)*models.IntervalsPerDay; i++ {
			if grid.Records[i].Steps == nil {
				dayMissing++
			}
		}
		missingSteps += dayMissing
		if dayMissing == models.IntervalsPerDay {
			missingDays++
		}
	}

	return models.DataQuality{
		DataCompleteness: float64(totalRows-missingSteps) / float64(totalRows) * 100,
		TotalRows:        totalRows,
		MissingSteps:     missingSteps,
		MissingDays:      missingDays,
	}, nil
}
