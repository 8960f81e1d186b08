/*
 * @module service/analyzer/imputer
 * @description 缺失值插补器，用同一时段跨天均值填充规范化网格中的缺失观测
 * @architecture 分层架构 - 分析核心层，纯函数
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 统计各间隔的跨天均值 -> 逐条填充缺失记录 -> 输出完整网格
 * @rules 插补策略固定为同时段均值（流行病学数据的常规做法），不得替换为插值等其他策略；
 *        某间隔在全范围内无任何有效观测时回退为 0，作为非致命事件上报
 * @dependencies activity-service/service/models
 * @refs normalizer.go, analyzer.go
 */

package analyzer

import (
	"activity-service/service/models"
)

// ImputationResult 插补结果
type ImputationResult struct {
	Grid *models.ActivityGrid // 插补后的完整网格，所有记录均有步数值
	// FallbackIntervals 发生零值回退的间隔ID（该时段在整个范围内无有效观测），升序
	FallbackIntervals []int
}

// Impute 填充网格中的缺失观测
// 每条缺失记录用相同间隔ID在所有天上的有效观测均值替换；
// 输入网格保持不变（质量指标需要插补前的快照）
func Impute(grid *models.ActivityGrid) *ImputationResult {
	sums := make([]float64, models.IntervalsPerDay)
	counts := make([]int, models.IntervalsPerDay)
	for _, record := range grid.Records {
		if record.Steps != nil {
			sums[record.IntervalID] += *record.Steps
			counts[record.IntervalID]++
		}
	}

	means := make([]float64, models.IntervalsPerDay)
	fallback := make([]bool, models.IntervalsPerDay)
	for id := 0; id < models.IntervalsPerDay; id++ {
		if counts[id] > 0 {
			means[id] = sums[id] / float64(counts[id])
		} else {
			fallback[id] = true // 整个范围内该时段无数据，回退为 0
		}
	}

	records := make([]models.IntervalRecord, len(grid.Records))
	fallbackHit := make([]bool, models.IntervalsPerDay)
	for i, record := range grid.Records {
		imputed := record
		if record.Steps == nil {
			value := means[record.IntervalID]
			imputed.Steps = &value
			if fallback[record.IntervalID] {
				fallbackHit[record.IntervalID] = true
			}
		} else {
			value := *record.Steps
			imputed.Steps = &value
		}
		records[i] = imputed
	}

	fallbackIntervals := make([]int, 0)
	for id, hit := range fallbackHit {
		if hit {
			fallbackIntervals = append(fallbackIntervals, id)
		}
	}

	return &ImputationResult{
		Grid: &models.ActivityGrid{
			StartDate: grid.StartDate,
			EndDate:   grid.EndDate,
			Records:   records,
		},
		FallbackIntervals: fallbackIntervals,
	}
}
