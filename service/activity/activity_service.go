/*
 * @module service/activity/activity_service
 * @description 活动分析编排服务：拉取平台采样、驱动分析核心、落库、缓存与事件通知
 * @architecture 分层架构 - 服务编排层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 解析平台 -> 查缓存 -> 拉取采样 -> 分析 -> 记录落库 -> 写缓存 -> 发布事件
 * @rules 分析核心无状态，独立请求可并发编排；缓存和事件通知为尽力而为，
 *        失败只记日志不影响分析结果返回
 * @dependencies activity-service/service/analyzer, activity-service/service/platform
 * @refs service/analyzer/analyzer.go, service/platform/interface.go
 */

package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"activity-service/service/analyzer"
	"activity-service/service/models"
	"activity-service/service/platform"
)

// EventPublisher 分析完成事件发布接口
type EventPublisher interface {
	PublishAnalysisCompleted(ctx context.Context, record *models.AnalysisRecord) error
}

// ActivityService 活动分析编排服务
type ActivityService struct {
	registry  *platform.Registry
	repo      *AnalysisRepository
	cache     *ReportCache    // 可为 nil，降级为每次直接分析
	publisher EventPublisher  // 可为 nil，跳过事件通知
}

// NewActivityService 创建活动分析服务
func NewActivityService(registry *platform.Registry, repo *AnalysisRepository, cache *ReportCache, publisher EventPublisher) *ActivityService {
	return &ActivityService{
		registry:  registry,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// Analyze 执行一次完整的活动分析
func (s *ActivityService) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.SummaryReport, error) {
	if cached := s.lookupCache(ctx, req); cached != nil {
		cacheHitTotal.Inc()
		return cached, nil
	}

	samples, err := s.fetchSamples(ctx, req)
	if err != nil {
		analysisTotal.WithLabelValues(req.Platform, "failed").Inc()
		return nil, err
	}

	startTime := time.Now()
	result, err := analyzer.Analyze(samples, req.StartDate, req.EndDate)
	duration := time.Since(startTime)
	analysisDuration.Observe(duration.Seconds())

	if err != nil {
		analysisTotal.WithLabelValues(req.Platform, "failed").Inc()
		s.saveRecord(req, nil, duration, len(samples), err)
		return nil, err
	}
	analysisTotal.WithLabelValues(req.Platform, "success").Inc()

	// 零值回退是质量事件而非失败
	if len(result.FallbackIntervals) > 0 {
		imputationFallbackTotal.Add(float64(len(result.FallbackIntervals)))
		slog.Warn("插补发生零值回退",
			"user_id", req.UserID,
			"platform", req.Platform,
			"interval_count", len(result.FallbackIntervals))
	}

	record := s.saveRecord(req, result, duration, len(samples), nil)

	if s.cache != nil {
		if err := s.cache.Set(ctx, req.UserID, req.Platform, req.StartDate, req.EndDate, result.Report); err != nil {
			slog.Warn("写入报告缓存失败", "error", err)
		}
	}
	if s.publisher != nil && record != nil {
		if err := s.publisher.PublishAnalysisCompleted(ctx, record); err != nil {
			slog.Warn("发布分析完成事件失败", "error", err)
		}
	}

	return result.Report, nil
}

// GetRecord 查询历史分析记录
func (s *ActivityService) GetRecord(id string) (*models.AnalysisRecord, error) {
	return s.repo.GetByID(id)
}

// ListRecords 按用户分页查询历史分析记录
func (s *ActivityService) ListRecords(userID string, page, size int) ([]models.AnalysisRecord, int64, error) {
	return s.repo.ListByUser(userID, page, size)
}

// RefreshRecent 重新执行最近的成功分析以刷新缓存（定时任务调用）
// 需要访问令牌的平台无法离线刷新，直接跳过
func (s *ActivityService) RefreshRecent(ctx context.Context, limit int) {
	records, err := s.repo.ListRecentSuccessful(limit)
	if err != nil {
		slog.Error("查询最近分析记录失败", "error", err)
		return
	}

	refreshed := 0
	for _, record := range records {
		if record.Platform != "stream" && record.Platform != "apple" {
			continue
		}
		_, err := s.Analyze(ctx, &models.AnalyzeRequest{
			Platform:  record.Platform,
			UserID:    record.UserID,
			StartDate: record.StartDate,
			EndDate:   record.EndDate,
		})
		if err != nil {
			slog.Warn("刷新分析失败", "record_id", record.ID, "error", err)
			continue
		}
		refreshed++
	}
	slog.Info("定时刷新完成", "candidates", len(records), "refreshed", refreshed)
}

// lookupCache 查缓存，任何缓存故障都降级为未命中
func (s *ActivityService) lookupCache(ctx context.Context, req *models.AnalyzeRequest) *models.SummaryReport {
	if s.cache == nil || req.Platform == "manual" {
		return nil
	}
	report, err := s.cache.Get(ctx, req.UserID, req.Platform, req.StartDate, req.EndDate)
	if err != nil {
		slog.Warn("读取报告缓存失败", "error", err)
		return nil
	}
	return report
}

// fetchSamples 获取原始采样：manual 直接使用请求携带的数据，其余走平台客户端
func (s *ActivityService) fetchSamples(ctx context.Context, req *models.AnalyzeRequest) ([]models.RawSample, error) {
	if req.Platform == "manual" {
		return req.Samples, nil
	}

	client, err := s.registry.Get(req.Platform)
	if err != nil {
		return nil, err
	}
	samples, err := client.FetchSamples(ctx, &platform.FetchRequest{
		UserID:       req.UserID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("拉取 %s 平台数据失败: %w", req.Platform, err)
	}
	return samples, nil
}

// saveRecord 保存分析执行记录，失败只记日志
func (s *ActivityService) saveRecord(req *models.AnalyzeRequest, result *analyzer.Result, duration time.Duration, sampleCount int, analyzeErr error) *models.AnalysisRecord {
	record := &models.AnalysisRecord{
		UserID:      req.UserID,
		Platform:    req.Platform,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      "success",
		Duration:    duration.Milliseconds(),
		SampleCount: sampleCount,
	}

	if analyzeErr != nil {
		record.Status = "failed"
		record.ErrorMessage = analyzeErr.Error()
	} else {
		record.DataCompleteness = result.Report.DataQuality.DataCompleteness
		record.MissingSteps = result.Report.DataQuality.MissingSteps
		record.FallbackIntervals = make([]int64, 0, len(result.FallbackIntervals))
		for _, id := range result.FallbackIntervals {
			record.FallbackIntervals = append(record.FallbackIntervals, int64(id))
		}
		if snapshot, err := reportToJSONB(result.Report); err == nil {
			record.Report = snapshot
		} else {
			slog.Warn("报告快照序列化失败", "error", err)
		}
	}

	if err := s.repo.Create(record); err != nil {
		slog.Error("保存分析记录失败", "error", err)
		return nil
	}
	return record
}

// reportToJSONB 把报告转换为 JSONB 快照
func reportToJSONB(report *models.SummaryReport) (models.JSONB, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	var snapshot models.JSONB
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
