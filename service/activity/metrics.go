/*
 * @module service/activity/metrics
 * @description 活动分析的 Prometheus 指标：分析次数、耗时与插补回退计数
 * @architecture 监控埋点 - 指标在 /metrics 端点暴露
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 分析执行 -> 指标累加 -> Prometheus 抓取
 * @rules 指标注册到默认注册表，由主程序挂载 promhttp 处理器
 * @dependencies github.com/prometheus/client_golang
 * @refs activity_service.go, main.go
 */

package activity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// analysisTotal 按平台和结果统计的分析次数
	analysisTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activity_analysis_total",
		Help: "活动分析执行次数",
	}, []string{"platform", "status"})

	// analysisDuration 分析耗时分布
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "activity_analysis_duration_seconds",
		Help:    "活动分析耗时（秒）",
		Buckets: prometheus.DefBuckets,
	})

	// imputationFallbackTotal 插补阶段零值回退的间隔总数
	imputationFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "activity_imputation_fallback_total",
		Help: "插补零值回退的间隔总数",
	})

	// cacheHitTotal 报告缓存命中次数
	cacheHitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "activity_report_cache_hit_total",
		Help: "报告缓存命中次数",
	})
)
