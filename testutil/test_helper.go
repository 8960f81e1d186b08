/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供内存数据库和测试数据工厂
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"

	"activity-service/service/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建内存测试数据库并迁移模型
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	if err := db.AutoMigrate(&models.AnalysisRecord{}); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// Close 关闭测试数据库连接
func (t *TestDB) Close() {
	sqlDB, err := t.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// CompleteSamples 构造一组日期上全部288个间隔的采样，步数恒为 value
func CompleteSamples(dates []string, value float64) []models.RawSample {
	samples := make([]models.RawSample, 0, len(dates)*models.IntervalsPerDay)
	for _, date := range dates {
		for id := 0; id < models.IntervalsPerDay; id++ {
			samples = append(samples, models.RawSample{Date: date, Interval: id, Steps: value})
		}
	}
	return samples
}
