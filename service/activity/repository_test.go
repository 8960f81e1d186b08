/*
 * @module service/activity/repository_test
 * @description 分析记录仓储的单元测试
 * @architecture 单元测试 - 基于内存 sqlite 验证存取逻辑
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 内存数据库 -> 写入记录 -> 查询验证
 * @rules 覆盖主键生成、分页查询和最近成功记录筛选
 * @dependencies testing, github.com/stretchr/testify, activity-service/testutil
 * @refs repository.go
 */

package activity

import (
	"testing"

	"activity-service/service/models"
	"activity-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *AnalysisRepository {
	t.Helper()
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	return NewAnalysisRepository(tdb.DB)
}

func TestAnalysisRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)

	record := &models.AnalysisRecord{
		UserID:            "u1",
		Platform:          "fitbit",
		StartDate:         "2022-10-01",
		EndDate:           "2022-10-02",
		Status:            "success",
		Duration:          12,
		SampleCount:       576,
		DataCompleteness:  99.83,
		MissingSteps:      1,
		FallbackIntervals: []int64{7, 42},
		Report:            models.JSONB{"time_span": map[string]interface{}{"total_days": 2.0}},
	}
	require.NoError(t, repo.Create(record))
	assert.NotEmpty(t, record.ID) // BeforeCreate 钩子生成主键

	loaded, err := repo.GetByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, "fitbit", loaded.Platform)
	assert.Equal(t, 99.83, loaded.DataCompleteness)
	assert.Equal(t, []int64{7, 42}, []int64(loaded.FallbackIntervals))
	assert.Contains(t, loaded.Report, "time_span")
}

func TestAnalysisRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetByID("missing")
	require.Error(t, err)
}

func TestAnalysisRepository_ListByUser(t *testing.T) {
	repo := newTestRepo(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(&models.AnalysisRecord{
			UserID: "u1", Platform: "manual", StartDate: "2022-10-01", EndDate: "2022-10-01", Status: "success",
		}))
	}
	require.NoError(t, repo.Create(&models.AnalysisRecord{
		UserID: "u2", Platform: "manual", StartDate: "2022-10-01", EndDate: "2022-10-01", Status: "success",
	}))

	records, total, err := repo.ListByUser("u1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 2)
}

func TestAnalysisRepository_ListRecentSuccessful(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Create(&models.AnalysisRecord{
		UserID: "u1", Platform: "stream", StartDate: "2022-10-01", EndDate: "2022-10-01", Status: "success",
	}))
	require.NoError(t, repo.Create(&models.AnalysisRecord{
		UserID: "u1", Platform: "stream", StartDate: "2022-10-02", EndDate: "2022-10-02", Status: "failed",
	}))

	records, err := repo.ListRecentSuccessful(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "success", records[0].Status)
}
