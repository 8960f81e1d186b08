/*
 * @module service/platform/fitbit_test
 * @description Fitbit 客户端的单元测试
 * @architecture 单元测试 - 基于 httptest 模拟 Fitbit 接口
 * @documentReference ai_docs/platform_integration_req.md
 * @stateFlow 模拟服务器 -> 拉取采样 -> 格式与令牌刷新验证
 * @rules 覆盖正常拉取、401刷新重试和无日内数据的降级
 * @dependencies testing, net/http/httptest, github.com/stretchr/testify
 * @refs fitbit.go
 */

package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intradayPayload(entries ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"activities-steps-intraday": map[string]interface{}{
			"dataset": entries,
		},
	}
}

func TestFitbitClient_FetchSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(intradayPayload(
			map[string]interface{}{"time": "00:00:00", "value": 3},
			map[string]interface{}{"time": "08:20:00", "value": 120},
		))
	}))
	defer server.Close()

	client := NewFitbitClient("id", "secret")
	client.SetBaseURL(server.URL)

	samples, err := client.FetchSamples(context.Background(), &FetchRequest{
		UserID:      "u1",
		StartDate:   "2022-10-01",
		EndDate:     "2022-10-01",
		AccessToken: "token-1",
	})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "2022-10-01", samples[0].Date)
	assert.Equal(t, "00:00", samples[0].Interval)
	assert.Equal(t, "08:20", samples[1].Interval)
	assert.Equal(t, 120.0, samples[1].Steps)
}

func TestFitbitClient_RefreshesTokenOn401(t *testing.T) {
	refreshed := false

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.Form.Get("refresh_token"))
		refreshed = true

		json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "token-2",
			"refresh_token": "refresh-2",
		})
	}))
	defer tokenServer.Close()

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(intradayPayload(
			map[string]interface{}{"time": "12:00:00", "value": 50},
		))
	}))
	defer apiServer.Close()

	client := NewFitbitClient("id", "secret")
	client.SetBaseURL(apiServer.URL)
	client.SetTokenURL(tokenServer.URL)

	samples, err := client.FetchSamples(context.Background(), &FetchRequest{
		StartDate:    "2022-10-01",
		EndDate:      "2022-10-01",
		AccessToken:  "expired",
		RefreshToken: "refresh-1",
	})
	require.NoError(t, err)
	assert.True(t, refreshed)
	require.Len(t, samples, 1)
	assert.Equal(t, 50.0, samples[0].Steps)
}

func TestFitbitClient_SkipsDayWithoutIntraday(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 只返回日汇总，没有日内数据
		json.NewEncoder(w).Encode(map[string]interface{}{
			"summary": map[string]interface{}{"steps": 10000},
		})
	}))
	defer server.Close()

	client := NewFitbitClient("id", "secret")
	client.SetBaseURL(server.URL)

	samples, err := client.FetchSamples(context.Background(), &FetchRequest{
		StartDate:   "2022-10-01",
		EndDate:     "2022-10-02",
		AccessToken: "token",
	})
	require.NoError(t, err)
	// 该天所有桶保持缺失，由质量指标反映
	assert.Empty(t, samples)
}
