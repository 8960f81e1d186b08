/*
 * @module service/platform/garmin
 * @description Garmin 健康接口客户端，按 wellness epoch 拉取步数并折算到5分钟桶
 * @architecture 适配器模式 - HTTP客户端封装
 * @documentReference ai_docs/platform_integration_req.md, https://developer.garmin.com/
 * @stateFlow 逐天请求 epoch 数据 -> 按起始时刻映射到所属桶 -> 转换为统一采样格式
 * @rules OAuth 签名流程由上游完成，这里只携带已签发的访问令牌
 * @dependencies net/http, encoding/json, time
 * @refs interface.go, service/analyzer/normalizer.go
 */

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"activity-service/service/models"
)

// GarminClient Garmin 健康接口客户端
type GarminClient struct {
	baseURL string
	client  *http.Client
}

// garminEpoch 单个 wellness epoch
type garminEpoch struct {
	StartTimeLocal string  `json:"startTimeLocal"` // 2006-01-02T15:04:05
	Steps          float64 `json:"steps"`
}

// NewGarminClient 创建 Garmin 客户端
func NewGarminClient() *GarminClient {
	return &GarminClient{
		baseURL: "https://connectapi.garmin.com",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL 设置 API 基础地址（用于测试）
func (g *GarminClient) SetBaseURL(baseURL string) {
	g.baseURL = baseURL
}

// Name 平台标识
func (g *GarminClient) Name() string {
	return "garmin"
}

// FetchSamples 逐天拉取 wellness epoch 步数
// epoch 的步数计入其起始时刻所属的5分钟桶，由规范化器负责桶内累加
func (g *GarminClient) FetchSamples(ctx context.Context, req *FetchRequest) ([]models.RawSample, error) {
	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("起始日期无效: %w", err)
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("结束日期无效: %w", err)
	}

	samples := make([]models.RawSample, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dateStr := date.Format(models.DateLayout)
		endpoint := fmt.Sprintf("%s/wellness-service/wellness/epochs?calendarDate=%s", g.baseURL, dateStr)

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
		httpReq.Header.Set("Accept", "application/json")

		resp, err := g.client.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("读取响应失败: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Garmin 接口返回状态 %d", resp.StatusCode)
		}

		var epochs []garminEpoch
		if err := json.Unmarshal(body, &epochs); err != nil {
			return nil, fmt.Errorf("解析 Garmin 响应失败: %w", err)
		}

		for _, epoch := range epochs {
			startTime, err := time.Parse("2006-01-02T15:04:05", epoch.StartTimeLocal)
			if err != nil {
				return nil, fmt.Errorf("epoch 起始时刻 %q 无法解析: %w", epoch.StartTimeLocal, err)
			}
			samples = append(samples, models.RawSample{
				Date:     dateStr,
				Interval: startTime.Format("15:04"),
				Steps:    epoch.Steps,
			})
		}
	}

	return samples, nil
}
