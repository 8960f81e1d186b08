/*
 * @module service/platform/fitbit
 * @description Fitbit Web API 客户端，拉取5分钟粒度的日内步数序列
 * @architecture 适配器模式 - HTTP客户端封装
 * @documentReference ai_docs/platform_integration_req.md, https://dev.fitbit.com/build/reference/web-api/
 * @stateFlow 逐天请求日内数据 -> 401时刷新令牌重试一次 -> 转换为统一采样格式
 * @rules 令牌的完整交换流程由上游负责，这里只在过期时用 refresh_token 换发一次；
 *        某天没有日内数据时该天所有桶保持缺失，由质量指标反映
 * @dependencies net/http, encoding/json, time
 * @refs interface.go, service/analyzer/normalizer.go
 */

package platform

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"activity-service/service/models"
)

// FitbitClient Fitbit Web API 客户端
type FitbitClient struct {
	baseURL      string
	tokenURL     string
	clientID     string
	clientSecret string
	client       *http.Client
}

// fitbitIntradayResponse 日内步数响应
type fitbitIntradayResponse struct {
	Intraday struct {
		Dataset []struct {
			Time  string  `json:"time"` // HH:MM:SS
			Value float64 `json:"value"`
		} `json:"dataset"`
	} `json:"activities-steps-intraday"`
}

// fitbitTokenResponse 令牌刷新响应
type fitbitTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// NewFitbitClient 创建 Fitbit 客户端
func NewFitbitClient(clientID, clientSecret string) *FitbitClient {
	return &FitbitClient{
		baseURL:      "https://api.fitbit.com/1",
		tokenURL:     "https://api.fitbit.com/oauth2/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetBaseURL 设置 API 基础地址（用于测试）
func (f *FitbitClient) SetBaseURL(baseURL string) {
	f.baseURL = baseURL
}

// SetTokenURL 设置令牌端点地址（用于测试）
func (f *FitbitClient) SetTokenURL(tokenURL string) {
	f.tokenURL = tokenURL
}

// Name 平台标识
func (f *FitbitClient) Name() string {
	return "fitbit"
}

// FetchSamples 逐天拉取5分钟粒度的日内步数
func (f *FitbitClient) FetchSamples(ctx context.Context, req *FetchRequest) ([]models.RawSample, error) {
	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("起始日期无效: %w", err)
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("结束日期无效: %w", err)
	}

	accessToken := req.AccessToken
	samples := make([]models.RawSample, 0)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dateStr := date.Format(models.DateLayout)
		endpoint := fmt.Sprintf("%s/user/-/activities/steps/date/%s/1d/5min.json", f.baseURL, dateStr)

		body, status, err := f.get(ctx, endpoint, accessToken)
		if err != nil {
			return nil, err
		}

		// 令牌过期时刷新一次并重试
		if status == http.StatusUnauthorized {
			accessToken, err = f.refreshAccessToken(ctx, req.RefreshToken)
			if err != nil {
				return nil, fmt.Errorf("刷新访问令牌失败: %w", err)
			}
			body, status, err = f.get(ctx, endpoint, accessToken)
			if err != nil {
				return nil, err
			}
		}

		if status != http.StatusOK {
			return nil, fmt.Errorf("Fitbit 接口返回状态 %d", status)
		}

		var resp fitbitIntradayResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("解析 Fitbit 响应失败: %w", err)
		}

		if len(resp.Intraday.Dataset) == 0 {
			slog.Warn("Fitbit 当天无日内数据", "date", dateStr, "user_id", req.UserID)
			continue
		}

		for _, entry := range resp.Intraday.Dataset {
			samples = append(samples, models.RawSample{
				Date:     dateStr,
				Interval: strings.TrimSuffix(entry.Time, ":00"), // HH:MM:SS -> HH:MM
				Steps:    entry.Value,
			})
		}
	}

	return samples, nil
}

// get 发送带 Bearer 令牌的 GET 请求
func (f *FitbitClient) get(ctx context.Context, endpoint, accessToken string) ([]byte, int, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return nil, 0, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("读取响应失败: %w", err)
	}
	return body, resp.StatusCode, nil
}

// refreshAccessToken 用 refresh_token 换发新的访问令牌
func (f *FitbitClient) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(f.clientID + ":" + f.clientSecret))
	httpReq.Header.Set("Authorization", "Basic "+auth)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("令牌端点返回状态 %d", resp.StatusCode)
	}

	var token fitbitTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("解析令牌响应失败: %w", err)
	}
	return token.AccessToken, nil
}
