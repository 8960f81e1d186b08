/*
 * @module service/platform/interface
 * @description 健身平台数据源统一接口与注册表，屏蔽各平台的协议差异
 * @architecture 适配器模式 - 每个平台实现统一的采样拉取接口
 * @documentReference ai_docs/platform_integration_req.md
 * @stateFlow 注册平台客户端 -> 按名称解析 -> 拉取原始采样 -> 交给分析核心
 * @rules 平台客户端只负责把数据转成统一的原始采样格式，不做任何统计计算；
 *        拉取节奏与限流由各平台客户端自行约束，不属于分析核心
 * @dependencies context, sync
 * @refs fitbit.go, garmin.go, apple_health.go, mqtt.go
 */

package platform

import (
	"context"
	"fmt"
	"sync"

	"activity-service/service/models"
)

// FetchRequest 平台数据拉取请求
type FetchRequest struct {
	UserID       string
	StartDate    string // YYYY-MM-DD，含端点
	EndDate      string // YYYY-MM-DD，含端点
	AccessToken  string
	RefreshToken string
}

// Client 健身平台数据源接口
type Client interface {
	// Name 平台标识（fitbit, garmin, apple, stream）
	Name() string
	// FetchSamples 拉取范围内的原始采样，转换为统一格式
	FetchSamples(ctx context.Context, req *FetchRequest) ([]models.RawSample, error)
}

// Registry 平台客户端注册表
type Registry struct {
	mutex   sync.RWMutex
	clients map[string]Client
}

// NewRegistry 创建平台客户端注册表
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Register 注册平台客户端，重复注册时覆盖
func (r *Registry) Register(client Client) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.clients[client.Name()] = client
}

// Get 按平台名称解析客户端
func (r *Registry) Get(name string) (Client, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	client, ok := r.clients[name]
	if !ok {
		return nil, fmt.Errorf("不支持的平台: %s", name)
	}
	return client, nil
}

// Names 已注册的平台名称列表
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	return names
}
