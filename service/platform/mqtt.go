/*
 * @module service/platform/mqtt
 * @description MQTT 流式数据源，订阅设备实时推送的步数采样并按用户缓存
 * @architecture 发布订阅模式 - 连接 MQTT broker 并订阅步数主题
 * @documentReference ai_docs/platform_integration_req.md
 * @stateFlow 连接 broker -> 订阅主题 -> 接收消息 -> 按用户缓存采样 -> 分析时取出
 * @rules 支持自动重连；消息格式错误时记日志丢弃，不中断订阅
 * @dependencies github.com/eclipse/paho.mqtt.golang, encoding/json, sync
 * @refs interface.go, service/activity/activity_service.go
 */

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"activity-service/service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// StreamTopic 步数采样主题，最后一段为用户ID
const StreamTopic = "activity/steps/+"

// StreamMessage 设备推送的步数消息
type StreamMessage struct {
	UserID   string      `json:"user_id"`
	Date     string      `json:"date"`
	Interval interface{} `json:"interval"`
	Steps    interface{} `json:"steps"`
}

// StreamSource MQTT 流式数据源
type StreamSource struct {
	broker   string
	clientID string
	username string
	password string
	client   mqtt.Client
	mutex    sync.RWMutex
	buffers  map[string][]models.RawSample // userID -> 缓存的采样
}

// NewStreamSource 创建 MQTT 流式数据源
func NewStreamSource(broker, clientID, username, password string) *StreamSource {
	return &StreamSource{
		broker:   broker,
		clientID: clientID,
		username: username,
		password: password,
		buffers:  make(map[string][]models.RawSample),
	}
}

// Name 平台标识
func (s *StreamSource) Name() string {
	return "stream"
}

// Start 连接 broker 并订阅步数主题
func (s *StreamSource) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.broker).
		SetClientID(s.clientID).
		SetUsername(s.username).
		SetPassword(s.password).
		SetAutoReconnect(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(client mqtt.Client) {
			token := client.Subscribe(StreamTopic, 1, s.handleMessage)
			if token.Wait() && token.Error() != nil {
				slog.Error("订阅步数主题失败", "topic", StreamTopic, "error", token.Error())
				return
			}
			slog.Info("已订阅步数主题", "topic", StreamTopic)
		})

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("连接MQTT broker失败: %w", token.Error())
	}
	return nil
}

// Stop 断开连接
func (s *StreamSource) Stop() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}

// handleMessage 处理推送的步数消息
func (s *StreamSource) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var message StreamMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		slog.Warn("步数消息格式错误，丢弃", "topic", msg.Topic(), "error", err)
		return
	}
	if message.UserID == "" {
		slog.Warn("步数消息缺少用户ID，丢弃", "topic", msg.Topic())
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.buffers[message.UserID] = append(s.buffers[message.UserID], models.RawSample{
		Date:     message.Date,
		Interval: message.Interval,
		Steps:    message.Steps,
	})
}

// FetchSamples 取出该用户缓存的流式采样
// 范围过滤由规范化器完成
func (s *StreamSource) FetchSamples(ctx context.Context, req *FetchRequest) ([]models.RawSample, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	cached := s.buffers[req.UserID]
	samples := make([]models.RawSample, len(cached))
	copy(samples, cached)
	return samples, nil
}

// BufferedCount 该用户当前缓存的采样数量（用于测试和监控）
func (s *StreamSource) BufferedCount(userID string) int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.buffers[userID])
}
