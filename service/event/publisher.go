/*
 * @module service/event/publisher
 * @description 分析完成事件发布器，向 Kafka 主题推送分析结果摘要供下游仪表盘消费
 * @architecture 适配器模式 - 封装 kafka-go 生产者
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 分析完成 -> 组装事件 -> 写入 Kafka 主题
 * @rules 事件发布为尽力而为，失败由调用方记日志，不影响分析结果返回
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/activity/activity_service.go
 */

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"activity-service/service/models"

	"github.com/segmentio/kafka-go"
)

// DefaultTopic 分析完成事件的默认主题
const DefaultTopic = "activity-analysis-completed"

// AnalysisCompletedEvent 分析完成事件载荷
type AnalysisCompletedEvent struct {
	RecordID         string    `json:"record_id"`
	UserID           string    `json:"user_id"`
	Platform         string    `json:"platform"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	DataCompleteness float64   `json:"data_completeness"`
	CompletedAt      time.Time `json:"completed_at"`
}

// Publisher Kafka 事件发布器
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher 创建事件发布器
func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// PublishAnalysisCompleted 发布分析完成事件，以用户ID为分区键
func (p *Publisher) PublishAnalysisCompleted(ctx context.Context, record *models.AnalysisRecord) error {
	event := AnalysisCompletedEvent{
		RecordID:         record.ID,
		UserID:           record.UserID,
		Platform:         record.Platform,
		StartDate:        record.StartDate,
		EndDate:          record.EndDate,
		DataCompleteness: record.DataCompleteness,
		CompletedAt:      time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(record.UserID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("写入Kafka失败: %w", err)
	}
	return nil
}

// Close 关闭底层生产者
func (p *Publisher) Close() error {
	return p.writer.Close()
}
