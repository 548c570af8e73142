package kafka

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// NotificationPublisher публикует уведомления корзины в Kafka topic —
// второй презентационный канал рядом с лог-синком.
type NotificationPublisher struct {
	producer *Producer
	topic    string
}

// NewNotificationPublisher создаёт Kafka-синк уведомлений.
func NewNotificationPublisher(producer *Producer, topic string) domain.NotificationSink {
	if topic == "" {
		topic = TopicCartEvents
	}
	return &NotificationPublisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *NotificationPublisher) Deliver(_ context.Context, n domain.Notification) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka notification publisher is not initialized")
	}

	// Партиционируем по товару, чтобы события одной позиции шли по порядку.
	key := strconv.FormatInt(n.ProductID, 10)
	if n.ProductID == 0 {
		key = n.ID
	}

	event := CartEvent{
		ID:          n.ID,
		Kind:        string(n.Kind),
		ProductID:   n.ProductID,
		Message:     n.Message,
		CreatedAt:   n.CreatedAt,
		PublishedAt: time.Now().UTC(),
	}

	return p.producer.PublishEvent(p.topic, key, event)
}

var _ domain.NotificationSink = (*NotificationPublisher)(nil)
