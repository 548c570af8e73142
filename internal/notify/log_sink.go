package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// LogSink пишет пользовательские подтверждения в структурированный лог.
// Это дефолтный презентационный слой сервиса: UI-тостов у процесса нет.
type LogSink struct {
	logger *log.Entry
}

// NewLogSink создаёт лог-синк уведомлений.
func NewLogSink(logger *log.Entry) *LogSink {
	if logger == nil {
		logger = log.WithField("component", "notify-log-sink")
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(_ context.Context, n domain.Notification) error {
	s.logger.WithFields(log.Fields{
		"notification_id": n.ID,
		"kind":            n.Kind,
		"product_id":      n.ProductID,
	}).Info(n.Message)
	return nil
}

var _ domain.NotificationSink = (*LogSink)(nil)
