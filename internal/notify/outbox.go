package notify

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

const (
	defaultQueueSize = 64
	deliverTimeout   = 2 * time.Second
)

var (
	notificationsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopcart_notifications_published_total",
		Help: "Total number of notifications handed to the outbox grouped by result.",
	}, []string{"result"})
	notificationsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopcart_notifications_delivered_total",
		Help: "Total number of notification deliveries grouped by result.",
	}, []string{"result"})
	notificationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shopcart_notification_queue_depth",
		Help: "Current number of notifications waiting in the outbox queue.",
	})
)

// Outbox — исходящая очередь уведомлений фасада корзины. Публикация
// неблокирующая и fire-and-forget: переполнение очереди роняет
// уведомление с Warn-логом, но никогда не тормозит переход состояния.
// Один фоновый pump доставляет уведомления во все синки.
type Outbox struct {
	queue  chan domain.Notification
	sinks  []domain.NotificationSink
	logger *log.Entry
}

// Option настраивает Outbox.
type Option func(*Outbox)

// WithQueueSize задаёт ёмкость очереди.
func WithQueueSize(size int) Option {
	return func(o *Outbox) {
		if size > 0 {
			o.queue = make(chan domain.Notification, size)
		}
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(o *Outbox) {
		o.logger = logger
	}
}

// NewOutbox создаёт очередь уведомлений с указанными синками.
func NewOutbox(sinks []domain.NotificationSink, options ...Option) *Outbox {
	o := &Outbox{
		queue:  make(chan domain.Notification, defaultQueueSize),
		sinks:  sinks,
		logger: log.WithField("component", "notify-outbox"),
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// Publish ставит уведомление в очередь, не блокируясь. Возвращает false,
// если очередь переполнена и уведомление отброшено.
func (o *Outbox) Publish(n domain.Notification) bool {
	select {
	case o.queue <- n:
		notificationsPublished.WithLabelValues("enqueued").Inc()
		notificationQueueDepth.Set(float64(len(o.queue)))
		return true
	default:
		notificationsPublished.WithLabelValues("dropped").Inc()
		o.logger.WithFields(log.Fields{
			"kind":    n.Kind,
			"message": n.Message,
		}).Warn("notification queue full, dropping notification")
		return false
	}
}

// Run запускает pump до отмены контекста. Оставшиеся в очереди
// уведомления при остановке не доставляются: они fire-and-forget.
func (o *Outbox) Run(ctx context.Context) {
	o.logger.Info("notification pump started")
	for {
		select {
		case <-ctx.Done():
			o.logger.Info("notification pump stopped")
			return
		case n := <-o.queue:
			notificationQueueDepth.Set(float64(len(o.queue)))
			o.deliver(n)
		}
	}
}

func (o *Outbox) deliver(n domain.Notification) {
	for _, sink := range o.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		err := sink.Deliver(ctx, n)
		cancel()

		if err != nil {
			notificationsDelivered.WithLabelValues("error").Inc()
			o.logger.WithError(err).WithField("kind", n.Kind).Warn("notification delivery failed")
			continue
		}
		notificationsDelivered.WithLabelValues("ok").Inc()
	}
}
