package kafka

import "time"

// Topics для Kafka
const (
	TopicCartEvents = "shopcart.cart.events"
)

// CartEvent — событие корзины, публикуемое наружу для аналитики и
// презентационных консьюмеров. Kind повторяет классификацию уведомлений.
type CartEvent struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	ProductID   int64     `json:"product_id,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
	PublishedAt time.Time `json:"published_at"`
}
