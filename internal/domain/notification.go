package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind классифицирует исходящие уведомления фасада корзины.
type NotificationKind string

const (
	NotificationItemAdded   NotificationKind = "item_added"
	NotificationItemUpdated NotificationKind = "item_updated"
	NotificationItemRemoved NotificationKind = "item_removed"
	NotificationCartCleared NotificationKind = "cart_cleared"
)

// Notification — исходящее подтверждение для презентационного слоя.
// Отправляется fire-and-forget после перехода состояния и никогда не
// влияет на сам переход.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	ProductID int64            `json:"product_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification создаёт уведомление с уникальным идентификатором.
func NewNotification(kind NotificationKind, productID int64, message string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
}
