package domain

import "context"

// SnapshotStore описывает требования к персистентному key-value
// хранилищу снапшота корзины. Субстрат хранит байтовые строки по
// строковому ключу с семантикой last-write-wins; формат значения
// (JSON-массив позиций) — забота моста персистентности, не хранилища.
type SnapshotStore interface {
	// Get возвращает снапшот по ключу или ErrSnapshotNotFound, если его нет.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set перезаписывает снапшот по ключу.
	Set(ctx context.Context, key string, value []byte) error
	// Delete удаляет снапшот; отсутствие ключа не считается ошибкой.
	Delete(ctx context.Context, key string) error
	// Ping проверяет доступность хранилища (для health checks).
	Ping(ctx context.Context) error
}

// NotificationSink доставляет уведомления в презентационный слой.
// Доставка fire-and-forget: ошибка синка логируется и не влияет на
// состояние корзины.
type NotificationSink interface {
	Deliver(ctx context.Context, n Notification) error
}
