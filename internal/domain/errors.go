package domain

import "errors"

var (
	// ErrSnapshotNotFound возвращается хранилищем, если снапшота по ключу нет.
	ErrSnapshotNotFound = errors.New("cart snapshot not found")
	// ErrProductNotFound возвращается каталогом при 404 по идентификатору товара.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct сигнализирует о записи каталога с некорректной формой.
	ErrInvalidProduct = errors.New("product record has invalid shape")
)

// IsSnapshotMissing проверяет, является ли ошибка отсутствием снапшота.
func IsSnapshotMissing(err error) bool {
	return errors.Is(err, ErrSnapshotNotFound)
}
