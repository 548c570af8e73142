package browse

// DefaultPageSize — начальный размер страницы витрины.
const DefaultPageSize = 3

// Window — растущий префикс над динамическим списком. Счётчик
// показанных элементов монотонно растёт через LoadMore и сбрасывается
// к размеру страницы при каждой смене списка: сменилась релевантность,
// а не длина, поэтому сброс обязателен даже при совпадении длин.
// Тип не потокобезопасен: владелец сериализует доступ сам.
type Window[T any] struct {
	pageSize    int
	itemsToShow int
	items       []T
}

// NewWindow создаёт окно пагинации c заданным размером страницы.
func NewWindow[T any](pageSize int) *Window[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Window[T]{
		pageSize:    pageSize,
		itemsToShow: pageSize,
	}
}

// SetItems заменяет подлежащий список и сбрасывает окно к первой странице.
func (w *Window[T]) SetItems(items []T) {
	w.items = items
	w.itemsToShow = w.pageSize
}

// Current возвращает текущий видимый префикс (копию).
func (w *Window[T]) Current() []T {
	n := w.itemsToShow
	if n > len(w.items) {
		n = len(w.items)
	}
	current := make([]T, n)
	copy(current, w.items[:n])
	return current
}

// HasMore сообщает, остались ли элементы за пределами окна.
func (w *Window[T]) HasMore() bool {
	return w.itemsToShow < len(w.items)
}

// LoadMore расширяет окно на размер страницы.
func (w *Window[T]) LoadMore() {
	w.itemsToShow += w.pageSize
}

// Reset возвращает окно к первой странице без смены списка.
func (w *Window[T]) Reset() {
	w.itemsToShow = w.pageSize
}

// Total возвращает длину подлежащего списка.
func (w *Window[T]) Total() int {
	return len(w.items)
}

// Shown возвращает число элементов в текущем префиксе.
func (w *Window[T]) Shown() int {
	if w.itemsToShow > len(w.items) {
		return len(w.items)
	}
	return w.itemsToShow
}
