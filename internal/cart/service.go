package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
)

// DefaultSnapshotKey — ключ снапшота корзины в хранилище.
const DefaultSnapshotKey = "shopping-cart"

// NotificationPublisher — неблокирующая публикация уведомления.
// Реализуется notify.Outbox; интерфейс здесь, у потребителя.
type NotificationPublisher interface {
	Publish(n domain.Notification) bool
}

// Service — фасад корзины: единственный владелец состояния. Каждая
// мутация — синхронный переход через редьюсер плюс зеркалирование
// снапшота в хранилище под одной блокировкой; никакие два перехода не
// перемежаются. Подтверждения уходят асинхронно и на переход не влияют.
type Service struct {
	mu    sync.Mutex
	state domain.CartState

	store     domain.SnapshotStore
	publisher NotificationPublisher
	metrics   *metrics.CartMetrics
	logger    *log.Entry
	key       string

	// snapshotSeen отражает, есть ли снапшот в хранилище. Пока корзина
	// пуста и ни разу не персистилась, писать нечего; после первой
	// записи зеркалируется каждая мутация, включая пустой список.
	snapshotSeen bool
}

// Option настраивает Service.
type Option func(*Service)

// WithSnapshotKey задаёт ключ снапшота.
func WithSnapshotKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPublisher задаёт канал уведомлений.
func WithPublisher(publisher NotificationPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithMetrics задаёт метрики операций корзины.
func WithMetrics(m *metrics.CartMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService создаёт фасад и гидратирует состояние из хранилища.
// Битый или отсутствующий снапшот — это пустая корзина, не ошибка:
// чтение fail-open, наружу ничего не пробрасывается.
func NewService(ctx context.Context, store domain.SnapshotStore, options ...Option) *Service {
	s := &Service{
		state:  domain.EmptyCart(),
		store:  store,
		logger: log.WithField("component", "cart-service"),
		key:    DefaultSnapshotKey,
	}
	for _, option := range options {
		option(s)
	}

	s.hydrate(ctx)
	return s
}

func (s *Service) hydrate(ctx context.Context) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !domain.IsSnapshotMissing(err) {
			s.logger.WithError(err).Warn("failed to read cart snapshot, starting empty")
		}
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Битый снапшот читается как отсутствующий — в том числе для
		// последующей проверки "снапшот уже существовал".
		s.logger.WithError(err).Warn("corrupt cart snapshot, starting empty")
		return
	}

	s.state = domain.Reduce(s.state, domain.LoadCart{Items: items})
	s.snapshotSeen = true
	s.updateGauges()
	s.logger.WithField("items", len(s.state.Items)).Info("cart hydrated from snapshot")
}

// AddItem добавляет товар в корзину. Выбор подтверждения ("added" или
// "updated quantity") делается по состоянию ДО мутации.
func (s *Service) AddItem(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	existed := s.state.Contains(product.ID)
	s.state = domain.Reduce(s.state, domain.AddItem{Product: product})
	s.persistLocked(ctx)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordItemAdded()
	}
	if existed {
		s.notify(domain.NotificationItemUpdated, product.ID, fmt.Sprintf("Updated %s quantity", product.Title))
	} else {
		s.notify(domain.NotificationItemAdded, product.ID, fmt.Sprintf("Added %s to cart", product.Title))
	}
}

// AddMultipleItems добавляет n единиц товара; n < 1 редьюсер
// нормализует в no-op. Подтверждение для массового добавления не шлётся.
func (s *Service) AddMultipleItems(ctx context.Context, product domain.Product, quantity int) {
	s.mu.Lock()
	s.state = domain.Reduce(s.state, domain.AddMultipleItems{Product: product, Quantity: quantity})
	s.persistLocked(ctx)
	s.mu.Unlock()

	if s.metrics != nil && quantity >= 1 {
		s.metrics.RecordItemAdded()
	}
}

// RemoveItem удаляет позицию. Название для подтверждения берётся из
// состояния до мутации; для отсутствующей позиции подтверждения нет.
func (s *Service) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	removed, existed := s.state.Item(productID)
	s.state = domain.Reduce(s.state, domain.RemoveItem{ProductID: productID})
	s.persistLocked(ctx)
	s.mu.Unlock()

	if !existed {
		return
	}
	if s.metrics != nil {
		s.metrics.RecordItemRemoved()
	}
	s.notify(domain.NotificationItemRemoved, productID, fmt.Sprintf("Removed %s from cart", removed.Title))
}

// UpdateQuantity выставляет количество позиции; количество <= 0
// эквивалентно удалению. Подтверждение для этой операции не шлётся.
func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	s.state = domain.Reduce(s.state, domain.UpdateQuantity{ProductID: productID, Quantity: quantity})
	s.persistLocked(ctx)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordQuantityUpdate()
	}
}

// ClearCart сбрасывает корзину и удаляет снапшот из хранилища, а не
// пишет пустой массив.
func (s *Service) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.state = domain.Reduce(s.state, domain.ClearCart{})
	if err := s.store.Delete(ctx, s.key); err != nil {
		s.logger.WithError(err).Warn("failed to delete cart snapshot")
	} else {
		s.snapshotSeen = false
	}
	s.updateGauges()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordCartCleared()
	}
	s.notify(domain.NotificationCartCleared, 0, "Cart cleared")
}

// IsInCart сообщает, есть ли товар в корзине.
func (s *Service) IsInCart(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Contains(productID)
}

// ItemQuantity возвращает текущее количество по товару или 0.
func (s *Service) ItemQuantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Quantity(productID)
}

// State возвращает копию текущего состояния корзины.
func (s *Service) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// persistLocked зеркалирует позиции в хранилище. Вызывается под s.mu.
// Пишем, если корзина непуста ЛИБО снапшот уже существовал: первый же
// переход из пустой неперсистентной корзины в непустую всегда пишется,
// а удаление последней позиции поверх существующего снапшота оставляет
// в хранилище пустой массив. Ошибка записи логируется и не
// пробрасывается: состояние в памяти — источник истины до конца сессии.
func (s *Service) persistLocked(ctx context.Context) {
	s.updateGauges()

	if len(s.state.Items) == 0 && !s.snapshotSeen {
		return
	}

	items := s.state.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.WithError(err).Error("failed to marshal cart snapshot")
		return
	}

	err = s.store.Set(ctx, s.key, payload)
	if s.metrics != nil {
		s.metrics.RecordSnapshotWrite(err)
	}
	if err != nil {
		s.logger.WithError(err).Warn("failed to write cart snapshot")
		return
	}
	s.snapshotSeen = true
}

func (s *Service) updateGauges() {
	if s.metrics != nil {
		s.metrics.SetCartTotals(s.state.TotalItems, s.state.TotalPrice)
	}
}

func (s *Service) notify(kind domain.NotificationKind, productID int64, message string) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.NewNotification(kind, productID, message))
}
