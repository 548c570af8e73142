package browse

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// ProductSource — источник списка товаров для витрины.
type ProductSource interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Page — видимое состояние витрины.
type Page struct {
	Items   []domain.Product `json:"items"`
	Query   string           `json:"query"`
	Shown   int              `json:"shown"`
	Total   int              `json:"total"`
	HasMore bool             `json:"has_more"`
}

// Session — состояние просмотра витрины: загруженный каталог, поисковый
// запрос с debounce и окно пагинации. Один владелец, мутации под мьютексом.
type Session struct {
	mu        sync.Mutex
	source    ProductSource
	window    *Window[domain.Product]
	debouncer *Debouncer
	logger    *log.Entry

	products []domain.Product
	query    string
}

// SessionOption настраивает Session.
type SessionOption func(*Session)

// WithPageSize задаёт размер страницы витрины.
func WithPageSize(size int) SessionOption {
	return func(s *Session) {
		s.window = NewWindow[domain.Product](size)
	}
}

// WithDebounceDelay задаёт паузу применения поискового запроса.
func WithDebounceDelay(delay time.Duration) SessionOption {
	return func(s *Session) {
		s.debouncer = NewDebouncer(delay)
	}
}

// WithSessionLogger задаёт logger.
func WithSessionLogger(logger *log.Entry) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession создаёт пустую сессию витрины; каталог загружается Refresh-ом.
func NewSession(source ProductSource, options ...SessionOption) *Session {
	s := &Session{
		source:    source,
		window:    NewWindow[domain.Product](DefaultPageSize),
		debouncer: NewDebouncer(DefaultDebounceDelay),
		logger:    log.WithField("component", "browse-session"),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Refresh перечитывает каталог и пересобирает отфильтрованный список.
// Ошибка каталога возвращается наружу: по ней презентационный слой
// рисует retry, прежние данные витрины не затираются.
func (s *Session) Refresh(ctx context.Context) error {
	products, err := s.source.Products(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("catalog refresh failed")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.applyFilterLocked()
	s.logger.WithField("products", len(products)).Info("catalog refreshed")
	return nil
}

// SetQuery запоминает поисковый запрос и применяет фильтр после паузы
// тишины: быстрый набор текста не дёргает пересборку на каждый символ.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()

	s.debouncer.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.applyFilterLocked()
	})
}

// applyFilterLocked пересобирает результат поиска. Новый результат —
// новая идентичность списка, окно сбрасывается к первой странице,
// даже если длина совпала с прежней.
func (s *Session) applyFilterLocked() {
	s.window.SetItems(catalog.FilterProducts(s.products, s.query, ""))
}

// LoadMore расширяет окно витрины на одну страницу.
func (s *Session) LoadMore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.LoadMore()
}

// Page возвращает текущую страницу витрины.
func (s *Session) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Page{
		Items:   s.window.Current(),
		Query:   s.query,
		Shown:   s.window.Shown(),
		Total:   s.window.Total(),
		HasMore: s.window.HasMore(),
	}
}
