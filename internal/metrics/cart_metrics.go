package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics содержит метрики операций корзины и каталога.
type CartMetrics struct {
	// Счётчики операций корзины
	itemsAdded      prometheus.Counter
	itemsRemoved    prometheus.Counter
	cartsCleared    prometheus.Counter
	quantityUpdates prometheus.Counter

	// Текущее наполнение корзины
	cartTotalItems prometheus.Gauge
	cartTotalPrice prometheus.Gauge

	// Запросы к каталогу
	catalogRequests *prometheus.HistogramVec
	catalogErrors   *prometheus.CounterVec

	// Персистентность снапшота
	snapshotWrites      prometheus.Counter
	snapshotWriteErrors prometheus.Counter
}

// NewCartMetrics создаёт и регистрирует метрики в default registerer.
func NewCartMetrics() *CartMetrics {
	return newCartMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCartMetricsWithRegisterer(registerer prometheus.Registerer) *CartMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CartMetrics{
		itemsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcart_items_added_total",
			Help: "Total number of add-item operations applied to the cart",
		}),
		itemsRemoved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcart_items_removed_total",
			Help: "Total number of remove-item operations applied to the cart",
		}),
		cartsCleared: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcart_cart_cleared_total",
			Help: "Total number of explicit cart clears",
		}),
		quantityUpdates: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcart_quantity_updates_total",
			Help: "Total number of quantity updates applied to the cart",
		}),
		cartTotalItems: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "shopcart_cart_total_items",
			Help: "Current total item count in the cart",
		}),
		cartTotalPrice: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "shopcart_cart_total_price",
			Help: "Current total price of the cart",
		}),
		catalogRequests: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "shopcart_catalog_request_duration_seconds",
			Help:    "Duration of catalog API requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		catalogErrors: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shopcart_catalog_request_errors_total",
			Help: "Total number of failed catalog API requests",
		}, []string{"operation"}),
		snapshotWrites: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcart_snapshot_writes_total",
			Help: "Total number of cart snapshot writes",
		}),
		snapshotWriteErrors: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shopcart_snapshot_write_errors_total",
			Help: "Total number of failed cart snapshot writes",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordItemAdded увеличивает счётчик добавлений.
func (m *CartMetrics) RecordItemAdded() {
	m.itemsAdded.Inc()
}

// RecordItemRemoved увеличивает счётчик удалений.
func (m *CartMetrics) RecordItemRemoved() {
	m.itemsRemoved.Inc()
}

// RecordCartCleared увеличивает счётчик очисток корзины.
func (m *CartMetrics) RecordCartCleared() {
	m.cartsCleared.Inc()
}

// RecordQuantityUpdate увеличивает счётчик обновлений количества.
func (m *CartMetrics) RecordQuantityUpdate() {
	m.quantityUpdates.Inc()
}

// SetCartTotals обновляет gauge-метрики текущего наполнения корзины.
func (m *CartMetrics) SetCartTotals(totalItems int, totalPrice float64) {
	m.cartTotalItems.Set(float64(totalItems))
	m.cartTotalPrice.Set(totalPrice)
}

// ObserveCatalogRequest записывает длительность запроса к каталогу.
func (m *CartMetrics) ObserveCatalogRequest(operation string, duration time.Duration) {
	m.catalogRequests.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCatalogError увеличивает счётчик ошибок каталога.
func (m *CartMetrics) RecordCatalogError(operation string) {
	m.catalogErrors.WithLabelValues(operation).Inc()
}

// RecordSnapshotWrite фиксирует запись снапшота.
func (m *CartMetrics) RecordSnapshotWrite(err error) {
	m.snapshotWrites.Inc()
	if err != nil {
		m.snapshotWriteErrors.Inc()
	}
}
