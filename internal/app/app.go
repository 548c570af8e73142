package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vladislavdragonenkov/shopcart/internal/browse"
	"github.com/vladislavdragonenkov/shopcart/internal/cart"
	"github.com/vladislavdragonenkov/shopcart/internal/catalog"
	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/shopcart/internal/health"
	"github.com/vladislavdragonenkov/shopcart/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
	"github.com/vladislavdragonenkov/shopcart/internal/notify"
	httpsvc "github.com/vladislavdragonenkov/shopcart/internal/service/http"
	"github.com/vladislavdragonenkov/shopcart/internal/version"
)

const healthCheckTimeout = 2 * time.Second

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	if err := cfg.Validate(); err != nil {
		return err
	}

	cartMetrics := metrics.NewCartMetrics()

	store, closeStore, err := newSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Kafka опционален: без брокеров события корзины остаются в логах.
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	sinks := []domain.NotificationSink{
		notify.NewLogSink(logger.WithField("component", "notifications")),
	}
	if kafkaProducer != nil {
		sinks = append(sinks, kafka.NewNotificationPublisher(kafkaProducer, kafka.TopicCartEvents))
	}

	outbox := notify.NewOutbox(sinks, notify.WithLogger(logger.WithField("component", "outbox")))
	go outbox.Run(ctx)

	cartService := cart.NewService(ctx, store,
		cart.WithSnapshotKey(cfg.SnapshotKey),
		cart.WithPublisher(outbox),
		cart.WithMetrics(cartMetrics),
		cart.WithLogger(logger.WithField("component", "cart-service")),
	)

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cartMetrics, logger.WithField("component", "catalog"))

	session := browse.NewSession(catalogClient,
		browse.WithPageSize(cfg.PageSize),
		browse.WithSessionLogger(logger.WithField("component", "browse-session")),
	)
	// Стартовая загрузка витрины best-effort: при ошибке сервис
	// поднимается, каталог дотянется через /browse/refresh.
	if err := session.Refresh(ctx); err != nil {
		logger.WithError(err).Warn("initial catalog load failed")
	}

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
		checkCtx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return store.Ping(checkCtx)
	}))
	healthHandler.RegisterChecker("catalog", healthcheck.NewSimpleChecker("catalog", func() error {
		checkCtx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return catalogClient.Ping(checkCtx)
	}))

	router := httpsvc.NewRouter(
		httpsvc.NewCartHandler(cartService, logger.WithField("layer", "http")),
		httpsvc.NewCatalogHandler(catalogClient, logger.WithField("layer", "http")),
		httpsvc.NewBrowseHandler(session, logger.WithField("layer", "http")),
		healthHandler,
	)

	apiSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: otelhttp.NewHandler(router, "shopcart-http"),
	}
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP сервер слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
