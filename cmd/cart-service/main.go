package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopcart/internal/app"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfig формирует конфигурацию приложения, позволяя переопределить настройки через переменные окружения.
func readConfig() app.Config {
	cfg := app.DefaultConfig()
	if v := os.Getenv("SHOPCART_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SHOPCART_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("SHOPCART_CATALOG_URL"); v != "" {
		cfg.CatalogBaseURL = v
	}
	if v := os.Getenv("SHOPCART_STORAGE"); v != "" {
		cfg.StorageBackend = v
	}
	if v := os.Getenv("SHOPCART_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("SHOPCART_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("SHOPCART_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("SHOPCART_SNAPSHOT_KEY"); v != "" {
		cfg.SnapshotKey = v
	}
	if v := os.Getenv("SHOPCART_PAGE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = size
		}
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"storage":      cfg.StorageBackend,
		"catalog":      cfg.CatalogBaseURL,
	}).Info("запускаем CartService")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("CartService остановлен")
}
