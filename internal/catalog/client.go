package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/metrics"
)

// DefaultBaseURL — адрес публичного каталога по умолчанию.
const DefaultBaseURL = "https://fakestoreapi.com"

const (
	breakerConsecutiveFailures = 5
	breakerOpenTimeout         = 30 * time.Second
)

// fetchResult — сырой ответ каталога до разбора статуса. Breaker считает
// отказом только транспортные сбои: 4xx от каталога не должны его открывать.
type fetchResult struct {
	statusCode int
	statusText string
	body       []byte
}

// Client — HTTP-клиент удалённого каталога товаров. Все методы
// возвращают ошибку значением; исключений через границу слоя нет.
// Ретраев и таймаутов на уровне клиента нет: отмена — через context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*fetchResult]
	metrics    *metrics.CartMetrics
	logger     *log.Entry
}

// NewClient создаёт клиент каталога. metrics может быть nil (в тестах).
func NewClient(baseURL string, m *metrics.CartMetrics, logger *log.Entry) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.WithField("component", "catalog-client")
	}

	breaker := gobreaker.NewCircuitBreaker[*fetchResult](gobreaker.Settings{
		Name:    "catalog",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("catalog circuit breaker state changed")
		},
	})

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
		metrics: m,
		logger:  logger,
	}
}

// Products загружает весь каталог одним запросом.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "products", "/products")
	if err != nil {
		return nil, err
	}
	return c.decodeProducts("products", body)
}

// Product загружает одну запись каталога по идентификатору.
func (c *Client) Product(ctx context.Context, id int64) (domain.Product, error) {
	body, err := c.get(ctx, "product", fmt.Sprintf("/products/%d", id))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return domain.Product{}, fmt.Errorf("%w: id=%d", domain.ErrProductNotFound, id)
		}
		return domain.Product{}, err
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return domain.Product{}, fmt.Errorf("decode product response: %w", err)
	}
	if !product.Valid() {
		return domain.Product{}, fmt.Errorf("%w: id=%d", domain.ErrInvalidProduct, id)
	}
	return product, nil
}

// ProductsByCategory загружает товары одной категории.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	body, err := c.get(ctx, "products_by_category", "/products/category/"+url.PathEscape(category))
	if err != nil {
		return nil, err
	}
	return c.decodeProducts("products_by_category", body)
}

// Categories загружает список категорий каталога.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "categories", "/products/categories")
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("decode categories response: %w", err)
	}
	return categories, nil
}

// Ping дёргает каталог для health check.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "ping", "/products/categories")
	return err
}

func (c *Client) get(ctx context.Context, operation, path string) ([]byte, error) {
	start := time.Now()
	result, err := c.breaker.Execute(func() (*fetchResult, error) {
		return c.doGet(ctx, path)
	})
	if c.metrics != nil {
		c.metrics.ObserveCatalogRequest(operation, time.Since(start))
	}

	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordCatalogError(operation)
		}
		c.logger.WithError(err).WithField("operation", operation).Warn("catalog request failed")
		return nil, newTransportError(err)
	}

	if result.statusCode < 200 || result.statusCode > 299 {
		if c.metrics != nil {
			c.metrics.RecordCatalogError(operation)
		}
		return nil, newStatusError(result.statusCode, result.statusText)
	}

	return result.body, nil
}

func (c *Client) doGet(ctx context.Context, path string) (*fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	return &fetchResult{
		statusCode: resp.StatusCode,
		statusText: http.StatusText(resp.StatusCode),
		body:       body,
	}, nil
}

// decodeProducts разбирает список товаров, отбрасывая записи с битой формой.
func (c *Client) decodeProducts(operation string, body []byte) ([]domain.Product, error) {
	var raw []domain.Product
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	products := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		if !p.Valid() {
			c.logger.WithFields(log.Fields{
				"operation":  operation,
				"product_id": p.ID,
			}).Warn("skipping catalog record with invalid shape")
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
