package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/logging"
)

const (
	receiptKeyPrefix = "receipt:"
	eventKeyPrefix   = "webhook_event:"

	defaultReceiptTTL = time.Hour
	eventDedupTTL     = 24 * time.Hour
)

// RedisReceiptCache stores rendered receipts and remembers processed
// webhook event IDs. It is a cache with TTLs, not a system of record:
// a miss is always recoverable by the caller.
type RedisReceiptCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewRedisReceiptCache creates a Redis-backed receipt cache.
func NewRedisReceiptCache(cfg config.RedisConfig) *RedisReceiptCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultReceiptTTL
	}

	return &RedisReceiptCache{
		client: client,
		ttl:    ttl,
		logger: logging.New("receipt-cache"),
	}
}

// SetReceipt caches the rendered receipt HTML for an order.
func (c *RedisReceiptCache) SetReceipt(ctx context.Context, orderID, html string) error {
	key := receiptKeyPrefix + orderID

	if err := c.client.Set(ctx, key, html, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return err
	}

	c.logger.Debug("Receipt cached", logging.Fields{
		"order_id": orderID,
		"ttl":      c.ttl.String(),
	})
	return nil
}

// GetReceipt retrieves a cached receipt. A miss returns "" and no error.
func (c *RedisReceiptCache) GetReceipt(ctx context.Context, orderID string) (string, error) {
	key := receiptKeyPrefix + orderID

	html, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", logging.Fields{"order_id": orderID})
		return "", nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return "", err
	}

	c.logger.Debug("Cache hit", logging.Fields{"order_id": orderID})
	return html, nil
}

// MarkEventProcessed records a webhook event ID and reports whether
// this is the first time it was seen. Webhook deliveries are at-least-
// once, so the service uses this to drop duplicates.
func (c *RedisReceiptCache) MarkEventProcessed(ctx context.Context, eventID string) (bool, error) {
	key := eventKeyPrefix + eventID

	first, err := c.client.SetNX(ctx, key, "1", eventDedupTTL).Result()
	if err != nil {
		c.logger.Error("Event dedup error", logging.Fields{
			"event_id": eventID,
			"error":    err.Error(),
		})
		return false, err
	}
	return first, nil
}

// Close releases the underlying Redis connection.
func (c *RedisReceiptCache) Close() error {
	return c.client.Close()
}

// MockReceiptCache is an in-memory cache for tests.
type MockReceiptCache struct {
	Receipts map[string]string
	Seen     map[string]bool
}

// NewMockReceiptCache creates an empty in-memory cache.
func NewMockReceiptCache() *MockReceiptCache {
	return &MockReceiptCache{
		Receipts: make(map[string]string),
		Seen:     make(map[string]bool),
	}
}

func (m *MockReceiptCache) SetReceipt(ctx context.Context, orderID, html string) error {
	m.Receipts[orderID] = html
	return nil
}

func (m *MockReceiptCache) GetReceipt(ctx context.Context, orderID string) (string, error) {
	return m.Receipts[orderID], nil
}

func (m *MockReceiptCache) MarkEventProcessed(ctx context.Context, eventID string) (bool, error) {
	if m.Seen[eventID] {
		return false, nil
	}
	m.Seen[eventID] = true
	return true, nil
}
