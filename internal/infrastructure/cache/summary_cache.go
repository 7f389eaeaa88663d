// Package cache provides Redis-backed and in-memory caches for computed
// read models.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/adminhub/backend/internal/application/dashboard"
)

const summaryKeyPrefix = "dashboard:summary:"

// RedisSummaryCache stores dashboard summaries in Redis so every instance
// behind a load balancer shares the same snapshot.
type RedisSummaryCache struct {
	client *redis.Client
}

// RedisSummaryCacheConfig holds Redis connection settings
type RedisSummaryCacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSummaryCache connects to Redis and verifies the connection
func NewRedisSummaryCache(cfg RedisSummaryCacheConfig) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSummaryCache{client: client}, nil
}

// NewRedisSummaryCacheWithClient wraps an existing client, useful when the
// connection is shared with other components
func NewRedisSummaryCacheWithClient(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{client: client}
}

// Get returns the cached summary for the tenant, ok=false on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (*dashboard.Summary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKeyPrefix+tenantID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read summary cache: %w", err)
	}

	var summary dashboard.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &summary, true, nil
}

// Set stores the summary with the given TTL
func (c *RedisSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary *dashboard.Summary, ttl time.Duration) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKeyPrefix+tenantID.String(), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

// InMemorySummaryCache is a process-local summary cache for development and
// tests. Entries expire lazily on read.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]summaryEntry
}

type summaryEntry struct {
	summary   dashboard.Summary
	expiresAt time.Time
}

// NewInMemorySummaryCache creates an empty in-memory cache
func NewInMemorySummaryCache() *InMemorySummaryCache {
	return &InMemorySummaryCache{entries: make(map[uuid.UUID]summaryEntry)}
}

// Get returns the cached summary for the tenant, ok=false on a miss
func (c *InMemorySummaryCache) Get(_ context.Context, tenantID uuid.UUID) (*dashboard.Summary, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[tenantID]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, tenantID)
		c.mu.Unlock()
		return nil, false, nil
	}

	summary := entry.summary
	return &summary, true, nil
}

// Set stores the summary with the given TTL
func (c *InMemorySummaryCache) Set(_ context.Context, tenantID uuid.UUID, summary *dashboard.Summary, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = summaryEntry{
		summary:   *summary,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}
