// Package cache implements the category tree cache on Redis, with an
// in-memory fallback for single-instance and test deployments.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const treeKey = "catalog:category:tree"

var _ catalogapp.TreeCache = (*RedisTreeCache)(nil)

// RedisTreeCache caches the rendered category tree in Redis so every
// instance sees an invalidation immediately.
type RedisTreeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient dials Redis from configuration and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisTreeCache creates a tree cache on an existing Redis client
func NewRedisTreeCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTreeCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisTreeCache{client: client, ttl: ttl, logger: logger}
}

// GetTree returns the cached tree, if present. Cache failures read as a
// miss; the caller rebuilds from the database.
func (c *RedisTreeCache) GetTree(ctx context.Context) ([]catalogapp.CategoryTreeNode, bool) {
	payload, err := c.client.Get(ctx, treeKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Category tree cache read failed", zap.Error(err))
		return nil, false
	}

	var tree []catalogapp.CategoryTreeNode
	if err := json.Unmarshal(payload, &tree); err != nil {
		c.logger.Warn("Category tree cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return tree, true
}

// SetTree stores the rendered tree with the configured TTL
func (c *RedisTreeCache) SetTree(ctx context.Context, tree []catalogapp.CategoryTreeNode) {
	payload, err := json.Marshal(tree)
	if err != nil {
		c.logger.Warn("Failed to encode category tree", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, treeKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Category tree cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached tree
func (c *RedisTreeCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, treeKey).Err(); err != nil {
		c.logger.Warn("Category tree cache invalidation failed", zap.Error(err))
	}
}

var _ catalogapp.TreeCache = (*InMemoryTreeCache)(nil)

// InMemoryTreeCache is a single-process tree cache used when Redis is not
// configured
type InMemoryTreeCache struct {
	mu        sync.RWMutex
	tree      []catalogapp.CategoryTreeNode
	hasTree   bool
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryTreeCache creates an in-memory tree cache
func NewInMemoryTreeCache(ttl time.Duration) *InMemoryTreeCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &InMemoryTreeCache{ttl: ttl}
}

// GetTree returns the cached tree while the entry is live
func (c *InMemoryTreeCache) GetTree(_ context.Context) ([]catalogapp.CategoryTreeNode, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasTree || time.Now().After(c.expiresAt) {
		return nil, false
	}
	return c.tree, true
}

// SetTree stores the rendered tree
func (c *InMemoryTreeCache) SetTree(_ context.Context, tree []catalogapp.CategoryTreeNode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree = tree
	c.hasTree = true
	c.expiresAt = time.Now().Add(c.ttl)
}

// Invalidate drops the cached tree
func (c *InMemoryTreeCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tree = nil
	c.hasTree = false
}
