package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/config"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisSearchCache memoizes item search results in redis. Invalidation bumps
// a generation counter instead of scanning for keys, so stale entries simply
// expire unused.
type RedisSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{client: client, ttl: ttl}
}

const searchGenerationKey = "item_search:generation"

func (c *RedisSearchCache) key(ctx context.Context, text string) (string, error) {
	gen, err := c.client.Get(ctx, searchGenerationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("item_search:%d:%s", gen, text), nil
}

func (c *RedisSearchCache) Get(ctx context.Context, text string) ([]models.Item, bool) {
	key, err := c.key(ctx, text)
	if err != nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var items []models.Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *RedisSearchCache) Set(ctx context.Context, text string, items []models.Item) {
	key, err := c.key(ctx, text)
	if err != nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisSearchCache) Invalidate(ctx context.Context) {
	_ = c.client.Incr(ctx, searchGenerationKey).Err()
}
