package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Vladislav-Onoprienko/shareit/internal/domain"
	"github.com/Vladislav-Onoprienko/shareit/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// FailoverSearchCache prefers the redis cache and degrades to the in-memory
// one when redis stops answering, probing for recovery once a minute.
type FailoverSearchCache struct {
	client    *redis.Client
	primary   domain.SearchCache
	fallback  domain.SearchCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverSearchCache(client *redis.Client, primary, fallback domain.SearchCache, logger *zerolog.Logger) *FailoverSearchCache {
	return &FailoverSearchCache{
		client:   client,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (c *FailoverSearchCache) active(ctx context.Context) domain.SearchCache {
	if !c.isDown.Load() {
		return c.primary
	}

	// Probe for recovery at most once a minute.
	last := time.Unix(c.lastCheck.Load(), 0)
	if time.Since(last) > time.Minute {
		c.lastCheck.Store(time.Now().Unix())
		if err := c.client.Ping(ctx).Err(); err == nil {
			c.logger.Info().Msg("redis recovered, switching search cache back")
			c.isDown.Store(false)
			return c.primary
		}
	}
	return c.fallback
}

func (c *FailoverSearchCache) markDown(err error) {
	if c.isDown.CompareAndSwap(false, true) {
		c.logger.Error().Err(err).Msg("redis search cache failed, falling back to memory")
		c.lastCheck.Store(time.Now().Unix())
	}
}

func (c *FailoverSearchCache) Get(ctx context.Context, text string) ([]models.Item, bool) {
	cache := c.active(ctx)
	if cache == c.primary {
		if err := c.client.Ping(ctx).Err(); err != nil {
			c.markDown(err)
			return c.fallback.Get(ctx, text)
		}
	}
	return cache.Get(ctx, text)
}

func (c *FailoverSearchCache) Set(ctx context.Context, text string, items []models.Item) {
	c.active(ctx).Set(ctx, text, items)
}

func (c *FailoverSearchCache) Invalidate(ctx context.Context) {
	// Both layers are cleared so a failover never resurrects stale results.
	c.primary.Invalidate(ctx)
	c.fallback.Invalidate(ctx)
}
