package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/grievance-service/internal/domain"
)

const (
	statusCountsKey = "grievance:status_counts"
	statusCountsTTL = 30 * time.Second
)

// StatusCache keeps the status-count report in Redis between writes.
// Every caller must tolerate a miss; the database stays authoritative.
type StatusCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStatusCache builds the cache. A nil client disables caching.
func NewStatusCache(client *redis.Client, logger *zap.Logger) *StatusCache {
	return &StatusCache{client: client, logger: logger}
}

// Get returns cached counts, or ok=false on miss or cache error.
func (c *StatusCache) Get(ctx context.Context) (map[domain.GrievanceStatus]int64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statusCountsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("status cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var counts map[domain.GrievanceStatus]int64
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, false
	}
	return counts, true
}

// Set stores the counts with a short TTL.
func (c *StatusCache) Set(ctx context.Context, counts map[domain.GrievanceStatus]int64) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statusCountsKey, raw, statusCountsTTL).Err(); err != nil {
		c.logger.Warn("status cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached counts after a grievance write.
func (c *StatusCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, statusCountsKey).Err(); err != nil {
		c.logger.Warn("status cache invalidation failed", zap.Error(err))
	}
}
