package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fashion-oms/oms-service/internal/domain"
)

const (
	staffListKey = "oms:staff:list"
	staffListTTL = 60 * time.Second
)

// StaffListCache caches the staff listing in Redis. The role-upgrade
// workflow invalidates it whenever pending-upgrade state changes, so the
// admin UI never shows a stale pending marker.
type StaffListCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStaffListCache builds the cache. A nil client yields a cache that
// misses on every read and ignores writes.
func NewStaffListCache(client *redis.Client, logger *zap.Logger) *StaffListCache {
	return &StaffListCache{client: client, logger: logger}
}

// Get returns the cached listing, reporting whether it was present.
func (c *StaffListCache) Get(ctx context.Context) ([]domain.Employee, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, staffListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var employees []domain.Employee
	if err := json.Unmarshal(raw, &employees); err != nil {
		c.logger.Warn("corrupt staff list cache entry", zap.Error(err))
		return nil, false
	}
	return employees, true
}

// Set stores the listing with a short TTL.
func (c *StaffListCache) Set(ctx context.Context, employees []domain.Employee) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(employees)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, staffListKey, raw, staffListTTL).Err(); err != nil {
		c.logger.Warn("failed to cache staff list", zap.Error(err))
	}
}

// Invalidate drops the cached listing.
func (c *StaffListCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, staffListKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate staff list cache", zap.Error(err))
	}
}
