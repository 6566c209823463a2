package backbone

import (
	"context"
	"encoding/json"
	"time"

	"AssistHub/pkg/zlog"

	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "backbone:assistance-types"

// catalogCache fronts GetSupportedAssistanceTypes with a redis cache. The
// catalog is read on every effective-capability computation; without the cache
// each of those reads hits the backbone.
type catalogCache struct {
	API
	rdb *redis.Client
	ttl time.Duration
}

// WithCatalogCache wraps an API with a redis-backed catalog cache. A nil
// client or non-positive ttl returns the API unchanged.
func WithCatalogCache(api API, rdb *redis.Client, ttl time.Duration) API {
	if rdb == nil || ttl <= 0 {
		return api
	}
	return &catalogCache{API: api, rdb: rdb, ttl: ttl}
}

func (c *catalogCache) GetSupportedAssistanceTypes(ctx context.Context) (*AssistanceTypeList, error) {
	if cached, err := c.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
		var list AssistanceTypeList
		if err := json.Unmarshal(cached, &list); err == nil {
			return &list, nil
		}
	}

	list, err := c.API.GetSupportedAssistanceTypes(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(list); err == nil {
		if err := c.rdb.Set(ctx, catalogCacheKey, payload, c.ttl).Err(); err != nil {
			zlog.Warn("failed to cache assistance type catalog: " + err.Error())
		}
	}
	return list, nil
}

// Invalidate drops the cached catalog, forcing the next read through.
func (c *catalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		zlog.Warn("failed to invalidate assistance type catalog cache: " + err.Error())
	}
}
