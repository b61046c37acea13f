package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arborview-health/practice-manager/backend/internal/calendar"
	"github.com/arborview-health/practice-manager/backend/internal/config"
)

// redisExpansionCache memoizes series expansion results in redis. Cache
// failures only cost a recomputation, so every error path degrades to a
// miss instead of failing the request.
type redisExpansionCache struct {
	client *redis.Client
	ttl    time.Duration
	opTTL  time.Duration
}

func newRedisExpansionCache(rdb *redis.Client, cfg *config.Config) calendar.ExpansionCache {
	return &redisExpansionCache{
		client: rdb,
		ttl:    time.Duration(cfg.Calendar.ExpansionCacheTTL) * time.Second,
		opTTL:  time.Duration(cfg.Redis.OperationExpiration) * time.Minute,
	}
}

func (c *redisExpansionCache) Get(key string) ([]calendar.Occurrence, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTTL)
	defer cancel()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var occurrences []calendar.Occurrence
	if err := json.Unmarshal(payload, &occurrences); err != nil {
		return nil, false
	}
	return occurrences, true
}

func (c *redisExpansionCache) Set(key string, occurrences []calendar.Occurrence) {
	payload, err := json.Marshal(occurrences)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opTTL)
	defer cancel()

	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}
