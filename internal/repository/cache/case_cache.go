package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"refund-decision-be/internal/entity"
	"refund-decision-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "refund:case:"

// CaseCache fronts case reads. Invalidate after every write so the next
// read re-fetches the record.
type CaseCache interface {
	Get(ctx context.Context, caseId uuid.UUID) (*entity.Case, bool)
	Set(ctx context.Context, c *entity.Case)
	Invalidate(ctx context.Context, caseId uuid.UUID)
}

type redisCaseCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

// NewRedisCaseCache returns a cache backed by redis. With a nil client
// every lookup misses and writes are dropped.
func NewRedisCaseCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) CaseCache {
	return &redisCaseCache{rdb: rdb, ttl: ttl, logger: log}
}

func Key(caseId uuid.UUID) string {
	return keyPrefix + caseId.String()
}

func (c *redisCaseCache) Get(ctx context.Context, caseId uuid.UUID) (*entity.Case, bool) {
	if c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, Key(caseId)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Case cache read failed", map[string]interface{}{"case_id": caseId, "error": err.Error()})
		}
		return nil, false
	}

	var cached entity.Case
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("CACHE", "Dropping undecodable case cache entry", map[string]interface{}{"case_id": caseId})
		c.Invalidate(ctx, caseId)
		return nil, false
	}
	return &cached, true
}

func (c *redisCaseCache) Set(ctx context.Context, kase *entity.Case) {
	if c.rdb == nil || kase == nil {
		return
	}

	raw, err := json.Marshal(kase)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, Key(kase.Id), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Case cache write failed", map[string]interface{}{"case_id": kase.Id, "error": err.Error()})
	}
}

func (c *redisCaseCache) Invalidate(ctx context.Context, caseId uuid.UUID) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, Key(caseId)).Err(); err != nil {
		c.logger.Warn("CACHE", "Case cache invalidation failed", map[string]interface{}{"case_id": caseId, "error": err.Error()})
	}
}
