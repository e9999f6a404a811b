package infra

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const deudaTTL = 60 * time.Second

// DeudaCache holds the serialized outstanding-dues payload per vivienda for
// the mobile endpoint. Reconciliation writes must invalidate the unit's entry.
type DeudaCache struct {
	rdb *redis.Client
}

func NewDeudaCache(rdb *redis.Client) *DeudaCache {
	return &DeudaCache{rdb: rdb}
}

func deudaKey(viviendaID uuid.UUID) string {
	return "deuda:vivienda:" + viviendaID.String()
}

// Get returns the cached payload, or ("", false) on miss or redis error.
func (c *DeudaCache) Get(ctx context.Context, viviendaID uuid.UUID) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, deudaKey(viviendaID)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the payload with the standard TTL. Errors are ignored: the cache
// is an optimization, never a source of truth.
func (c *DeudaCache) Set(ctx context.Context, viviendaID uuid.UUID, payload string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, deudaKey(viviendaID), payload, deudaTTL)
}

func (c *DeudaCache) Invalidate(ctx context.Context, viviendaID uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, deudaKey(viviendaID))
}
