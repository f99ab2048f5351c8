package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CandidateCache caches candidate query results in Redis, keyed by the
// canonical serialization of the predicate set plus a generation counter.
// Invalidation bumps the generation (single INCR) instead of scanning for
// keys; stale entries age out via their TTL.
type CandidateCache struct {
	client *redis.Client
	source engine.ProductSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCandidateCache(client *redis.Client, source engine.ProductSource, ttl time.Duration) *CandidateCache {
	return &CandidateCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *CandidateCache) Query(ctx context.Context, predicates []domain.FilterPredicate, limit int) ([]domain.Product, error) {
	key, err := c.entryKey(ctx, predicates)
	if err != nil {
		// Redis trouble degrades to a direct catalog read, not a failure.
		return c.source.Query(ctx, predicates, limit)
	}

	if products, ok := c.lookup(ctx, key); ok {
		return products, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if products, ok := c.lookup(ctx, key); ok {
			return products, nil
		}

		products, err := c.source.Query(ctx, predicates, limit)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(products); err == nil {
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Product), nil
}

// Invalidate makes every cached entry unreachable; call it when the product
// catalog changes.
func (c *CandidateCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}

func (c *CandidateCache) lookup(ctx context.Context, key string) ([]domain.Product, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (c *CandidateCache) entryKey(ctx context.Context, predicates []domain.FilterPredicate) (string, error) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	return fmt.Sprintf("quiz:candidates:%d:%s", generation, domain.CanonicalKey(predicates)), nil
}

func (c *CandidateCache) generationKey() string {
	return "quiz:candidates:generation"
}

func (c *CandidateCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
