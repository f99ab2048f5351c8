package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"adapter-quiz-service/internal/domain"
	"adapter-quiz-service/internal/engine"
	"golang.org/x/sync/singleflight"
)

// CandidateCache caches candidate query results with a TTL to keep repeated
// planning calls off the backing catalog. Entries are keyed by the canonical
// serialization of the predicate set, so equivalent filter combinations share
// one entry regardless of answer order.
type CandidateCache struct {
	source engine.ProductSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedCandidates
}

type cachedCandidates struct {
	products  []domain.Product
	expiresAt time.Time
}

func NewCandidateCache(source engine.ProductSource, ttl time.Duration) *CandidateCache {
	return &CandidateCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedCandidates),
	}
}

func (c *CandidateCache) Query(ctx context.Context, predicates []domain.FilterPredicate, limit int) ([]domain.Product, error) {
	key := domain.CanonicalKey(predicates)
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.products, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.products, nil
		}
		c.mu.RUnlock()

		products, err := c.source.Query(ctx, predicates, limit)
		if err != nil {
			// Failures are not cached; the next call retries the source.
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = cachedCandidates{
			products:  products,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Product), nil
}

// Invalidate drops every cached entry; call it when the product catalog changes.
func (c *CandidateCache) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cachedCandidates)
	c.mu.Unlock()
}

func (c *CandidateCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
