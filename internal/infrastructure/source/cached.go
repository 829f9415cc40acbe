package source

import (
	"context"
	"time"

	"github.com/riskibarqy/cup-standings/internal/platform/cache"
	"github.com/riskibarqy/cup-standings/internal/usecase"
)

// CachedSource keeps the raw sheet text for ttl. Parsed views are never cached,
// so every call still recomputes from the text.
type CachedSource struct {
	next  usecase.MatchSource
	key   string
	store *cache.Store[string]
}

func NewCachedSource(next usecase.MatchSource, key string, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		key:   key,
		store: cache.NewStore[string](ttl),
	}
}

func (s *CachedSource) Fetch(ctx context.Context) (string, error) {
	return s.store.GetOrLoad(ctx, s.key, s.next.Fetch)
}

// Invalidate drops the cached text so the next Fetch reads through.
func (s *CachedSource) Invalidate(ctx context.Context) {
	s.store.Delete(ctx, s.key)
}
