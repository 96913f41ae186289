package tablebase

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chessmind/chessmind/internal/board"
)

// CachedProber memoizes verdicts from an inner prober keyed by position
// hash. Probes are often repeated across search iterations; backends may
// be slow or remote.
type CachedProber struct {
	inner Prober
	cache *lru.Cache[uint64, ProbeResult]
}

// NewCached wraps inner with an in-memory LRU of the given capacity.
func NewCached(inner Prober, capacity int) (*CachedProber, error) {
	cache, err := lru.New[uint64, ProbeResult](capacity)
	if err != nil {
		return nil, err
	}
	return &CachedProber{inner: inner, cache: cache}, nil
}

func (c *CachedProber) MaxPieces() int { return c.inner.MaxPieces() }

func (c *CachedProber) Probe(ctx context.Context, pos *board.Position) (ProbeResult, error) {
	if res, ok := c.cache.Get(pos.Hash); ok {
		return res, nil
	}
	res, err := c.inner.Probe(ctx, pos)
	if err != nil {
		return ProbeResult{}, err
	}
	c.cache.Add(pos.Hash, res)
	return res, nil
}
