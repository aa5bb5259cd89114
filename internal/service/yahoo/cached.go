package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"SignalPulse/internal/domain/models"
	drepo "SignalPulse/internal/domain/repository"
	"SignalPulse/internal/service/cache"
)

// CachedProvider wraps a PriceProvider with a byte cache so that overlapping
// cycles and on-demand analysis requests reuse one upstream fetch.
// Cache failures fall through to the upstream provider.
type CachedProvider struct {
	next  drepo.PriceProvider
	cache cache.BytesCache
	ttl   time.Duration
}

func NewCachedProvider(next drepo.PriceProvider, c cache.BytesCache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: c, ttl: ttl}
}

var _ drepo.PriceProvider = (*CachedProvider)(nil)

func (p *CachedProvider) Fetch(ctx context.Context, symbol, period, interval string) (models.PriceSeries, error) {
	key := fmt.Sprintf("prices:%s:%s:%s", symbol, period, interval)

	if b, ok, err := p.cache.GetBytes(ctx, key); err == nil && ok {
		var series models.PriceSeries
		if err := json.Unmarshal(b, &series); err == nil {
			return series, nil
		}
	}

	series, err := p.next.Fetch(ctx, symbol, period, interval)
	if err != nil {
		return series, err
	}
	// Empty series are not cached: a transient upstream gap should not
	// suppress data for a whole TTL.
	if !series.Empty() {
		if b, err := json.Marshal(series); err == nil {
			_ = p.cache.SetBytes(ctx, key, b, p.ttl)
		}
	}
	return series, nil
}
