package screening

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	screeningKeyPrefix = "aml:screening:"
	defaultCacheTTL    = 24 * time.Hour
)

// CachedProvider serves recent definitive results from Redis, marked Cached
// with their original ScreenedAt. Degraded
// results are never cached so the next call retries the upstream. Cache
// failures fall through to the wrapped provider.
type CachedProvider struct {
	next   Provider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type CacheOption func(*CachedProvider)

func WithTTL(ttl time.Duration) CacheOption {
	return func(p *CachedProvider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(p *CachedProvider) {
		p.logger = logger
	}
}

func NewCachedProvider(next Provider, client *redis.Client, opts ...CacheOption) *CachedProvider {
	p := &CachedProvider{
		next:   next,
		client: client,
		ttl:    defaultCacheTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *CachedProvider) Screen(ctx context.Context, subject Subject) (Result, error) {
	key := screeningKeyPrefix + subject.ClientID.String()

	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached Result
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil && !cached.Degraded() {
			cached.Cached = true
			return cached, nil
		}
	case !errors.Is(err, redis.Nil):
		p.logger.WarnContext(ctx, "screening cache read failed", "error", err)
	}

	result, err := p.next.Screen(ctx, subject)
	if err != nil || result.Degraded() {
		return result, err
	}

	if encoded, jsonErr := json.Marshal(result); jsonErr == nil {
		if setErr := p.client.Set(ctx, key, encoded, p.ttl).Err(); setErr != nil {
			p.logger.WarnContext(ctx, "screening cache write failed", "error", setErr)
		}
	}
	return result, nil
}
