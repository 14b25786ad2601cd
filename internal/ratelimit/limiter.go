// Package ratelimit caps how often a caller may hit an expensive route,
// using a sliding window so bursts at a window boundary cannot double the
// effective limit.
package ratelimit

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	dErrors "amlengine/pkg/domain-errors"
	"amlengine/pkg/platform/httputil"
	"amlengine/pkg/requestcontext"
)

// Result describes the window state after a check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store records hits for key and reports whether one more is allowed.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Limiter is HTTP middleware over a Store.
type Limiter struct {
	store  Store
	name   string
	limit  int
	window time.Duration
	logger *slog.Logger
}

// New limits each authenticated user to limit requests per window on the
// routes it wraps. name scopes the keys so limiters do not share windows.
func New(store Store, name string, limit int, window time.Duration, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{store: store, name: name, limit: limit, window: window, logger: logger}
}

// Middleware fails open: a store error lets the request through.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := "ratelimit:" + l.name + ":" + requestcontext.UserID(ctx).String()

		res, err := l.store.Allow(ctx, key, l.limit, l.window)
		if err != nil {
			l.logger.ErrorContext(ctx, "rate limit check failed",
				"limiter", l.name,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		setHeaders(w, res, requestcontext.Now(ctx))
		if !res.Allowed {
			l.logger.WarnContext(ctx, "rate limit exceeded",
				"limiter", l.name,
				"user_id", requestcontext.UserID(ctx).String(),
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests, retry later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func setHeaders(w http.ResponseWriter, res *Result, now time.Time) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
	if !res.Allowed {
		retry := int(math.Ceil(res.ResetAt.Sub(now).Seconds()))
		h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
	}
}
