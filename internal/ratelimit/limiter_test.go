package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "amlengine/pkg/domain"
	"amlengine/pkg/requestcontext"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (*Result, error) {
	return nil, errors.New("redis down")
}

func TestLimiterMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	now := time.Date(2025, 4, 14, 10, 0, 0, 0, time.UTC)

	serve := func(h http.Handler, user id.UserID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/aml/clients/x/sanctions-screening", nil)
		ctx := requestcontext.WithTime(requestcontext.WithUserID(req.Context(), user), now)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req.WithContext(ctx))
		return rr
	}

	t.Run("limits per user", func(t *testing.T) {
		store := NewInMemoryStore()
		store.now = func() time.Time { return now }
		h := New(store, "screening", 2, time.Minute, logger).Middleware(ok)
		alice, bob := id.UserID(uuid.New()), id.UserID(uuid.New())

		assert.Equal(t, http.StatusOK, serve(h, alice).Code)
		rr := serve(h, alice)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

		rr = serve(h, alice)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "60", rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), `"error":"rate_limited"`)

		assert.Equal(t, http.StatusOK, serve(h, bob).Code)
	})

	t.Run("store failure fails open", func(t *testing.T) {
		h := New(failingStore{}, "screening", 1, time.Minute, logger).Middleware(ok)
		rr := serve(h, id.UserID(uuid.New()))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	})
}
