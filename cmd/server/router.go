package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assessmenthandler "amlengine/internal/assessment/handler"
	jwttoken "amlengine/internal/jwt_token"
	"amlengine/internal/platform/config"
	httpmetrics "amlengine/internal/platform/metrics"
	redisplatform "amlengine/internal/platform/redis"
	"amlengine/internal/ratelimit"
	"amlengine/pkg/platform/httputil"
	"amlengine/pkg/platform/middleware/admin"
	"amlengine/pkg/platform/middleware/auth"
	"amlengine/pkg/platform/middleware/metadata"
	"amlengine/pkg/platform/middleware/request"
	"amlengine/pkg/platform/middleware/requesttime"
)

const requestTimeout = 30 * time.Second

func newRouter(cfg config.Server, log *slog.Logger, svc assessmenthandler.Service, m *httpmetrics.Metrics, db *sql.DB, redisClient *redisplatform.Client) http.Handler {
	var revocations auth.TokenRevocationChecker
	var limitStore ratelimit.Store = ratelimit.NewInMemoryStore()
	if redisClient != nil {
		revocations = jwttoken.NewRevocationList(redisClient.Client)
		limitStore = ratelimit.NewRedisStore(redisClient.Client)
	}
	var handlerOpts []assessmenthandler.Option
	if cfg.Screening.RateLimit > 0 {
		limiter := ratelimit.New(limitStore, "screening", cfg.Screening.RateLimit, cfg.Screening.RateWindow, log)
		handlerOpts = append(handlerOpts, assessmenthandler.WithScreeningLimiter(limiter.Middleware))
	}
	validator := jwttoken.NewJWTServiceAdapter(jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer))

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(httpmetrics.LatencyMiddleware(m))

	r.Get("/health", healthHandler(db, redisClient))
	r.With(admin.RequireAdminToken(cfg.MetricsToken, log)).Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		r.Use(auth.RequireAuth(validator, revocations, log))
		assessmenthandler.New(svc, log, handlerOpts...).Register(r)
	})
	return r
}

// healthHandler reports 503 when a configured backing store is unreachable.
func healthHandler(db *sql.DB, redisClient *redisplatform.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true
		if db != nil {
			checks["postgres"] = "ok"
			if err := db.PingContext(ctx); err != nil {
				checks["postgres"] = "unavailable"
				healthy = false
			}
		}
		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Health(ctx); err != nil {
				checks["redis"] = "unavailable"
				healthy = false
			}
		}

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, code, map[string]any{"status": status, "checks": checks})
	}
}
