package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	assessmentmetrics "amlengine/internal/assessment/metrics"
	assessmentservice "amlengine/internal/assessment/service"
	assessmentstore "amlengine/internal/assessment/store"
	clientstore "amlengine/internal/directory/store/client"
	staffstore "amlengine/internal/directory/store/staff"
	"amlengine/internal/platform/config"
	"amlengine/internal/platform/httpserver"
	"amlengine/internal/platform/logger"
	httpmetrics "amlengine/internal/platform/metrics"
	redisplatform "amlengine/internal/platform/redis"
	"amlengine/internal/platform/tracing"
	"amlengine/internal/risk"
	"amlengine/internal/screening"
	"amlengine/pkg/platform/audit"
	"amlengine/pkg/platform/audit/publisher"
	"amlengine/pkg/platform/audit/publishers/compliance"
	"amlengine/pkg/platform/audit/relay"
	auditmemory "amlengine/pkg/platform/audit/store/memory"
	auditpostgres "amlengine/pkg/platform/audit/store/postgres"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		slog.Error("amlengine exited with error", "error", err)
		os.Exit(1)
	}
}

// storage bundles the store implementations selected by configuration.
type storage struct {
	db          *sql.DB
	assessments assessmentservice.AssessmentStore
	clients     assessmentservice.ClientStore
	staff       assessmentservice.StaffStore
	tx          assessmentservice.AssessmentStoreTx
	audit       audit.Store
	outbox      *auditpostgres.Store
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	if cfg.UsesDevSigningKey() {
		log.Warn("JWT_SIGNING_KEY not set, using development key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTLPEndpoint, version, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	tables, err := risk.LoadTables(cfg.RiskTablesFile)
	if err != nil {
		return err
	}

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	redisClient, err := redisplatform.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	bestEffort := publisher.NewPublisher(st.audit, publisher.WithAsyncBuffer(1024), publisher.WithLogger(log))
	defer bestEffort.Close()

	opts := []assessmentservice.Option{
		assessmentservice.WithLogger(log),
		assessmentservice.WithMetrics(assessmentmetrics.New()),
		assessmentservice.WithCompliancePublisher(compliance.New(st.audit,
			compliance.WithLogger(log),
			compliance.WithMetrics(compliance.NewMetrics()),
		)),
		assessmentservice.WithAuditPublisher(bestEffort),
		assessmentservice.WithTx(st.tx),
		assessmentservice.WithScreeningProvider(newScreeningProvider(cfg, redisClient, log)),
	}
	if cfg.StrictDecisions {
		opts = append(opts, assessmentservice.WithStrictDecisions())
	}
	svc := assessmentservice.New(st.assessments, st.clients, st.staff, risk.NewCalculator(tables), opts...)

	srv := httpserver.New(cfg.Addr, newRouter(cfg, log, svc, httpmetrics.New(nil), st.db, redisClient))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting amlengine", "addr", cfg.Addr, "version", version, "postgres", st.db != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		return shutdownTracing(shutdownCtx)
	})

	if err := startOutboxRelay(gctx, g, cfg, st, log); err != nil {
		stop()
		_ = g.Wait()
		return err
	}

	return g.Wait()
}

func openStorage(ctx context.Context, cfg config.Server, log *slog.Logger) (*storage, error) {
	if cfg.DatabaseURL == "" {
		assessments := assessmentstore.NewInMemory()
		clients := clientstore.NewInMemory()
		staff := staffstore.NewInMemory()
		if cfg.DirectorySeedFile != "" {
			n, err := loadDirectorySeed(ctx, cfg.DirectorySeedFile, staff, clients)
			if err != nil {
				return nil, err
			}
			log.Info("directory seeded", "records", n, "file", cfg.DirectorySeedFile)
		}
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return &storage{
			assessments: assessments,
			clients:     clients,
			staff:       staff,
			tx:          assessmentservice.NewShardedTx(assessments, clients),
			audit:       auditmemory.NewInMemoryStore(),
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	assessments := assessmentstore.NewPostgres(db)
	clients := clientstore.NewPostgres(db)
	outbox := auditpostgres.New(db)
	return &storage{
		db:          db,
		assessments: assessments,
		clients:     clients,
		staff:       staffstore.NewPostgres(db),
		tx: newAssessmentPostgresTx(db, assessmentservice.TxStores{
			Assessments: assessments,
			Clients:     clients,
		}),
		audit:  outbox,
		outbox: outbox,
	}, nil
}

func newScreeningProvider(cfg config.Server, redisClient *redisplatform.Client, log *slog.Logger) screening.Provider {
	if cfg.Screening.ProviderURL == "" {
		log.Warn("SCREENING_PROVIDER_URL not set, sanctions screening always reports clear")
		return screening.NewStubProvider()
	}
	var provider screening.Provider = screening.NewHTTPProvider(cfg.Screening.ProviderURL,
		screening.WithTimeout(cfg.Screening.Timeout),
		screening.WithLogger(log),
	)
	if redisClient != nil {
		provider = screening.NewCachedProvider(provider, redisClient.Client,
			screening.WithTTL(cfg.Screening.CacheTTL),
			screening.WithCacheLogger(log),
		)
	}
	return provider
}

// startOutboxRelay publishes committed outbox rows to Kafka. It needs both
// Postgres (the outbox) and brokers; otherwise rows stay in the table.
func startOutboxRelay(ctx context.Context, g *errgroup.Group, cfg config.Server, st *storage, log *slog.Logger) error {
	if st.outbox == nil || len(cfg.Kafka.Brokers) == 0 {
		log.Info("audit outbox relay disabled", "postgres", st.outbox != nil, "brokers", len(cfg.Kafka.Brokers))
		return nil
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Kafka.Brokers...),
		kgo.ClientID("amlengine"),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return fmt.Errorf("kafka client: %w", err)
	}
	if err := relay.EnsureTopic(ctx, client, cfg.Kafka.AuditTopic, cfg.Kafka.Partitions, 1); err != nil {
		client.Close()
		return err
	}

	r := relay.New(st.db, st.outbox, client, cfg.Kafka.AuditTopic,
		relay.WithInterval(cfg.Kafka.RelayInterval),
		relay.WithLogger(log),
	)
	g.Go(func() error {
		defer client.Close()
		return r.Run(ctx)
	})
	return nil
}
