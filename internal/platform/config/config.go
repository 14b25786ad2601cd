// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration

	// DatabaseURL selects Postgres storage; empty runs on in-memory stores.
	DatabaseURL string
	// DirectorySeedFile preloads staff and clients into the in-memory directory.
	DirectorySeedFile string
	Redis             RedisConfig
	Kafka             KafkaConfig
	Screening         ScreeningConfig

	JWTSigningKey string
	JWTIssuer     string

	RiskTablesFile  string
	StrictDecisions bool

	OTLPEndpoint string
	LogLevel     string
	LogFormat    string
	// MetricsToken, when set, is required in X-Admin-Token to scrape /metrics.
	MetricsToken string
}

// RedisConfig tunes the shared Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig drives the audit outbox relay. No brokers means outbox rows
// accumulate without being relayed.
type KafkaConfig struct {
	Brokers       []string
	AuditTopic    string
	Partitions    int32
	RelayInterval time.Duration
}

type ScreeningConfig struct {
	// ProviderURL empty selects the stub provider.
	ProviderURL string
	Timeout     time.Duration
	CacheTTL    time.Duration
	// RateLimit is screenings allowed per user per RateWindow; 0 disables.
	RateLimit  int
	RateWindow time.Duration
}

const devSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first; variables already set
// in the environment win.
func FromEnv() (Server, error) {
	_ = godotenv.Load()
	p := parser{}
	cfg := Server{
		Addr:              p.str("AML_ADDR", ":8080"),
		ShutdownTimeout:   p.duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DirectorySeedFile: os.Getenv("DIRECTORY_SEED_FILE"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     p.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic:    p.str("AUDIT_TOPIC", "aml.audit"),
			Partitions:    int32(p.integer("AUDIT_TOPIC_PARTITIONS", 3)),
			RelayInterval: p.duration("OUTBOX_RELAY_INTERVAL", time.Second),
		},
		Screening: ScreeningConfig{
			ProviderURL: os.Getenv("SCREENING_PROVIDER_URL"),
			Timeout:     p.duration("SCREENING_TIMEOUT", 5*time.Second),
			CacheTTL:    p.duration("SCREENING_CACHE_TTL", 24*time.Hour),
			RateLimit:   p.integer("SCREENING_RATE_LIMIT", 30),
			RateWindow:  p.duration("SCREENING_RATE_WINDOW", time.Minute),
		},
		JWTSigningKey:   p.str("JWT_SIGNING_KEY", devSigningKey),
		JWTIssuer:       os.Getenv("JWT_ISSUER"),
		RiskTablesFile:  os.Getenv("RISK_TABLES_FILE"),
		StrictDecisions: p.boolean("STRICT_DECISIONS", false),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:        p.str("LOG_LEVEL", "info"),
		LogFormat:       p.str("LOG_FORMAT", "json"),
		MetricsToken:    os.Getenv("METRICS_TOKEN"),
	}
	if p.err != nil {
		return Server{}, p.err
	}
	return cfg, nil
}

// UsesDevSigningKey reports whether JWT_SIGNING_KEY was left at its default.
func (s Server) UsesDevSigningKey() bool {
	return s.JWTSigningKey == devSigningKey
}

// parser keeps the first conversion error so FromEnv can report it once.
type parser struct {
	err error
}

func (p *parser) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return b
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("config %s=%q: %w", key, value, err)
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
