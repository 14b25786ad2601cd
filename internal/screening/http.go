package screening

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"amlengine/pkg/platform/circuit"
)

const defaultHTTPTimeout = 5 * time.Second

// HTTPProvider calls an external watchlist API:
//
//	POST {baseURL}/screen  {"client_id", "name", "country", "client_type"}
//	200 {"match": bool, "details": string|null}
//
// Transport errors, timeouts and non-2xx responses count as breaker
// failures and yield a degraded result. While the breaker is open the
// upstream is still probed, but its answers are withheld until enough
// consecutive successes close the breaker again.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	breaker *circuit.Breaker
	logger  *slog.Logger
	now     func() time.Time
}

type HTTPOption func(*HTTPProvider)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		p.client = c
	}
}

func WithTimeout(d time.Duration) HTTPOption {
	return func(p *HTTPProvider) {
		if d > 0 {
			p.client.Timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) HTTPOption {
	return func(p *HTTPProvider) {
		p.breaker = b
	}
}

func WithLogger(logger *slog.Logger) HTTPOption {
	return func(p *HTTPProvider) {
		p.logger = logger
	}
}

func NewHTTPProvider(baseURL string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultHTTPTimeout},
		breaker: circuit.New("sanctions-screening"),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type screenResponse struct {
	Match   bool    `json:"match"`
	Details *string `json:"details"`
}

func (p *HTTPProvider) Screen(ctx context.Context, subject Subject) (Result, error) {
	resp, err := p.call(ctx, subject)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		_, change := p.breaker.RecordFailure()
		if change.Opened {
			p.logger.WarnContext(ctx, "sanctions screening circuit opened", "breaker", p.breaker.Name())
		}
		p.logger.WarnContext(ctx, "sanctions screening unavailable",
			"client_id", subject.ClientID.String(),
			"error", err,
		)
		return degraded(p.now()), nil
	}

	usePrimary, change := p.breaker.RecordSuccess()
	if change.Closed {
		p.logger.InfoContext(ctx, "sanctions screening circuit closed", "breaker", p.breaker.Name())
	}
	if !usePrimary {
		return degraded(p.now()), nil
	}
	return Definitive(resp.Match, resp.Details, p.now()), nil
}

func (p *HTTPProvider) call(ctx context.Context, subject Subject) (*screenResponse, error) {
	body, err := json.Marshal(subject)
	if err != nil {
		return nil, fmt.Errorf("encode screening request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/screen", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build screening request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call screening provider: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("screening provider returned %d", res.StatusCode)
	}

	var out screenResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode screening response: %w", err)
	}
	return &out, nil
}
