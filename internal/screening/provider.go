// Package screening checks clients against sanctions watchlists.
//
// Providers return a Result whose Status distinguishes a definitive clear or
// match from an unknown outcome. Unknown means the watchlist could not be
// consulted; callers must not record it as a clean screen.
package screening

import (
	"context"
	"time"

	id "amlengine/pkg/domain"
)

// Subject is the party being screened.
type Subject struct {
	ClientID   id.ClientID `json:"client_id"`
	Name       string      `json:"name"`
	Country    string      `json:"country"`
	ClientType string      `json:"client_type"`
}

type Status string

const (
	StatusClear   Status = "clear"
	StatusMatch   Status = "match"
	StatusUnknown Status = "unknown"
)

type Result struct {
	Status     Status    `json:"status"`
	ScreenedAt time.Time `json:"screened_at"`
	Match      bool      `json:"match"`
	Details    *string   `json:"details,omitempty"`

	// Cached is set when the result was served from a previous screen, so
	// ScreenedAt is when that screen ran.
	Cached bool `json:"-"`
}

// Degraded reports whether the provider could not reach a verdict.
func (r Result) Degraded() bool {
	return r.Status == StatusUnknown
}

// Provider queries a sanctions list. Implementations return an error only for
// caller mistakes; upstream outages surface as a degraded Result.
type Provider interface {
	Screen(ctx context.Context, subject Subject) (Result, error)
}

// Definitive builds a clear or match result.
func Definitive(match bool, details *string, at time.Time) Result {
	status := StatusClear
	if match {
		status = StatusMatch
	}
	return Result{Status: status, ScreenedAt: at, Match: match, Details: details}
}

func degraded(at time.Time) Result {
	return Result{Status: StatusUnknown, ScreenedAt: at}
}

// StubProvider reports every subject as clear. It stands in until a real
// watchlist is configured.
type StubProvider struct {
	now func() time.Time
}

func NewStubProvider() *StubProvider {
	return &StubProvider{now: time.Now}
}

func (p *StubProvider) Screen(_ context.Context, _ Subject) (Result, error) {
	return Definitive(false, nil, p.now()), nil
}
