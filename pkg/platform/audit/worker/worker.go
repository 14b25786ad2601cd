package worker

import (
	"context"
	"log/slog"

	audit "amlengine/pkg/platform/audit"
)

// Worker drains audit events from a channel into a store. Failed writes are
// logged and skipped; callers that need fail-closed writes use the
// compliance publisher instead.
type Worker struct {
	store  audit.Store
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run persists events until the inbox is closed and drained, or ctx ends.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "dropping audit event",
					"action", event.Action,
					"error", err,
				)
			}
		}
	}
}
