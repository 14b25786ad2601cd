package main

import (
	"context"
	"database/sql"
	"time"

	assessmentservice "amlengine/internal/assessment/service"
	dErrors "amlengine/pkg/domain-errors"
	txcontext "amlengine/pkg/platform/tx"
)

const defaultAssessmentTxTimeout = 5 * time.Second

// assessmentPostgresTx runs the assessment write, client snapshot and
// compliance outbox insert in one database transaction. Stores pick the
// transaction up from the context.
type assessmentPostgresTx struct {
	db      *sql.DB
	stores  assessmentservice.TxStores
	timeout time.Duration
}

func newAssessmentPostgresTx(db *sql.DB, stores assessmentservice.TxStores) *assessmentPostgresTx {
	return &assessmentPostgresTx{db: db, stores: stores}
}

func (t *assessmentPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores assessmentservice.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultAssessmentTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.stores); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeStorage, "failed to commit transaction")
	}
	return nil
}
