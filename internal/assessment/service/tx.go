package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"amlengine/internal/assessment/models"
	dirmodels "amlengine/internal/directory/models"
	id "amlengine/pkg/domain"
	dErrors "amlengine/pkg/domain-errors"
)

// TxStores are the stores usable inside a transaction. The ctx passed to fn
// carries the transaction; stores and publishers must use it.
type TxStores struct {
	Assessments AssessmentStore
	Clients     ClientStore
}

// AssessmentStoreTx provides the atomic boundary for an assessment write and
// the client snapshot and audit event that go with it. Implementations wrap a
// database transaction or, in memory, a per-client lock with an undo journal.
type AssessmentStoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error
}

// UndoableAssessmentStore can remove a row it inserted, so a failed
// in-memory transaction can be rolled back.
type UndoableAssessmentStore interface {
	AssessmentStore
	Delete(ctx context.Context, assessmentID id.AssessmentID) error
}

// numTxShards spreads in-memory transactions over independent locks keyed by
// client, so writes for one client serialize without blocking the others.
const numTxShards = 128

const defaultTxTimeout = 5 * time.Second

// ShardedTx serializes writes per client in memory. Writes apply as they are
// made and are journaled; when fn fails the journal is replayed in reverse.
// Readers outside the transaction may see writes that are later undone.
type ShardedTx struct {
	shards      [numTxShards]sync.Mutex
	assessments UndoableAssessmentStore
	clients     ClientStore
	timeout     time.Duration
}

func NewShardedTx(assessments UndoableAssessmentStore, clients ClientStore) *ShardedTx {
	return &ShardedTx{
		assessments: assessments,
		clients:     clients,
		timeout:     defaultTxTimeout,
	}
}

func (t *ShardedTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := t.selectShard(ctx)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	j := &journal{}
	err := fn(ctx, TxStores{
		Assessments: journaledAssessments{UndoableAssessmentStore: t.assessments, journal: j},
		Clients:     journaledClients{ClientStore: t.clients, journal: j},
	})
	if err == nil {
		return nil
	}
	if rbErr := j.rollback(context.WithoutCancel(ctx)); rbErr != nil {
		return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
	}
	return err
}

// journal records how to undo each write made inside one transaction.
type journal struct {
	undo []func(context.Context) error
}

func (j *journal) record(undo func(context.Context) error) {
	j.undo = append(j.undo, undo)
}

func (j *journal) rollback(ctx context.Context) error {
	var errs []error
	for i := len(j.undo) - 1; i >= 0; i-- {
		if err := j.undo[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type journaledAssessments struct {
	UndoableAssessmentStore
	journal *journal
}

func (s journaledAssessments) Create(ctx context.Context, a *models.AmlAssessment) error {
	if err := s.UndoableAssessmentStore.Create(ctx, a); err != nil {
		return err
	}
	assessmentID := a.ID
	s.journal.record(func(ctx context.Context) error {
		return s.UndoableAssessmentStore.Delete(ctx, assessmentID)
	})
	return nil
}

func (s journaledAssessments) UpdateDecision(ctx context.Context, a *models.AmlAssessment, expected models.Status) error {
	before, err := s.UndoableAssessmentStore.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := s.UndoableAssessmentStore.UpdateDecision(ctx, a, expected); err != nil {
		return err
	}
	s.journal.record(func(ctx context.Context) error {
		return s.UndoableAssessmentStore.UpdateDecision(ctx, before, "")
	})
	return nil
}

func (s journaledAssessments) UpdateScreening(ctx context.Context, a *models.AmlAssessment) error {
	before, err := s.UndoableAssessmentStore.FindByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if err := s.UndoableAssessmentStore.UpdateScreening(ctx, a); err != nil {
		return err
	}
	s.journal.record(func(ctx context.Context) error {
		return s.UndoableAssessmentStore.UpdateScreening(ctx, before)
	})
	return nil
}

type journaledClients struct {
	ClientStore
	journal *journal
}

func (s journaledClients) UpdateComplianceFields(ctx context.Context, clientID id.ClientID, update dirmodels.ComplianceUpdate) error {
	before, err := s.ClientStore.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if err := s.ClientStore.UpdateComplianceFields(ctx, clientID, update); err != nil {
		return err
	}
	restore := before.ComplianceSnapshot()
	s.journal.record(func(ctx context.Context) error {
		return s.ClientStore.UpdateComplianceFields(ctx, clientID, restore)
	})
	return nil
}

// defaultTx backs New when no transaction is configured.
func defaultTx(assessments AssessmentStore, clients ClientStore) AssessmentStoreTx {
	if undoable, ok := assessments.(UndoableAssessmentStore); ok {
		return NewShardedTx(undoable, clients)
	}
	return unsupportedTx{}
}

// unsupportedTx refuses every write rather than apply one without rollback.
type unsupportedTx struct{}

func (unsupportedTx) RunInTx(context.Context, func(context.Context, TxStores) error) error {
	return dErrors.New(dErrors.CodeInternal, "assessment store has no transaction support; configure WithTx")
}

// selectShard picks a shard from the client in ctx, defaulting to shard 0.
func (t *ShardedTx) selectShard(ctx context.Context) int {
	if key, ok := ctx.Value(txShardKeyCtx).(string); ok && key != "" {
		return int(hashString(key) % numTxShards)
	}
	return 0
}

// FNV-1a
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

type txShardKey struct{}

var txShardKeyCtx = txShardKey{}

// withTxClient marks ctx with the client a transaction writes to.
func withTxClient(ctx context.Context, clientID id.ClientID) context.Context {
	return context.WithValue(ctx, txShardKeyCtx, clientID.String())
}
