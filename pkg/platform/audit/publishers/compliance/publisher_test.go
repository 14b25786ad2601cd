package compliance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "amlengine/pkg/platform/audit"
	"amlengine/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("outbox unavailable")
}

func TestPublisher_Emit(t *testing.T) {
	t.Run("writes event with compliance category and timestamp", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		pub := New(store)

		err := pub.Emit(context.Background(), audit.Event{
			Action:  string(audit.EventAssessmentCreated),
			Subject: "client-1",
		})
		require.NoError(t, err)

		events, err := store.ListBySubject(context.Background(), "client-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.False(t, events[0].Timestamp.IsZero())
	})

	t.Run("requires action and subject", func(t *testing.T) {
		pub := New(memory.NewInMemoryStore())
		assert.Error(t, pub.Emit(context.Background(), audit.Event{Subject: "client-1"}))
		assert.Error(t, pub.Emit(context.Background(), audit.Event{Action: "x"}))
	})

	t.Run("fails closed when the store fails", func(t *testing.T) {
		pub := New(failingStore{})
		err := pub.Emit(context.Background(), audit.Event{
			Action:  string(audit.EventAssessmentApproved),
			Subject: "client-1",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compliance audit persistence failed")
	})
}
