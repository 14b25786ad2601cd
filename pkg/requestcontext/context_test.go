package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "amlengine/pkg/domain"
)

func TestAccessors(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when unset", func(t *testing.T) {
		assert.True(t, UserID(ctx).IsNil())
		assert.Empty(t, RequestID(ctx))
		assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
	})

	t.Run("returns injected values", func(t *testing.T) {
		userID := id.UserID(uuid.New())
		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		ctx := WithUserID(ctx, userID)
		ctx = WithRequestID(ctx, "req-1")
		ctx = WithTime(ctx, fixed)

		assert.Equal(t, userID, UserID(ctx))
		assert.Equal(t, "req-1", RequestID(ctx))
		assert.Equal(t, fixed, Now(ctx))
	})
}
