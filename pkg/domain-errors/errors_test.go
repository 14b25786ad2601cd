package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeNotFound, "client not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeForbidden))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeValidation, "bad score"))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("matches inner coded error", func(t *testing.T) {
		inner := New(CodeTimeout, "deadline")
		err := Wrap(inner, CodeStorage, "insert failed")
		assert.True(t, HasCode(err, CodeStorage))
		assert.True(t, HasCode(err, CodeTimeout))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestGetCodeAndMessage(t *testing.T) {
	err := Wrap(errors.New("connection reset"), CodeStorage, "failed to persist assessment")
	assert.Equal(t, CodeStorage, GetCode(err))
	assert.Equal(t, "failed to persist assessment", Message(err))
	assert.ErrorContains(t, err, "connection reset")

	assert.Equal(t, CodeInternal, GetCode(errors.New("boom")))
	assert.Equal(t, "internal error", Message(errors.New("boom")))
	assert.Nil(t, Wrap(nil, CodeStorage, "noop"))
}
