package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := NotFound("stock not found")
	wrapped := fmt.Errorf("adjust: %w", base)

	assert.Equal(t, KindNotFound, KindOf(base))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestMessageHidesInternalDetail(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("mongo: connection refused")))
	assert.Equal(t, "invalid city", Message(Validation("invalid city")))

	err := Wrap(KindInternal, "failed to save", errors.New("disk full"))
	assert.Equal(t, "failed to save: disk full", err.Error())
	assert.Equal(t, "failed to save", Message(err))
}
