package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClientIsDisabledCache(t *testing.T) {
	var r *RedisClient
	ctx := context.Background()

	assert.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, r.DeletePattern(ctx, "k*"))

	ok, err := r.AcquireLock(ctx, "lock:k", "v", time.Second)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, r.ReleaseLock(ctx, "lock:k", "v"))
	assert.NoError(t, r.Close())
}
