package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name              string
		page, limit       int
		wantPage, wantLim int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative", -3, -1, 1, 10},
		{"capped", 2, 500, 2, 100},
		{"passthrough", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, l := Normalize(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantLim, l)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, int64(0), Offset(1, 10))
	assert.Equal(t, int64(20), Offset(3, 10))
	assert.Equal(t, int64(0), Offset(3, 0))
}

func TestOffsetDoesNotWrap(t *testing.T) {
	_, limit := Normalize(0, 100)
	assert.Equal(t, int64(math.MaxInt64), Offset(math.MaxInt64, limit))
	assert.Equal(t, int64(math.MaxInt64), Offset(math.MaxInt64/50, limit))

	big := int64(math.MaxInt64/100) * 100
	assert.Equal(t, big, Offset(int(math.MaxInt64/100)+1, limit))
	assert.Positive(t, Offset(1<<40, MaxLimit))
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(2, 10, 35)
	assert.Equal(t, 4, m.TotalPages)
	assert.Equal(t, int64(35), m.TotalItems)
	assert.True(t, m.HasNextPage)
	assert.True(t, m.HasPrevPage)

	last := NewMeta(4, 10, 35)
	assert.False(t, last.HasNextPage)

	empty := NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPrevPage)
}
