package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClampsInput(t *testing.T) {
	p := New(0, -1)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = New(3, 1000)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 2*MaxLimit, p.Offset)
}

func TestGetMeta(t *testing.T) {
	p := New(2, 10)
	meta := GetMeta(p, 25)

	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	last := GetMeta(New(3, 10), 25)
	assert.False(t, last.HasNext)
}
