package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		n := Params{}.Normalize()
		assert.Equal(t, 1, n.Page)
		assert.Equal(t, DefaultLimit, n.Limit)
	})

	t.Run("limit capped", func(t *testing.T) {
		n := Params{Page: 3, Limit: 5000}.Normalize()
		assert.Equal(t, 3, n.Page)
		assert.Equal(t, MaxLimit, n.Limit)
	})

	t.Run("negative page reset", func(t *testing.T) {
		n := Params{Page: -2, Limit: 10}.Normalize()
		assert.Equal(t, 1, n.Page)
		assert.Equal(t, 10, n.Limit)
	})
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Params{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Params{}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(45, Params{Page: 2, Limit: 10})
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.Equal(t, 5, meta.TotalPages)

	empty := NewMeta(0, Params{})
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, int64(0), empty.Total)
}
