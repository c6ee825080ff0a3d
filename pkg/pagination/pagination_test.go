package pagination

import (
	"testing"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty result still has a first page", func(tt *testing.T) {
		p, err := New(1, 10, 0)
		require.NoError(tt, err)
		assert.Equal(tt, 1, p.NumPages)
		assert.False(tt, p.HasNext)
		assert.False(tt, p.HasPrevious)
	})

	t.Run("middle page", func(tt *testing.T) {
		p, err := New(2, 10, 25)
		require.NoError(tt, err)
		assert.Equal(tt, 3, p.NumPages)
		assert.True(tt, p.HasNext)
		assert.True(tt, p.HasPrevious)
	})

	t.Run("exact multiple", func(tt *testing.T) {
		p, err := New(2, 10, 20)
		require.NoError(tt, err)
		assert.Equal(tt, 2, p.NumPages)
		assert.False(tt, p.HasNext)
	})

	t.Run("past the end", func(tt *testing.T) {
		_, err := New(3, 10, 20)
		assert.ErrorIs(tt, err, errcodes.NotFound("Page"))
	})
}

func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 20, Offset(3, 10))
	assert.Equal(t, 0, Offset(0, 10))
}
