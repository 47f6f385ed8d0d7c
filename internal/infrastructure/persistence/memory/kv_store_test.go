package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueStore(t *testing.T) {
	ctx := context.Background()
	s := NewKeyValueStore()

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "p:b", "2"))
	require.NoError(t, s.Set(ctx, "p:a", "1"))
	require.NoError(t, s.Set(ctx, "q:c", "3"))

	v, found, err := s.Get(ctx, "p:a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1", v)

	entries, err := s.List(ctx, "p:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "p:a", entries[0].Key)
	assert.Equal(t, "p:b", entries[1].Key)

	require.NoError(t, s.Delete(ctx, "p:a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	assert.Equal(t, 2, s.Len())
}
