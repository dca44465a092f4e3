package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "cbt_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "cbt_user", `{"id":"student_1"}`))
	v, ok, err := s.Get(ctx, "cbt_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":"student_1"}`, v)

	require.NoError(t, s.Delete(ctx, "cbt_user"))
	_, ok, _ = s.Get(ctx, "cbt_user")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Writes())
}
