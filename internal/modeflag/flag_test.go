package modeflag

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("connection refused") }
func (failingStore) Delete(context.Context, string) error      { return errors.New("connection refused") }

func TestLoadDefaultsToFixtureMode(t *testing.T) {
	f := New(localstore.NewMemoryStore(), zerolog.Nop())
	assert.False(t, f.Load(context.Background()))
	assert.False(t, f.Get())
}

func TestLoadIgnoresMalformedValue(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"yes", "", "{", `"true"`, "1"} {
		store := localstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, config.CacheKey.ModeFlag, raw))

		f := New(store, zerolog.Nop())
		assert.False(t, f.Load(ctx), raw)
	}
}

func TestSetPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()

	New(store, zerolog.Nop()).Set(ctx, true)

	raw, ok, err := store.Get(ctx, config.CacheKey.ModeFlag)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", raw)

	restarted := New(store, zerolog.Nop())
	assert.True(t, restarted.Load(ctx))
}

func TestStoreFailuresNeverSurface(t *testing.T) {
	ctx := context.Background()
	f := New(failingStore{}, zerolog.Nop())

	assert.False(t, f.Load(ctx))
	f.Set(ctx, true)
	assert.True(t, f.Get())
}
