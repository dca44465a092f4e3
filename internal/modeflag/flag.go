// Package modeflag holds the persisted switch between the fixture dataset and
// the remote store.
package modeflag

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/localstore"
)

// Flag is the process-wide "use remote store" switch. The zero state is
// false (fixture mode). Flag never returns errors: unreadable persisted data
// counts as absent and failed writes are logged.
type Flag struct {
	store localstore.Store
	log   zerolog.Logger

	mu    sync.RWMutex
	value bool
}

// New creates a Flag backed by store. Call Load before first use.
func New(store localstore.Store, log zerolog.Logger) *Flag {
	return &Flag{
		store: store,
		log:   log.With().Str("component", "mode_flag").Logger(),
	}
}

// Load reads the persisted value, defaulting to false, and returns it.
func (f *Flag) Load(ctx context.Context) bool {
	v := false
	raw, ok, err := f.store.Get(ctx, config.CacheKey.ModeFlag)
	switch {
	case err != nil:
		f.log.Warn().Err(err).Msg("read mode flag failed, using fixture mode")
	case ok:
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			f.log.Warn().Str("raw", raw).Msg("malformed mode flag ignored")
			v = false
		}
	}

	f.mu.Lock()
	f.value = v
	f.mu.Unlock()
	return v
}

// Get returns the current value.
func (f *Flag) Get() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Set updates the value and persists it before returning.
func (f *Flag) Set(ctx context.Context, v bool) {
	f.mu.Lock()
	f.value = v
	f.mu.Unlock()

	raw, _ := json.Marshal(v)
	if err := f.store.Set(ctx, config.CacheKey.ModeFlag, string(raw)); err != nil {
		f.log.Error().Err(err).Bool("use_database", v).Msg("persist mode flag failed")
		return
	}
	f.log.Info().Bool("use_database", v).Msg("data source switched")
}
