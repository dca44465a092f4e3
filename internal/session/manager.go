// Package session owns the signed-in identity of the running client: startup
// restore, login, logout, signup and email verification, in both fixture and
// database mode.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/modeflag"
	"github.com/stemsi/cbity-backend/internal/remote"
)

// State is the position of the manager in its auth state machine.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

// Snapshot is a point-in-time view of the manager.
type Snapshot struct {
	State       State           `json:"state"`
	Identity    *model.Identity `json:"identity,omitempty"`
	UseDatabase bool            `json:"use_database"`
	Ready       bool            `json:"ready"`
}

// Options tunes the manager.
type Options struct {
	// DemoLoginDelay is the artificial latency of a fixture-mode login.
	DemoLoginDelay time.Duration
	// VerifyRedirectURL is where signup confirmation links land.
	VerifyRedirectURL string
}

var errProfileNotFound = errors.New("user profile not found")

// Manager is the identity/session state machine. Every startup run carries a
// generation number; results of asynchronous work started under an older
// generation are discarded.
type Manager struct {
	flag   *modeflag.Flag
	store  localstore.Store
	auth   remote.Authenticator
	remote remote.Store
	opts   Options
	log    zerolog.Logger

	base     context.Context
	shutdown context.CancelFunc

	mu          sync.RWMutex
	state       State
	identity    *model.Identity
	gen         uint64
	ready       chan struct{}
	unsubscribe func()

	watchMu  sync.Mutex
	watchers map[int]chan Snapshot
	nextID   int
}

// NewManager creates a Manager. Call Start before use.
func NewManager(flag *modeflag.Flag, store localstore.Store, auth remote.Authenticator, rs remote.Store, opts Options, log zerolog.Logger) *Manager {
	base, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	return &Manager{
		flag:     flag,
		store:    store,
		auth:     auth,
		remote:   rs,
		opts:     opts,
		log:      log.With().Str("component", "session").Logger(),
		base:     base,
		shutdown: cancel,
		state:    StateUnauthenticated,
		ready:    ready,
		watchers: make(map[int]chan Snapshot),
	}
}

// Start loads the persisted mode flag and runs the startup transition.
func (m *Manager) Start(ctx context.Context) {
	m.restart(ctx, m.flag.Load(ctx))
}

// Close stops the auth subscription and any in-flight restore.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.mu.Unlock()
	m.shutdown()

	m.watchMu.Lock()
	for id, ch := range m.watchers {
		close(ch)
		delete(m.watchers, id)
	}
	m.watchMu.Unlock()
}

// UseDatabase reports the active data source.
func (m *Manager) UseDatabase() bool {
	return m.flag.Get()
}

// SetMode switches the data source. A change persists the flag, discards the
// current identity and re-runs the startup transition.
func (m *Manager) SetMode(ctx context.Context, useDatabase bool) {
	if m.flag.Get() == useDatabase {
		return
	}
	m.flag.Set(ctx, useDatabase)
	if err := m.store.Delete(ctx, config.CacheKey.IdentitySnapshot); err != nil {
		m.log.Warn().Err(err).Msg("clear identity snapshot failed")
	}
	m.log.Info().Bool("use_database", useDatabase).Msg("mode changed, restarting session")
	m.restart(ctx, useDatabase)
}

// Current returns the present state.
func (m *Manager) Current() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	ready := false
	select {
	case <-m.ready:
		ready = true
	default:
	}
	var ident *model.Identity
	if m.identity != nil {
		cp := *m.identity
		ident = &cp
	}
	return Snapshot{State: m.state, Identity: ident, UseDatabase: m.flag.Get(), Ready: ready}
}

// Ready is closed once the current startup run has finished restoring.
func (m *Manager) Ready() <-chan struct{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// WaitReady blocks until the current startup run has finished or ctx is done.
// A mode switch during the wait is followed to the new run.
func (m *Manager) WaitReady(ctx context.Context) error {
	for {
		m.mu.RLock()
		ready, gen := m.ready, m.gen
		m.mu.RUnlock()

		select {
		case <-ready:
			m.mu.RLock()
			same := m.gen == gen
			m.mu.RUnlock()
			if same {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// restart tears down the previous run and starts a new generation.
func (m *Manager) restart(ctx context.Context, useDatabase bool) {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.identity = nil
	m.state = StateUnauthenticated
	ready := make(chan struct{})
	m.ready = ready
	m.mu.Unlock()
	m.notify()

	if !useDatabase {
		m.restoreSnapshot(ctx, gen)
		close(ready)
		m.notify()
		return
	}

	m.subscribe(gen)
	m.apply(gen, StateAuthenticating, nil)
	go func() {
		defer func() {
			close(ready)
			m.notify()
		}()
		m.restoreRemote(gen)
	}()
}

func (m *Manager) restoreSnapshot(ctx context.Context, gen uint64) {
	raw, ok, err := m.store.Get(ctx, config.CacheKey.IdentitySnapshot)
	if err != nil {
		m.log.Warn().Err(err).Msg("read identity snapshot failed")
		return
	}
	if !ok {
		return
	}

	var ident model.Identity
	if err := json.Unmarshal([]byte(raw), &ident); err != nil || !ident.Role.Valid() || ident.ID == "" {
		m.log.Warn().Msg("malformed identity snapshot ignored")
		return
	}
	m.apply(gen, StateAuthenticated, &ident)
}

func (m *Manager) restoreRemote(gen uint64) {
	sess, err := m.auth.GetSession(m.base)
	if err != nil {
		m.log.Error().Err(err).Msg("restore session failed")
		m.apply(gen, StateUnauthenticated, nil)
		return
	}
	if sess == nil {
		m.apply(gen, StateUnauthenticated, nil)
		return
	}

	ident, err := m.loadIdentity(m.base, sess.User.ID)
	if err != nil {
		m.log.Error().Err(err).Str("user_id", sess.User.ID).Msg("load user profile failed")
		m.apply(gen, StateUnauthenticated, nil)
		return
	}
	m.apply(gen, StateAuthenticated, ident)
}

// subscribe follows out-of-band auth changes for as long as gen is current.
func (m *Manager) subscribe(gen uint64) {
	events, cancel := m.auth.Subscribe(m.base)

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		cancel()
		return
	}
	m.unsubscribe = cancel
	m.mu.Unlock()

	go func() {
		for ev := range events {
			switch ev.Event {
			case remote.EventSignedIn:
				if ev.Session == nil {
					continue
				}
				ident, err := m.loadIdentity(m.base, ev.Session.User.ID)
				if err != nil {
					m.log.Error().Err(err).Msg("load user profile failed")
					continue
				}
				m.apply(gen, StateAuthenticated, ident)
			case remote.EventSignedOut:
				m.apply(gen, StateUnauthenticated, nil)
			}
		}
	}()
}

// loadIdentity reads the profile row of userID with its school.
func (m *Manager) loadIdentity(ctx context.Context, userID string) (*model.Identity, error) {
	u, err := m.remote.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errProfileNotFound
	}
	if !u.Role.Valid() {
		return nil, fmt.Errorf("user %s has unknown role %q", u.ID, u.Role)
	}
	return model.IdentityFromUser(u), nil
}

// apply installs state and identity if gen is still current.
func (m *Manager) apply(gen uint64, state State, ident *model.Identity) bool {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		m.log.Debug().Uint64("generation", gen).Msg("stale session update dropped")
		return false
	}
	m.state = state
	m.identity = ident
	m.mu.Unlock()
	m.notify()
	return true
}

func (m *Manager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// Login signs in with email and password and reports success. Failures are
// logged, never returned. In fixture mode the saved identity always agrees
// with the outcome: a success is saved, a failure clears it.
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	gen := m.generation()
	m.apply(gen, StateAuthenticating, nil)

	remoteMode := m.flag.Get()
	var ident *model.Identity
	var ok bool
	if remoteMode {
		ident, ok = m.loginRemote(ctx, email, password)
	} else {
		ident, ok = m.loginDemo(ctx, email, password)
	}

	if !ok {
		if m.apply(gen, StateUnauthenticated, nil) && !remoteMode {
			m.forgetDemoIdentity(ctx)
		}
		return false
	}
	if !m.apply(gen, StateAuthenticated, ident) {
		return false
	}
	if !remoteMode {
		m.saveDemoIdentity(ctx, gen, ident)
	}
	return true
}

func (m *Manager) loginRemote(ctx context.Context, email, password string) (*model.Identity, bool) {
	sess, err := m.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		m.log.Warn().Err(err).Str("email", email).Msg("login failed")
		return nil, false
	}

	ident, err := m.loadIdentity(ctx, sess.User.ID)
	if err != nil {
		m.log.Error().Err(err).Str("user_id", sess.User.ID).Msg("load user profile failed")
		if err := m.auth.SignOut(ctx); err != nil {
			m.log.Warn().Err(err).Msg("sign out after failed profile load")
		}
		return nil, false
	}
	return ident, true
}

func (m *Manager) loginDemo(ctx context.Context, email, password string) (*model.Identity, bool) {
	if m.opts.DemoLoginDelay > 0 {
		t := time.NewTimer(m.opts.DemoLoginDelay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, false
		}
	}

	ident, ok := demoIdentity(email, password)
	if !ok {
		m.log.Info().Str("email", email).Msg("demo login rejected")
		return nil, false
	}
	return ident, true
}

// saveDemoIdentity persists an applied demo identity. A mode switch that
// lands while the write is in flight has already cleared the key, so the
// write is undone.
func (m *Manager) saveDemoIdentity(ctx context.Context, gen uint64, ident *model.Identity) {
	ctx = context.WithoutCancel(ctx)
	raw, err := json.Marshal(ident)
	if err != nil {
		m.log.Error().Err(err).Msg("marshal identity snapshot failed")
		return
	}
	if err := m.store.Set(ctx, config.CacheKey.IdentitySnapshot, string(raw)); err != nil {
		m.log.Warn().Err(err).Msg("persist identity snapshot failed")
		return
	}
	if m.generation() != gen {
		m.forgetDemoIdentity(ctx)
	}
}

func (m *Manager) forgetDemoIdentity(ctx context.Context) {
	if err := m.store.Delete(context.WithoutCancel(ctx), config.CacheKey.IdentitySnapshot); err != nil {
		m.log.Warn().Err(err).Msg("clear identity snapshot failed")
	}
}

// Logout always ends unauthenticated. In database mode the remote sign-out
// runs in the background.
func (m *Manager) Logout(ctx context.Context) {
	if m.flag.Get() {
		go func() {
			if err := m.auth.SignOut(m.base); err != nil {
				m.log.Warn().Err(err).Msg("remote sign out failed")
			}
		}()
	} else {
		m.forgetDemoIdentity(ctx)
	}
	m.apply(m.generation(), StateUnauthenticated, nil)
}

// Watch streams snapshots after every change until ctx is done. Slow readers
// only see the latest snapshot.
func (m *Manager) Watch(ctx context.Context) <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	ch <- m.Current()

	m.watchMu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = ch
	m.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		m.watchMu.Lock()
		defer m.watchMu.Unlock()
		if c, ok := m.watchers[id]; ok {
			delete(m.watchers, id)
			close(c)
		}
	}()
	return ch
}

func (m *Manager) notify() {
	snap := m.Current()

	m.watchMu.Lock()
	defer m.watchMu.Unlock()
	for _, ch := range m.watchers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
