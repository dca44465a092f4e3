package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/fixture"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/modeflag"
	"github.com/stemsi/cbity-backend/internal/remote"
	"github.com/stemsi/cbity-backend/internal/remote/remotetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID    = "7b0c7f1e-0000-4000-8000-000000000001"
	adminEmail = "principal@greenfield.edu.ng"
	schoolID   = "7b0c7f1e-0000-4000-8000-0000000000aa"
)

type harness struct {
	store  *localstore.MemoryStore
	auth   *remotetest.Authenticator
	remote *remotetest.Store
	mgr    *Manager
}

func newHarness(t *testing.T, useDatabase bool) *harness {
	t.Helper()
	ctx := context.Background()

	h := &harness{
		store:  localstore.NewMemoryStore(),
		auth:   remotetest.NewAuthenticator(),
		remote: remotetest.NewStore(),
	}
	if useDatabase {
		require.NoError(t, h.store.Set(ctx, config.CacheKey.ModeFlag, "true"))
	}

	sid := schoolID
	h.remote.Schools = []model.School{{ID: schoolID, Name: "Greenfield Academy", Subdomain: "greenfield", Status: model.StatusActive}}
	h.remote.Users = []model.User{{
		ID:       adminID,
		Email:    adminEmail,
		Name:     "Mrs. Okafor",
		Role:     model.RoleSchoolAdmin,
		SchoolID: &sid,
		Status:   model.StatusActive,
	}}
	h.auth.AddAccount(adminID, adminEmail, "s3cret-pass")

	flag := modeflag.New(h.store, zerolog.Nop())
	h.mgr = NewManager(flag, h.store, h.auth, h.remote, Options{VerifyRedirectURL: "http://localhost:5173/verify-email"}, zerolog.Nop())
	t.Cleanup(h.mgr.Close)
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	h.mgr.Start(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.mgr.WaitReady(ctx))
}

// ─── Startup ───

func TestStartFixtureModeWithoutSnapshot(t *testing.T) {
	h := newHarness(t, false)
	h.start(t)

	snap := h.mgr.Current()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.UseDatabase)
	assert.True(t, snap.Ready)
	assert.Empty(t, h.auth.Calls())
}

func TestStartFixtureModeRestoresSnapshot(t *testing.T) {
	h := newHarness(t, false)
	ident, ok := demoIdentity("teacher@lagosmodel.edu.ng", DemoPassword)
	require.True(t, ok)
	raw, err := json.Marshal(ident)
	require.NoError(t, err)
	require.NoError(t, h.store.Set(context.Background(), config.CacheKey.IdentitySnapshot, string(raw)))

	h.start(t)

	snap := h.mgr.Current()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "teacher_1", snap.Identity.ID)
	assert.Equal(t, model.RoleTeacher, snap.Identity.Role)
}

func TestStartFixtureModeIgnoresMalformedSnapshot(t *testing.T) {
	for _, raw := range []string{"{", `{"id":"x","role":"janitor"}`, `"string"`} {
		h := newHarness(t, false)
		require.NoError(t, h.store.Set(context.Background(), config.CacheKey.IdentitySnapshot, raw))
		h.start(t)
		assert.Equal(t, StateUnauthenticated, h.mgr.Current().State, raw)
	}
}

func TestStartRemoteModeRestoresSession(t *testing.T) {
	h := newHarness(t, true)
	h.auth.SetSession(adminID, adminEmail)
	h.start(t)

	snap := h.mgr.Current()
	assert.Equal(t, StateAuthenticated, snap.State)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "Greenfield Academy", snap.Identity.School)
	assert.Equal(t, "greenfield", snap.Identity.Subdomain)
	assert.Equal(t, 1, h.auth.Subscribers())
}

func TestStartRemoteModeWithoutSession(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	assert.True(t, h.auth.Called("GetSession"))
}

func TestStartRemoteModeSessionErrorEndsUnauthenticated(t *testing.T) {
	h := newHarness(t, true)
	h.auth.SetSession(adminID, adminEmail)
	h.auth.SetErr("GetSession", errors.New("network unreachable"))
	h.start(t)
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
}

func TestStartRemoteModeMissingProfile(t *testing.T) {
	h := newHarness(t, true)
	h.auth.SetSession("no-such-user", "ghost@example.com")
	h.start(t)
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
}

// ─── Mode changes ───

func TestPersistedModeSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.start(t)
	h.mgr.SetMode(ctx, true)
	h.mgr.Close()

	restarted := NewManager(modeflag.New(h.store, zerolog.Nop()), h.store, h.auth, h.remote, Options{}, zerolog.Nop())
	t.Cleanup(restarted.Close)
	before := len(h.auth.Calls())
	restarted.Start(ctx)

	wctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, restarted.WaitReady(wctx))
	assert.True(t, restarted.UseDatabase())
	assert.Contains(t, h.auth.Calls()[before:], "GetSession")
}

func TestStaleRestoreIsDiscardedAfterModeSwitch(t *testing.T) {
	h := newHarness(t, true)
	h.auth.SetSession(adminID, adminEmail)
	gate := make(chan struct{})
	h.auth.SessionGate = gate

	h.mgr.Start(context.Background())
	assert.Equal(t, StateAuthenticating, h.mgr.Current().State)

	h.mgr.SetMode(context.Background(), false)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.mgr.WaitReady(ctx))

	close(gate)
	require.Eventually(t, func() bool { return h.remote.Called("GetUser") }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	snap := h.mgr.Current()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.Identity)
	assert.False(t, snap.UseDatabase)
}

func TestSetModeTearsDownSubscription(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	require.Equal(t, 1, h.auth.Subscribers())

	h.mgr.SetMode(context.Background(), false)
	assert.Equal(t, 0, h.auth.Subscribers())

	raw, ok, err := h.store.Get(context.Background(), config.CacheKey.ModeFlag)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", raw)
}

func TestSetModeDiscardsDemoIdentity(t *testing.T) {
	h := newHarness(t, false)
	h.start(t)
	require.True(t, h.mgr.Login(context.Background(), "student@lagosmodel.edu.ng", DemoPassword))

	h.mgr.SetMode(context.Background(), true)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, h.mgr.WaitReady(ctx))

	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	_, ok, _ := h.store.Get(context.Background(), config.CacheKey.IdentitySnapshot)
	assert.False(t, ok)
}

func TestSetModeSameValueIsNoop(t *testing.T) {
	h := newHarness(t, false)
	h.start(t)
	require.True(t, h.mgr.Login(context.Background(), "admin@lagosmodel.edu.ng", DemoPassword))

	h.mgr.SetMode(context.Background(), false)
	assert.Equal(t, StateAuthenticated, h.mgr.Current().State)
}

func TestSignedOutEventClearsIdentity(t *testing.T) {
	h := newHarness(t, true)
	h.auth.SetSession(adminID, adminEmail)
	h.start(t)
	require.Equal(t, StateAuthenticated, h.mgr.Current().State)

	h.auth.Emit(remote.AuthEvent{Event: remote.EventSignedOut})
	assert.Eventually(t, func() bool {
		return h.mgr.Current().State == StateUnauthenticated
	}, time.Second, 5*time.Millisecond)
}

func TestSignedInEventLoadsProfile(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)

	h.auth.Emit(remote.AuthEvent{
		Event:   remote.EventSignedIn,
		Session: &remote.Session{User: remote.AuthUser{ID: adminID, Email: adminEmail}},
	})
	assert.Eventually(t, func() bool {
		s := h.mgr.Current()
		return s.State == StateAuthenticated && s.Identity != nil && s.Identity.ID == adminID
	}, time.Second, 5*time.Millisecond)
}

// ─── Login / logout ───

func TestDemoLoginAllowList(t *testing.T) {
	ctx := context.Background()
	for _, email := range DemoEmails() {
		h := newHarness(t, false)
		h.start(t)
		require.True(t, h.mgr.Login(ctx, email, DemoPassword), email)

		snap := h.mgr.Current()
		assert.Equal(t, StateAuthenticated, snap.State)
		assert.Equal(t, email, snap.Identity.Email)

		_, ok, err := h.store.Get(ctx, config.CacheKey.IdentitySnapshot)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestDemoLoginRejectsUnknownOrWrongPassword(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.start(t)

	assert.False(t, h.mgr.Login(ctx, "student@lagosmodel.edu.ng", "wrong"))
	assert.False(t, h.mgr.Login(ctx, "nobody@lagosmodel.edu.ng", DemoPassword))
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)

	_, ok, _ := h.store.Get(ctx, config.CacheKey.IdentitySnapshot)
	assert.False(t, ok)
	assert.Empty(t, h.auth.Calls())
}

func TestFailedDemoLoginForgetsPreviousUser(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.start(t)

	require.True(t, h.mgr.Login(ctx, "teacher@lagosmodel.edu.ng", DemoPassword))
	_, ok, _ := h.store.Get(ctx, config.CacheKey.IdentitySnapshot)
	require.True(t, ok)

	assert.False(t, h.mgr.Login(ctx, "student@lagosmodel.edu.ng", "wrong"))
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	h.mgr.Close()

	restarted := NewManager(modeflag.New(h.store, zerolog.Nop()), h.store, h.auth, h.remote, Options{}, zerolog.Nop())
	t.Cleanup(restarted.Close)
	restarted.Start(ctx)
	wctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, restarted.WaitReady(wctx))

	snap := restarted.Current()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.Identity)
}

func TestDemoLoginOutlivedByModeSwitchSavesNothing(t *testing.T) {
	h := newHarness(t, false)
	h.mgr.opts.DemoLoginDelay = 200 * time.Millisecond
	h.start(t)

	done := make(chan bool, 1)
	go func() {
		done <- h.mgr.Login(context.Background(), "teacher@lagosmodel.edu.ng", DemoPassword)
	}()
	require.Eventually(t, func() bool {
		return h.mgr.Current().State == StateAuthenticating
	}, time.Second, 5*time.Millisecond)

	h.mgr.SetMode(context.Background(), true)

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("login did not return")
	}
	_, ok, _ := h.store.Get(context.Background(), config.CacheKey.IdentitySnapshot)
	assert.False(t, ok)
	assert.NotEqual(t, StateAuthenticated, h.mgr.Current().State)
}

func TestDemoLoginHonoursContextDuringDelay(t *testing.T) {
	h := newHarness(t, false)
	h.mgr.opts.DemoLoginDelay = time.Minute
	h.start(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, h.mgr.Login(ctx, "student@lagosmodel.edu.ng", DemoPassword))
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
}

func TestRemoteLogin(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)

	require.True(t, h.mgr.Login(context.Background(), adminEmail, "s3cret-pass"))
	snap := h.mgr.Current()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, schoolID, snap.Identity.SchoolID)
}

func TestRemoteLoginBadCredentials(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)

	assert.False(t, h.mgr.Login(context.Background(), adminEmail, "nope"))
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	assert.False(t, h.remote.Called("GetUser"))
}

func TestRemoteLoginProfileFailureSignsOut(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	h.remote.SetErr("GetUser", errors.New("relation \"users\" does not exist"))

	assert.False(t, h.mgr.Login(context.Background(), adminEmail, "s3cret-pass"))
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	assert.True(t, h.auth.Called("SignOut"))
}

func TestLogoutFixtureModeClearsSnapshot(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.start(t)
	require.True(t, h.mgr.Login(ctx, "admin@lagosmodel.edu.ng", DemoPassword))

	h.mgr.Logout(ctx)
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	_, ok, _ := h.store.Get(ctx, config.CacheKey.IdentitySnapshot)
	assert.False(t, ok)
}

func TestLogoutRemoteModeSignsOut(t *testing.T) {
	h := newHarness(t, true)
	h.auth.SetSession(adminID, adminEmail)
	h.start(t)

	h.mgr.Logout(context.Background())
	assert.Equal(t, StateUnauthenticated, h.mgr.Current().State)
	assert.Eventually(t, func() bool { return h.auth.Called("SignOut") }, time.Second, 5*time.Millisecond)
}

// ─── Watch ───

func TestWatchDeliversLatestSnapshot(t *testing.T) {
	h := newHarness(t, false)
	h.start(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch := h.mgr.Watch(ctx)

	first := <-ch
	assert.Equal(t, StateUnauthenticated, first.State)

	require.True(t, h.mgr.Login(context.Background(), "student@lagosmodel.edu.ng", DemoPassword))
	var last Snapshot
	require.Eventually(t, func() bool {
		select {
		case last = <-ch:
		default:
		}
		return last.State == StateAuthenticated
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "student_1", last.Identity.ID)

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-ch
		return !open
	}, time.Second, 5*time.Millisecond)
}

func TestDemoIdentityMatchesFixtureSchool(t *testing.T) {
	ident, ok := demoIdentity("student@lagosmodel.edu.ng", DemoPassword)
	require.True(t, ok)
	assert.Equal(t, fixture.DemoSchoolID, ident.SchoolID)
	require.NotNil(t, ident.Profile.Student)
	assert.Equal(t, "SS3A", ident.Profile.Student.Class)

	ident.Name = "changed"
	again, _ := demoIdentity("student@lagosmodel.edu.ng", DemoPassword)
	assert.NotEqual(t, "changed", again.Name)
}
