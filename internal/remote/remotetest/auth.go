package remotetest

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/cbity-backend/internal/remote"
)

// ErrInvalidCredentials is returned by SignInWithPassword on a mismatch.
var ErrInvalidCredentials = errors.New("Invalid login credentials")

type account struct {
	password string
	user     remote.AuthUser
}

// Authenticator is an in-memory remote.Authenticator.
type Authenticator struct {
	mu sync.Mutex

	accounts map[string]account
	tokens   map[string]string
	session  *remote.Session
	subs     map[int]chan remote.AuthEvent
	nextSub  int

	Errs  map[string]error
	calls []string

	// SessionGate, when set, makes GetSession block until it is closed.
	SessionGate chan struct{}
}

// NewAuthenticator creates an Authenticator with no accounts.
func NewAuthenticator() *Authenticator {
	return &Authenticator{
		accounts: make(map[string]account),
		tokens:   make(map[string]string),
		subs:     make(map[int]chan remote.AuthEvent),
		Errs:     make(map[string]error),
	}
}

// AddAccount registers a confirmed credential and returns its id.
func (a *Authenticator) AddAccount(id, email, password string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := time.Now()
	a.accounts[email] = account{password: password, user: remote.AuthUser{ID: id, Email: email, ConfirmedAt: &now}}
	return id
}

// SetSession installs a persisted session for userID.
func (a *Authenticator) SetSession(userID, email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = &remote.Session{Token: "tok-" + userID, ExpiresAt: time.Now().Add(time.Hour), User: remote.AuthUser{ID: userID, Email: email}}
}

// SetErr makes method fail with err from now on.
func (a *Authenticator) SetErr(method string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Errs[method] = err
}

// Calls returns the methods invoked so far.
func (a *Authenticator) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.calls)
}

// Called reports whether method was invoked.
func (a *Authenticator) Called(method string) bool {
	return slices.Contains(a.Calls(), method)
}

// TokenFor returns the pending verification token of a signed-up email.
func (a *Authenticator) TokenFor(email string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	for tok, e := range a.tokens {
		if e == email {
			return tok
		}
	}
	return ""
}

// Subscribers returns the number of live subscriptions.
func (a *Authenticator) Subscribers() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.subs)
}

// Emit delivers ev to every live subscription.
func (a *Authenticator) Emit(ev remote.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, ch := range a.subs {
		ch <- ev
	}
}

func (a *Authenticator) enter(method string) error {
	a.calls = append(a.calls, method)
	return a.Errs[method]
}

func (a *Authenticator) GetSession(ctx context.Context) (*remote.Session, error) {
	a.mu.Lock()
	gate := a.SessionGate
	err := a.enter("GetSession")
	a.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil, nil
	}
	s := *a.session
	return &s, nil
}

func (a *Authenticator) SignInWithPassword(_ context.Context, email, password string) (*remote.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.enter("SignInWithPassword"); err != nil {
		return nil, err
	}
	acc, ok := a.accounts[email]
	if !ok || acc.password != password {
		return nil, ErrInvalidCredentials
	}
	a.session = &remote.Session{Token: "tok-" + acc.user.ID, ExpiresAt: time.Now().Add(time.Hour), User: acc.user}
	s := *a.session
	return &s, nil
}

func (a *Authenticator) SignUp(_ context.Context, email, password string, opts remote.SignUpOptions) (*remote.AuthUser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.enter("SignUp"); err != nil {
		return nil, err
	}
	if _, ok := a.accounts[email]; ok {
		return nil, errors.New("User already registered")
	}
	u := remote.AuthUser{ID: uuid.NewString(), Email: email, Data: opts.Data}
	a.accounts[email] = account{password: password, user: u}
	a.tokens[uuid.NewString()] = email
	return &u, nil
}

func (a *Authenticator) SignOut(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.enter("SignOut"); err != nil {
		return err
	}
	a.session = nil
	return nil
}

func (a *Authenticator) VerifyOTP(_ context.Context, tokenHash, otpType string) (*remote.AuthUser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.enter("VerifyOTP"); err != nil {
		return nil, err
	}
	email, ok := a.tokens[tokenHash]
	if !ok || otpType != remote.OTPTypeSignup {
		return nil, errors.New("Token has expired or is invalid")
	}
	delete(a.tokens, tokenHash)
	acc := a.accounts[email]
	now := time.Now()
	acc.user.ConfirmedAt = &now
	a.accounts[email] = acc
	u := acc.user
	return &u, nil
}

func (a *Authenticator) DeleteUser(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.enter("DeleteUser"); err != nil {
		return err
	}
	for email, acc := range a.accounts {
		if acc.user.ID == id {
			delete(a.accounts, email)
		}
	}
	return nil
}

// HasAccount reports whether a credential exists for email.
func (a *Authenticator) HasAccount(email string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.accounts[email]
	return ok
}

func (a *Authenticator) Subscribe(ctx context.Context) (<-chan remote.AuthEvent, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, "Subscribe")
	id := a.nextSub
	a.nextSub++
	ch := make(chan remote.AuthEvent, 8)
	a.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if c, ok := a.subs[id]; ok {
				delete(a.subs, id)
				close(c)
			}
		})
	}
	go func() {
		<-ctx.Done()
		cancel()
	}()
	return ch, cancel
}
