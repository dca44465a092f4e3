// Package authn is the credential authenticator of the remote backend:
// bcrypt passwords in PostgreSQL, signed session tokens kept in the local
// store, one-time verification tokens in Redis and auth state changes
// broadcast over Redis PubSub.
package authn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/remote"
	"golang.org/x/crypto/bcrypt"
)

// Errors reported to the user verbatim.
var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrEmailNotConfirmed  = errors.New("Email not confirmed")
	ErrUserExists         = errors.New("User already registered")
	ErrOTPInvalid         = errors.New("Token has expired or is invalid")
	ErrWeakPassword       = errors.New("Password should be at least 8 characters")
)

const minPasswordLength = 8

// Service implements remote.Authenticator.
type Service struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	store  localstore.Store
	mailer Mailer
	cfg    *config.Config
	tokens *tokenIssuer
	log    zerolog.Logger
}

var _ remote.Authenticator = (*Service)(nil)

// NewService creates a new authenticator.
func NewService(pool *pgxpool.Pool, rdb *redis.Client, store localstore.Store, mailer Mailer, cfg *config.Config, log zerolog.Logger) *Service {
	return &Service{
		pool:   pool,
		rdb:    rdb,
		store:  store,
		mailer: mailer,
		cfg:    cfg,
		tokens: &tokenIssuer{secret: []byte(cfg.JWTSecret), expiry: cfg.JWTExpiry, now: time.Now},
		log:    log.With().Str("component", "authn").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

func (s *Service) getUser(ctx context.Context, id string) (*remote.AuthUser, error) {
	u := &remote.AuthUser{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, confirmed_at, metadata FROM auth_users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.ConfirmedAt, &u.Data)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetSession restores the session persisted by the last sign-in. A missing,
// expired or revoked token yields nil, nil and is cleared.
func (s *Service) GetSession(ctx context.Context) (*remote.Session, error) {
	raw, ok, err := s.store.Get(ctx, config.CacheKey.AuthSession)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return nil, nil
	}

	claims, err := s.tokens.parse(raw)
	if err != nil {
		s.log.Debug().Err(err).Msg("discarding stale session token")
		_ = s.store.Delete(ctx, config.CacheKey.AuthSession)
		return nil, nil
	}

	u, err := s.getUser(ctx, claims.Subject)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = s.store.Delete(ctx, config.CacheKey.AuthSession)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}

	return &remote.Session{Token: raw, ExpiresAt: claims.ExpiresAt.Time, User: *u}, nil
}

// SignInWithPassword checks the credential, persists a new session token and
// announces the sign-in.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*remote.Session, error) {
	var hash string
	u := &remote.AuthUser{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, confirmed_at, metadata FROM auth_users WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Email, &hash, &u.ConfirmedAt, &u.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.ConfirmedAt == nil {
		return nil, ErrEmailNotConfirmed
	}

	token, expiresAt, err := s.tokens.issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, config.CacheKey.AuthSession, token); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	session := &remote.Session{Token: token, ExpiresAt: expiresAt, User: *u}
	s.publish(ctx, remote.AuthEvent{Event: remote.EventSignedIn, Session: session})
	return session, nil
}

// SignUp creates an unconfirmed credential and mails a verification link
// pointing at opts.RedirectTo.
func (s *Service) SignUp(ctx context.Context, email, password string, opts remote.SignUpOptions) (*remote.AuthUser, error) {
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}

	u := &remote.AuthUser{}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO auth_users (email, password_hash, metadata) VALUES ($1, $2, $3)
		 RETURNING id, email, confirmed_at, metadata`,
		email, hash, data,
	).Scan(&u.ID, &u.Email, &u.ConfirmedAt, &u.Data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create credential: %w", err)
	}

	tokenHash := newTokenHash()
	if err := s.rdb.Set(ctx, config.CacheKey.OTPKey(remote.OTPTypeSignup, tokenHash), u.ID, s.cfg.OTPTTL).Err(); err != nil {
		return nil, fmt.Errorf("store verification token: %w", err)
	}

	redirect := opts.RedirectTo
	if redirect == "" {
		redirect = s.cfg.VerifyRedirectURL()
	}
	link, err := verificationLink(redirect, tokenHash, remote.OTPTypeSignup)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendVerification(ctx, u.Email, link); err != nil {
		s.log.Error().Err(err).Str("user_id", u.ID).Msg("send verification email failed")
	}

	s.log.Info().Str("user_id", u.ID).Msg("credential created")
	return u, nil
}

// SignOut forgets the persisted session and announces the sign-out.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.store.Delete(ctx, config.CacheKey.AuthSession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.publish(ctx, remote.AuthEvent{Event: remote.EventSignedOut})
	return nil
}

// VerifyOTP consumes a one-time token and confirms its credential.
func (s *Service) VerifyOTP(ctx context.Context, tokenHash, otpType string) (*remote.AuthUser, error) {
	userID, err := s.rdb.GetDel(ctx, config.CacheKey.OTPKey(otpType, tokenHash)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrOTPInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("read verification token: %w", err)
	}

	u := &remote.AuthUser{}
	err = s.pool.QueryRow(ctx,
		`UPDATE auth_users SET confirmed_at = COALESCE(confirmed_at, NOW()), updated_at = NOW()
		 WHERE id = $1 RETURNING id, email, confirmed_at, metadata`, userID,
	).Scan(&u.ID, &u.Email, &u.ConfirmedAt, &u.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOTPInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("confirm credential: %w", err)
	}
	return u, nil
}

// DeleteUser removes a credential.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	return err
}

// CreateConfirmedUser provisions a credential that can sign in right away.
// It backs the admin provisioning command.
func (s *Service) CreateConfirmedUser(ctx context.Context, email, password string) (*remote.AuthUser, error) {
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &remote.AuthUser{}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO auth_users (email, password_hash, confirmed_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash,
		     confirmed_at = COALESCE(auth_users.confirmed_at, NOW()), updated_at = NOW()
		 RETURNING id, email, confirmed_at, metadata`,
		email, hash,
	).Scan(&u.ID, &u.Email, &u.ConfirmedAt, &u.Data)
	if err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}
	return u, nil
}
