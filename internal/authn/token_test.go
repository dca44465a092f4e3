package authn

import (
	"bytes"
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)
	issuer := &tokenIssuer{secret: []byte("secret"), expiry: time.Hour, now: func() time.Time { return now }}

	tok, expiresAt, err := issuer.issue("user-1", "admin@lagosmodel.edu.ng")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := issuer.parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin@lagosmodel.edu.ng", claims.Email)
}

func TestTokenRejectsExpiredAndForeign(t *testing.T) {
	now := time.Date(2024, 11, 1, 9, 0, 0, 0, time.UTC)
	issuer := &tokenIssuer{secret: []byte("secret"), expiry: time.Hour, now: func() time.Time { return now }}
	tok, _, err := issuer.issue("user-1", "a@b.co")
	require.NoError(t, err)

	later := &tokenIssuer{secret: []byte("secret"), expiry: time.Hour, now: func() time.Time { return now.Add(2 * time.Hour) }}
	_, err = later.parse(tok)
	assert.Error(t, err)

	other := &tokenIssuer{secret: []byte("other"), expiry: time.Hour, now: func() time.Time { return now }}
	_, err = other.parse(tok)
	assert.Error(t, err)

	_, err = issuer.parse("not-a-token")
	assert.Error(t, err)
}

func TestVerificationLink(t *testing.T) {
	link, err := verificationLink("https://cbity.shop/verify-email", "abc123", "signup")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/verify-email", u.Path)
	assert.Equal(t, "abc123", u.Query().Get("token"))
	assert.Equal(t, "signup", u.Query().Get("type"))
}

func TestNewTokenHashIsUnique(t *testing.T) {
	a, b := newTokenHash(), newTokenHash()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestLogMailerWritesLink(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	require.NoError(t, m.SendVerification(context.Background(), "owner@school.ng", "https://cbity.shop/verify-email?token=x&type=signup"))
	assert.Contains(t, buf.String(), "owner@school.ng")
	assert.Contains(t, buf.String(), "verify-email")
}
