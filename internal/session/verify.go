package session

import (
	"context"

	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/remote"
	"golang.org/x/sync/errgroup"
)

const (
	msgInvalidLink  = "Invalid verification link."
	msgVerified     = "Email verified successfully! You can now sign in to your account."
	msgVerifyFailed = "An error occurred during verification. Please try again."
)

// VerifyEmail confirms a signup link and activates the owner's profile and
// school. Links without a token or of another type are rejected before the
// authenticator is contacted.
func (m *Manager) VerifyEmail(ctx context.Context, token, otpType string) model.VerifyResult {
	if token == "" || otpType != remote.OTPTypeSignup {
		return model.VerifyResult{Message: msgInvalidLink}
	}

	user, err := m.auth.VerifyOTP(ctx, token, remote.OTPTypeSignup)
	if err != nil {
		m.log.Info().Err(err).Msg("verification rejected")
		return model.VerifyResult{Message: err.Error()}
	}
	if user == nil {
		return model.VerifyResult{Message: msgVerifyFailed}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.remote.UpdateUserStatus(gctx, user.ID, model.StatusActive)
	})
	g.Go(func() error {
		return m.remote.UpdateSchoolStatusByOwner(gctx, user.ID, model.StatusActive)
	})
	if err := g.Wait(); err != nil {
		m.log.Error().Err(err).Str("user_id", user.ID).Msg("activate account failed")
		return model.VerifyResult{Message: msgVerifyFailed}
	}

	m.log.Info().Str("user_id", user.ID).Msg("email verified")
	return model.VerifyResult{Success: true, Message: msgVerified}
}
