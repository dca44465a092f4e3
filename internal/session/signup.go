package session

import (
	"context"
	"strings"

	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/remote"
)

const (
	msgSubdomainTaken  = "This domain is already taken. Please choose another one."
	msgSchoolFailed    = "Failed to create school. Please try again."
	msgProfileFailed   = "Failed to create user profile. Please contact support."
	msgSignupSucceeded = "Account created successfully! Please check your email to verify your account before signing in."
	msgSignupNeedsDB   = "Signup requires database mode."
)

// Signup registers a school together with its administrator. The steps run in
// order and the first failure ends the call. A failed school insert deletes
// the fresh credential; a failed profile insert leaves credential and school
// in place for support to reconcile.
func (m *Manager) Signup(ctx context.Context, req model.SignupRequest) model.SignupResult {
	if !m.flag.Get() {
		return model.SignupResult{Message: msgSignupNeedsDB}
	}

	email := strings.TrimSpace(req.Email)
	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	plan := req.Plan
	if plan == "" {
		plan = model.PlanStarter
	}
	log := m.log.With().Str("email", email).Str("subdomain", subdomain).Logger()

	// ─── Step 1: subdomain ───
	taken, err := m.remote.SubdomainTaken(ctx, subdomain)
	if err != nil {
		log.Error().Err(err).Msg("subdomain lookup failed")
		return model.SignupResult{Message: err.Error()}
	}
	if taken {
		return model.SignupResult{Message: msgSubdomainTaken}
	}

	// ─── Step 2: credential ───
	authUser, err := m.auth.SignUp(ctx, email, req.Password, remote.SignUpOptions{
		RedirectTo: m.opts.VerifyRedirectURL,
		Data: map[string]any{
			"name":        req.Name,
			"role":        string(model.RoleSchoolAdmin),
			"school_name": req.SchoolName,
			"subdomain":   subdomain,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("credential sign up failed")
		return model.SignupResult{Message: err.Error()}
	}
	ownerID := authUser.ID

	// ─── Step 3: school ───
	school, err := m.remote.CreateSchool(ctx, &model.School{
		Name:         req.SchoolName,
		Email:        email,
		Phone:        req.Phone,
		Subdomain:    subdomain,
		OwnerID:      &ownerID,
		Subscription: plan,
		Status:       model.StatusPendingVerification,
	})
	if err != nil {
		log.Error().Err(err).Msg("create school failed")
		if derr := m.auth.DeleteUser(ctx, ownerID); derr != nil {
			log.Warn().Err(derr).Str("orphan_user_id", ownerID).Msg("credential cleanup failed")
		}
		return model.SignupResult{Message: msgSchoolFailed}
	}

	// ─── Step 4: profile ───
	schoolID := school.ID
	_, err = m.remote.CreateUser(ctx, &model.User{
		ID:       ownerID,
		Email:    email,
		Name:     req.Name,
		Role:     model.RoleSchoolAdmin,
		SchoolID: &schoolID,
		Phone:    req.Phone,
		Status:   model.StatusPendingVerification,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("orphan_user_id", ownerID).
			Str("orphan_school_id", schoolID).
			Msg("create user profile failed")
		return model.SignupResult{Message: msgProfileFailed}
	}

	log.Info().Str("school_id", schoolID).Msg("school signed up")
	return model.SignupResult{Success: true, Message: msgSignupSucceeded}
}
