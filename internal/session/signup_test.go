package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupRequest() model.SignupRequest {
	return model.SignupRequest{
		Name:            "Chinedu Eze",
		Email:           "owner@sunrise.edu.ng",
		Phone:           "+234 803 555 0101",
		SchoolName:      "Sunrise College",
		Subdomain:       "sunrise",
		Plan:            model.PlanProfessional,
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		AgreeToTerms:    true,
	}
}

func TestSignupRequiresDatabaseMode(t *testing.T) {
	h := newHarness(t, false)
	h.start(t)

	res := h.mgr.Signup(context.Background(), signupRequest())
	assert.False(t, res.Success)
	assert.Equal(t, "Signup requires database mode.", res.Message)
	assert.Empty(t, h.remote.Calls())
	assert.Empty(t, h.auth.Calls())
}

func TestSignupSubdomainTakenWritesNothing(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	req := signupRequest()
	req.Subdomain = "greenfield"

	res := h.mgr.Signup(context.Background(), req)
	assert.False(t, res.Success)
	assert.Equal(t, "This domain is already taken. Please choose another one.", res.Message)
	assert.Equal(t, []string{"SubdomainTaken"}, h.remote.Calls())
	assert.False(t, h.auth.Called("SignUp"))
}

func TestSignupCredentialErrorIsVerbatim(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	req := signupRequest()
	req.Email = adminEmail

	res := h.mgr.Signup(context.Background(), req)
	assert.False(t, res.Success)
	assert.Equal(t, "User already registered", res.Message)
	assert.False(t, h.remote.Called("CreateSchool"))
}

func TestSignupSchoolFailureDeletesCredential(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	h.remote.SetErr("CreateSchool", errors.New("insert violates check constraint"))

	res := h.mgr.Signup(context.Background(), signupRequest())
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to create school. Please try again.", res.Message)
	assert.True(t, h.auth.Called("DeleteUser"))
	assert.False(t, h.auth.HasAccount("owner@sunrise.edu.ng"))
	assert.False(t, h.remote.Called("CreateUser"))
}

func TestSignupCleanupFailureIsSwallowed(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	h.remote.SetErr("CreateSchool", errors.New("timeout"))
	h.auth.SetErr("DeleteUser", errors.New("forbidden"))

	res := h.mgr.Signup(context.Background(), signupRequest())
	assert.Equal(t, "Failed to create school. Please try again.", res.Message)
}

func TestSignupProfileFailureKeepsSchool(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	h.remote.SetErr("CreateUser", errors.New("duplicate key"))

	res := h.mgr.Signup(context.Background(), signupRequest())
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to create user profile. Please contact support.", res.Message)
	assert.False(t, h.auth.Called("DeleteUser"))
	assert.Len(t, h.remote.Schools, 2)
}

func TestSignupSuccess(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)

	res := h.mgr.Signup(context.Background(), signupRequest())
	require.True(t, res.Success)
	assert.Equal(t, "Account created successfully! Please check your email to verify your account before signing in.", res.Message)

	require.Len(t, h.remote.Schools, 2)
	school := h.remote.Schools[1]
	assert.Equal(t, "sunrise", school.Subdomain)
	assert.Equal(t, model.StatusPendingVerification, school.Status)
	assert.Equal(t, model.PlanProfessional, school.Subscription)
	require.NotNil(t, school.OwnerID)

	require.Len(t, h.remote.Users, 2)
	user := h.remote.Users[1]
	assert.Equal(t, *school.OwnerID, user.ID)
	assert.Equal(t, model.RoleSchoolAdmin, user.Role)
	assert.Equal(t, model.StatusPendingVerification, user.Status)
	require.NotNil(t, user.SchoolID)
	assert.Equal(t, school.ID, *user.SchoolID)
}

// ─── Verification ───

func TestVerifyEmailRejectsBadLinksWithoutRemoteCall(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)
	before := len(h.auth.Calls())

	for _, tc := range []struct{ token, typ string }{
		{"", remote.OTPTypeSignup},
		{"abc", "recovery"},
		{"abc", ""},
	} {
		res := h.mgr.VerifyEmail(context.Background(), tc.token, tc.typ)
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid verification link.", res.Message)
	}
	assert.Len(t, h.auth.Calls(), before)
}

func TestVerifyEmailUnknownTokenIsVerbatim(t *testing.T) {
	h := newHarness(t, true)
	h.start(t)

	res := h.mgr.VerifyEmail(context.Background(), "deadbeef", remote.OTPTypeSignup)
	assert.False(t, res.Success)
	assert.Equal(t, "Token has expired or is invalid", res.Message)
}

func TestVerifyEmailActivatesAccount(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	h.start(t)
	require.True(t, h.mgr.Signup(ctx, signupRequest()).Success)

	token := h.auth.TokenFor("owner@sunrise.edu.ng")
	require.NotEmpty(t, token)

	res := h.mgr.VerifyEmail(ctx, token, remote.OTPTypeSignup)
	require.True(t, res.Success)
	assert.Equal(t, "Email verified successfully! You can now sign in to your account.", res.Message)
	assert.Equal(t, model.StatusActive, h.remote.Users[1].Status)
	assert.Equal(t, model.StatusActive, h.remote.Schools[1].Status)
}

func TestVerifyEmailUpdateFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	h.start(t)
	require.True(t, h.mgr.Signup(ctx, signupRequest()).Success)
	h.remote.SetErr("UpdateSchoolStatusByOwner", errors.New("connection reset"))

	res := h.mgr.VerifyEmail(ctx, h.auth.TokenFor("owner@sunrise.edu.ng"), remote.OTPTypeSignup)
	assert.False(t, res.Success)
	assert.Equal(t, "An error occurred during verification. Please try again.", res.Message)
}
