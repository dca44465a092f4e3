package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/middleware"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/session"
	"github.com/stemsi/cbity-backend/internal/validator"
)

// AuthHandler handles login, logout, signup and email verification.
type AuthHandler struct {
	sessions *session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Login godoc
// POST /api/v1/auth/login
// Signs in against the demo allow-list or the remote authenticator, depending
// on the active mode.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if !h.sessions.Login(c.Request.Context(), req.Email, req.Password) {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	snap := h.sessions.Current()
	response.Success(c, http.StatusOK, gin.H{"user": snap.Identity})
}

// Logout godoc
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the signed-in identity.
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"user": middleware.GetIdentity(c)})
}

// Signup godoc
// POST /api/v1/auth/signup
// Registers a school and its administrator. Database mode only.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res := h.sessions.Signup(c.Request.Context(), req)
	if res.Success {
		response.Success(c, http.StatusCreated, res)
		return
	}
	if !h.sessions.UseDatabase() {
		response.FailWithMessage(c, http.StatusPreconditionFailed, response.ErrRemoteModeRequired, res.Message)
		return
	}
	response.FailWithMessage(c, http.StatusUnprocessableEntity, response.ErrSignupFailed, res.Message)
}

// Verify godoc
// GET /api/v1/auth/verify?token=...&type=signup
// Confirms the email link sent at signup.
func (h *AuthHandler) Verify(c *gin.Context) {
	res := h.sessions.VerifyEmail(c.Request.Context(), c.Query("token"), c.Query("type"))
	if !res.Success {
		response.FailWithMessage(c, http.StatusBadRequest, response.ErrVerificationFailed, res.Message)
		return
	}
	response.Success(c, http.StatusOK, res)
}
