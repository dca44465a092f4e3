package model

// SignupRequest is the school registration form.
type SignupRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Phone           string `json:"phone" binding:"required,max=50"`
	SchoolName      string `json:"schoolName" binding:"required,max=255"`
	Subdomain       string `json:"subdomain" binding:"required,subdomain"`
	Plan            string `json:"plan" binding:"omitempty,oneof=starter professional enterprise"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	AgreeToTerms    bool   `json:"agreeToTerms" binding:"required"`
}

// SignupResult is the outcome of a signup attempt. Message is always set and
// is meant to be shown to the user as-is.
type SignupResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyResult is the outcome of an email verification attempt.
type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// ModeRequest toggles the active data source.
type ModeRequest struct {
	UseDatabase *bool `json:"use_database" binding:"required"`
}
