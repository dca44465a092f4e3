package model

import (
	"encoding/json"
	"time"
)

// Subscription plans offered at signup.
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// School is a tenant of the platform.
type School struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Email        string          `json:"email,omitempty"`
	Logo         string          `json:"logo,omitempty"`
	Website      string          `json:"website,omitempty"`
	Established  string          `json:"established,omitempty"`
	Motto        string          `json:"motto,omitempty"`
	Subdomain    string          `json:"subdomain,omitempty"`
	OwnerID      *string         `json:"owner_id,omitempty"`
	Subscription string          `json:"subscription"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	Status       string          `json:"status"`
	Settings     json.RawMessage `json:"settings,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateSchoolRequest is the payload for creating a school directly.
type CreateSchoolRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=255"`
	Address      string `json:"address" binding:"omitempty,max=500"`
	Phone        string `json:"phone" binding:"omitempty,max=50"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	Website      string `json:"website" binding:"omitempty,url"`
	Motto        string `json:"motto" binding:"omitempty,max=255"`
	Subdomain    string `json:"subdomain" binding:"omitempty,subdomain"`
	Subscription string `json:"subscription" binding:"omitempty,oneof=starter professional enterprise"`
}
