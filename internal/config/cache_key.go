package config

import (
	"fmt"
)

type CacheKeyStruct struct {
	// ModeFlag holds "true" when the remote store is active.
	ModeFlag string
	// IdentitySnapshot holds the JSON identity restored in fixture mode.
	IdentitySnapshot string
	// AuthSession holds the signed session token of the remote authenticator.
	AuthSession string
}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{
		ModeFlag:         "cbt_use_database",
		IdentitySnapshot: "cbt_user",
		AuthSession:      "cbt_auth_session",
	}
}

// OTPKey returns the cache key for a pending one-time verification token.
func (r *CacheKeyStruct) OTPKey(otpType, tokenHash string) string {
	return fmt.Sprintf("auth:otp:%s:%s", otpType, tokenHash)
}

// AuthEventsChannel returns the Redis PubSub channel carrying auth state changes.
func (r *CacheKeyStruct) AuthEventsChannel() string {
	return "auth:events"
}

var CacheKey = NewCacheKeyStruct()
