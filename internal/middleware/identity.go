package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
	"github.com/stemsi/cbity-backend/internal/session"
)

const (
	// ContextKeyIdentity is the Gin context key for the signed-in identity.
	ContextKeyIdentity = "identity"
)

// SessionReader is the part of session.Manager the middleware needs.
type SessionReader interface {
	Current() session.Snapshot
}

// RequireIdentity rejects the request unless a user is signed in and stores
// the identity in the Gin context.
func RequireIdentity(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := sessions.Current()
		if snap.State != session.StateAuthenticated || snap.Identity == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		c.Set(ContextKeyIdentity, snap.Identity)
		c.Next()
	}
}

// GetIdentity retrieves the identity stored by RequireIdentity.
func GetIdentity(c *gin.Context) *model.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	ident, ok := val.(*model.Identity)
	if !ok {
		return nil
	}
	return ident
}
