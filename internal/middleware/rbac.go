package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
)

// RequireRole checks that the signed-in identity has one of roles. It must run
// after RequireIdentity.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthenticated)
			return
		}

		if !slices.Contains(roles, ident.Role) {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequireNonRelease blocks the route when gin runs in release mode.
func RequireNonRelease() gin.HandlerFunc {
	return func(c *gin.Context) {
		if gin.Mode() == gin.ReleaseMode {
			response.AbortFail(c, http.StatusForbidden, response.ErrModeToggleLocked)
			return
		}
		c.Next()
	}
}
