package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/middleware"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/response"
)

// schoolScope confines a school filter to the caller's own school. Super
// admins keep whatever they asked for. Anyone else without a school would
// see every school through an empty filter, so they get 403 and ok is false.
func schoolScope(c *gin.Context, requested string) (scope string, ok bool) {
	ident := middleware.GetIdentity(c)
	if ident == nil || ident.Role == model.RoleSuperAdmin {
		return requested, true
	}
	if ident.SchoolID == "" {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return "", false
	}
	return ident.SchoolID, true
}

// visibleTo reports whether a record owned by schoolID is within scope. An
// empty scope sees everything; records without a school are shared.
func visibleTo(scope string, schoolID *string) bool {
	return scope == "" || schoolID == nil || *schoolID == scope
}

// optional turns "" into nil.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
