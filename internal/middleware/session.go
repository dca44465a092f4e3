package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/cbity-backend/internal/response"
)

// ReadyWaiter is satisfied by session.Manager.
type ReadyWaiter interface {
	WaitReady(ctx context.Context) error
}

// AwaitSession holds requests until the startup session restore has finished.
// Requests still waiting after timeout get 503.
func AwaitSession(sessions ReadyWaiter, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := sessions.WaitReady(ctx); err != nil {
			response.AbortFail(c, http.StatusServiceUnavailable, response.ErrSessionNotReady)
			return
		}
		c.Next()
	}
}
