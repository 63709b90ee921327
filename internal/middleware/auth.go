package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/epeers/fundsight/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	// LoginPath is where unauthenticated page requests are sent
	LoginPath = "/login"
	// HomePath is where an authenticated visitor to the login page is sent
	HomePath = "/"

	apiPrefix = "/api/"
)

// Session reports whether a usable session exists. *state.Store
// implements it; a token found only in durable storage counts.
type Session interface {
	HasSession(ctx context.Context) bool
}

// RequireSession guards protected routes. It is evaluated on every request,
// so a login or logout takes effect on the next request without any
// further wiring. Pages are redirected to the login page; API calls get 401.
func RequireSession(s Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.HasSession(c.Request.Context()) {
			c.Next()
			return
		}

		if IsAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "authentication required",
			})
			return
		}
		c.Redirect(http.StatusFound, LoginPath)
		c.Abort()
	}
}

// RedirectIfAuthenticated keeps signed-in users off the login page
func RedirectIfAuthenticated(s Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.HasSession(c.Request.Context()) {
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAPIRequest reports whether the request targets the JSON API
func IsAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, apiPrefix)
}
