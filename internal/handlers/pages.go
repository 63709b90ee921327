package handlers

import (
	"net/http"

	"github.com/epeers/fundsight/internal/middleware"
	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/state"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// nav entries, matched by the layout template
const (
	navNone      = ""
	navHome      = "home"
	navPortfolio = "portfolio"
	navFunds     = "funds"
)

// pageData is the base template data every page needs
func pageData(snap state.State, title, active string) gin.H {
	return gin.H{
		"Title":  title,
		"Active": active,
		"User":   signedInAs(snap.Session),
	}
}

func signedInAs(s state.SessionState) string {
	if !s.Authenticated {
		return ""
	}
	if name := s.User.DisplayName(); name != "" {
		return name
	}
	return "Account"
}

// loadPortfolio runs the fetches a page needs and returns the resulting
// state. Failures are recorded per fetch in the returned state.
func loadPortfolio(c *gin.Context, store *state.Store) state.State {
	if err := store.EnsureLoaded(c.Request.Context()); err != nil {
		log.Warnf("Portfolio fetch failed: %v", err)
		_ = c.Error(err)
	}
	return store.Snapshot()
}

// renderFetchState renders the loading or error page when f did not
// succeed, and reports whether it did so.
func renderFetchState(c *gin.Context, snap state.State, f state.FetchState, title, active string) bool {
	switch f.Status {
	case models.StatusFailed:
		data := pageData(snap, title, active)
		data["Error"] = f.Error
		c.HTML(http.StatusBadGateway, "error.html", data)
		return true
	case models.StatusLoading, models.StatusIdle:
		data := pageData(snap, title, active)
		data["Refresh"] = true
		c.HTML(http.StatusOK, "loading.html", data)
		return true
	}
	return false
}

// abortFetchState is the JSON counterpart of renderFetchState
func abortFetchState(c *gin.Context, f state.FetchState) bool {
	switch f.Status {
	case models.StatusFailed:
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "upstream_error",
			Message: f.Error,
		})
		return true
	case models.StatusLoading, models.StatusIdle:
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "loading",
			Message: "data is still loading",
		})
		return true
	}
	return false
}

// NotFound renders the fallback page, or a JSON 404 under /api
func NotFound(store *state.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if middleware.IsAPIRequest(c) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "no such endpoint",
			})
			return
		}
		c.HTML(http.StatusNotFound, "notfound.html", pageData(store.Snapshot(), "Not Found", navNone))
	}
}
