package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/epeers/fundsight/internal/middleware"
	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/state"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AdminHandler handles operational endpoints
type AdminHandler struct {
	store *state.Store
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(store *state.Store) *AdminHandler {
	return &AdminHandler{
		store: store,
	}
}

// Health handles GET /health
// @Summary Health check
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *AdminHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Refresh handles POST /api/v1/refresh
// @Summary Refetch portfolio data
// @Description Fetch investments and funds again, concurrently. Each list reports its own status; a failed list keeps its previous contents.
// @Tags admin
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.StatusResponse
// @Router /refresh [post]
func (h *AdminHandler) Refresh(c *gin.Context) {
	status := http.StatusOK
	if err := h.store.LoadAll(c.Request.Context()); err != nil {
		log.Warnf("Refresh failed: %v", err)
		_ = c.Error(err)
		status = http.StatusBadGateway
	}

	resp := statusResponse(h.store.Snapshot().Portfolio)
	if resp.Investments == models.StatusFailed || resp.Funds == models.StatusFailed {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// RefreshPage handles POST /refresh from the nav bar. It refetches both
// lists and sends the user back to the page they came from, which shows
// any fetch error.
func (h *AdminHandler) RefreshPage(c *gin.Context) {
	if err := h.store.LoadAll(c.Request.Context()); err != nil {
		log.Warnf("Refresh failed: %v", err)
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, backTo(c.Request.Referer()))
}

// backTo returns the local path of referer, or the home page
func backTo(referer string) string {
	u, err := url.Parse(referer)
	if err != nil || !strings.HasPrefix(u.Path, "/") || u.Path == "/refresh" {
		return middleware.HomePath
	}
	back := u.Path
	if u.RawQuery != "" {
		back += "?" + u.RawQuery
	}
	return back
}
