package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/fundsight/internal/fundapi"
	"github.com/epeers/fundsight/internal/middleware"
	"github.com/epeers/fundsight/internal/models"
	"github.com/epeers/fundsight/internal/state"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SessionHandler handles login and logout, as pages and as JSON
type SessionHandler struct {
	store *state.Store
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(store *state.Store) *SessionHandler {
	return &SessionHandler{
		store: store,
	}
}

// LoginPage handles GET /login
func (h *SessionHandler) LoginPage(c *gin.Context) {
	h.store.ClearError()
	data := pageData(h.store.Snapshot(), "Sign in", navNone)
	data["Error"] = ""
	data["Email"] = ""
	c.HTML(http.StatusOK, "login.html", data)
}

// Login handles POST /login. A failed login re-renders the form with the
// error inline; success redirects to the dashboard.
func (h *SessionHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	if err := h.store.Login(c.Request.Context(), email, c.PostForm("password")); err != nil {
		snap := h.store.Snapshot()
		data := pageData(snap, "Sign in", navNone)
		data["Error"] = snap.Session.Error
		data["Email"] = email
		c.HTML(loginFailureStatus(err), "login.html", data)
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.HomePath)
}

// Logout handles POST /logout. The local session is always cleared, so the
// user always lands on the login page.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.store.Logout(c.Request.Context()); err != nil && !errors.Is(err, state.ErrRemoteLogout) {
		log.Errorf("Logout left stored session data behind: %v", err)
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// GetSession handles GET /api/v1/session
// @Summary Current session
// @Description Report whether a session exists and who it belongs to
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.store.HasSession(c.Request.Context())
	c.JSON(http.StatusOK, sessionResponse(h.store.Snapshot().Session))
}

// CreateSession handles POST /api/v1/session
// @Summary Log in
// @Description Authenticate against the FundSight API and keep the session
// @Tags session
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 201 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /session [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	if err := h.store.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		status := loginFailureStatus(err)
		code := "login_failed"
		switch status {
		case http.StatusBadRequest:
			code = "bad_request"
		case http.StatusUnauthorized:
			code = "unauthorized"
		}
		c.JSON(status, models.ErrorResponse{
			Error:   code,
			Message: h.store.Snapshot().Session.Error,
		})
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(h.store.Snapshot().Session))
}

// DeleteSession handles DELETE /api/v1/session
// @Summary Log out
// @Description Invalidate the token upstream and clear the local session. The local session is cleared even when the upstream call fails.
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /session [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	err := h.store.Logout(c.Request.Context())
	if err != nil && !errors.Is(err, state.ErrRemoteLogout) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, sessionResponse(h.store.Snapshot().Session))
}

func sessionResponse(s state.SessionState) models.SessionResponse {
	return models.SessionResponse{
		Authenticated: s.Authenticated,
		User:          s.User,
		Error:         s.Error,
	}
}

// loginFailureStatus maps a login error to the status shown to the client:
// bad input, rejected credentials, or an upstream that could not answer.
func loginFailureStatus(err error) int {
	if errors.Is(err, state.ErrInvalidCredentials) {
		return http.StatusBadRequest
	}
	if status := fundapi.StatusCode(err); status >= 400 && status < 500 {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}
