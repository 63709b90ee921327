package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/epeers/fundsight/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct{ ok bool }

func (f *fakeSession) HasSession(context.Context) bool { return f.ok }

func setupGuardRouter(s Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/login", RedirectIfAuthenticated(s), func(c *gin.Context) {
		c.String(http.StatusOK, "login form")
	})

	protected := router.Group("/", RequireSession(s))
	protected.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })
	protected.GET("/api/v1/summary", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return router
}

func serve(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequireSession_RedirectsPagesToLogin(t *testing.T) {
	w := serve(setupGuardRouter(&fakeSession{}), "/")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "dashboard")
}

func TestRequireSession_APIGets401(t *testing.T) {
	w := serve(setupGuardRouter(&fakeSession{}), "/api/v1/summary")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unauthorized", resp.Error)
}

func TestRequireSession_ReevaluatedPerRequest(t *testing.T) {
	s := &fakeSession{}
	router := setupGuardRouter(s)

	assert.Equal(t, http.StatusFound, serve(router, "/").Code)

	s.ok = true
	w := serve(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", w.Body.String())

	s.ok = false
	assert.Equal(t, http.StatusFound, serve(router, "/").Code)
}

func TestRedirectIfAuthenticated(t *testing.T) {
	s := &fakeSession{ok: true}
	router := setupGuardRouter(s)

	w := serve(router, "/login")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	s.ok = false
	w = serve(router, "/login")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), Logger())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := serve(router, "/ping")
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}
