package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"profile-shell/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// injectState stands in for the session middleware.
func injectState(s auth.State) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(auth.WithState(c.Request.Context(), s))
		c.Next()
	}
}

func requireLoggedIn(c *gin.Context) {
	if !auth.StateFromContext(c.Request.Context()).LoggedIn() {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

func newRouter(s auth.State) *gin.Engine {
	r := gin.New()
	r.Use(injectState(s))
	NewHandler().RegisterRoutes(r, requireLoggedIn)
	return r
}

func TestHomeRendersShell(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(auth.SignedIn(ana())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Hola Ana")
	assert.Contains(t, w.Body.String(), `<section id="profile">`)
}

func TestHomeLoggedOut(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(auth.Anonymous()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log In")
	assert.NotContains(t, w.Body.String(), "Log Out")
}

func TestMe(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter(auth.SignedIn(ana())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var got auth.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Ana", got.GivenName)
	assert.Equal(t, "url", got.Picture)

	w = httptest.NewRecorder()
	newRouter(auth.Anonymous()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
