package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"profile-shell/internal/auth"
	"profile-shell/internal/config"
	"profile-shell/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	logins  int
	logouts int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) AuthCodeURL(state, _ string) string {
	s.logins++
	return "https://idp.test/authorize?state=" + url.QueryEscape(state)
}

func (s *stubProvider) ExchangeCode(context.Context, string, string) (*auth.User, error) {
	return &auth.User{
		Subject:   "auth0|ana",
		Name:      "Ana Lopez",
		GivenName: "Ana",
		Picture:   "url",
	}, nil
}

func (s *stubProvider) LogoutURL(returnTo string) string {
	s.logouts++
	return "https://idp.test/v2/logout?returnTo=" + url.QueryEscape(returnTo)
}

func init() {
	gin.SetMode(gin.TestMode)
}

type browser struct {
	t      *testing.T
	router http.Handler
	jar    map[string]string
}

func (b *browser) do(method, target string) *httptest.ResponseRecorder {
	b.t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for name, value := range b.jar {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.jar, c.Name)
			continue
		}
		b.jar[c.Name] = c.Value
	}
	return w
}

func TestLoginLogoutFlow(t *testing.T) {
	idp := &stubProvider{}
	cfg := config.Config{
		BaseURL:    "http://localhost:3000",
		SessionTTL: time.Hour,
	}
	b := &browser{
		t:      t,
		router: newRouter(cfg, idp, session.NewMemoryStore()),
		jar:    map[string]string{},
	}

	w := b.do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log In")
	assert.Contains(t, w.Body.String(), `<section id="profile"></section>`)

	w = b.do(http.MethodGet, "/api/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())

	w = b.do(http.MethodGet, "/login")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, 1, idp.logins)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	w = b.do(http.MethodGet, "/callback?code=abc&state="+url.QueryEscape(state))
	require.Equal(t, http.StatusFound, w.Code)
	require.Contains(t, b.jar, session.InsecureCookieName)

	w = b.do(http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hola Ana")
	assert.Contains(t, w.Body.String(), `<img src="url" alt="Ana Lopez"`)
	assert.Contains(t, w.Body.String(), "Log Out")

	w = b.do(http.MethodGet, "/api/me")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"given_name":"Ana"`)

	w = b.do(http.MethodPost, "/logout")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 1, idp.logouts)
	assert.Contains(t, w.Header().Get("Location"), url.QueryEscape("http://localhost:3000"))
	assert.NotContains(t, b.jar, session.InsecureCookieName)

	w = b.do(http.MethodGet, "/")
	assert.Contains(t, w.Body.String(), "Log In")
	assert.NotContains(t, w.Body.String(), "Hola")
}

func TestHealth(t *testing.T) {
	r := newRouter(config.Config{}, &stubProvider{}, session.NewMemoryStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
