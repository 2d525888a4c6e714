package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("IDP_DOMAIN", "example.eu.auth0.com")
	t.Setenv("IDP_CLIENT_ID", "client-123")
	t.Setenv("REDIS_ADDR", "localhost:6379")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "http://localhost:3000/callback", cfg.RedirectURL)
	assert.Equal(t, "https://example.eu.auth0.com/", cfg.Issuer)
	assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadNormalizesDomainAndBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("IDP_DOMAIN", "https://tenant.auth0.com/")
	t.Setenv("APP_BASE_URL", "https://shell.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tenant.auth0.com", cfg.TenantDomain)
	assert.Equal(t, "https://tenant.auth0.com/", cfg.Issuer)
	assert.Equal(t, "https://shell.example.com/callback", cfg.RedirectURL)
}

func TestLoadStripsPlainHTTPScheme(t *testing.T) {
	setRequired(t)
	t.Setenv("IDP_DOMAIN", "http://tenant.auth0.com/some/path")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tenant.auth0.com", cfg.TenantDomain)
	assert.Equal(t, "https://tenant.auth0.com/", cfg.Issuer)
}

func TestSecureCookiesFollowsBaseURL(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SecureCookies())

	t.Setenv("APP_BASE_URL", "https://shell.example.com")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookies())
}

func TestLoadKeepsExplicitOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("IDP_ISSUER", "http://127.0.0.1:9000")
	t.Setenv("IDP_REDIRECT_URL", "http://127.0.0.1:3000/auth/cb")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9000", cfg.Issuer)
	assert.Equal(t, "http://127.0.0.1:3000/auth/cb", cfg.RedirectURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadMissingTenant(t *testing.T) {
	t.Setenv("IDP_DOMAIN", "")
	t.Setenv("IDP_CLIENT_ID", "")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TenantDomain")
	assert.Contains(t, err.Error(), "ClientID")
}

func TestRedisAddrOnlyRequiredForRedisBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RedisAddr")

	t.Setenv("SESSION_BACKEND", SessionBackendMemory)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_BACKEND", "cookie")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SessionBackend")
}
