package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Config is the static configuration of the shell. It is loaded once at
// startup and never mutated afterwards.
type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"3000" validate:"required,numeric"`
	BaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:3000" validate:"required,url"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Identity provider tenant.
	TenantDomain string `env:"IDP_DOMAIN" validate:"required"`
	ClientID     string `env:"IDP_CLIENT_ID" validate:"required"`
	ClientSecret string `env:"IDP_CLIENT_SECRET"`
	RedirectURL  string `env:"IDP_REDIRECT_URL" validate:"omitempty,url"`
	Issuer       string `env:"IDP_ISSUER" validate:"omitempty,url"`

	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"redis" validate:"oneof=redis memory"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`

	RedisAddr     string `env:"REDIS_ADDR" validate:"required_if=SessionBackend redis"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from the environment. A .env file in the
// working directory is honoured when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.TenantDomain = tenantHost(c.TenantDomain)

	if c.RedirectURL == "" {
		c.RedirectURL = c.BaseURL + "/callback"
	}
	if c.Issuer == "" && c.TenantDomain != "" {
		c.Issuer = "https://" + c.TenantDomain + "/"
	}
}

// tenantHost reduces IDP_DOMAIN to a bare host, accepting values pasted
// with a scheme or trailing path.
func tenantHost(domain string) string {
	domain = strings.TrimSpace(domain)
	if strings.Contains(domain, "://") {
		if u, err := url.Parse(domain); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return strings.TrimRight(domain, "/")
}

// SecureCookies reports whether the shell is served over HTTPS, in which
// case every cookie it issues is Secure.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(c.BaseURL), "https://")
}

// Validate reports every invalid field in one error.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
}
