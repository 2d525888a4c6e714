package provider

import (
	"context"

	"profile-shell/internal/auth"
)

// IdentityProvider is the client side of the external identity provider.
// It owns the login and logout redirects and turns a completed login into
// a user record. It must not create sessions.
type IdentityProvider interface {
	// Name returns the provider identifier used in logs.
	Name() string

	// AuthCodeURL returns the authorization URL the browser is sent to on
	// login. State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code, verifies the ID token
	// and returns the user it describes.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.User, error)

	// LogoutURL returns the provider URL that ends the provider session and
	// sends the browser back to returnTo.
	LogoutURL(returnTo string) string
}
