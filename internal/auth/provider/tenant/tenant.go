package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"profile-shell/internal/auth"
	"profile-shell/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const providerName = "tenant"

// Options describes a hosted identity provider tenant.
type Options struct {
	// Domain is the tenant host, e.g. example.eu.auth0.com.
	Domain string
	// Issuer defaults to https://<Domain>/.
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Provider implements login and logout against an OIDC tenant discovered
// from its issuer. It returns user records only.
type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier

	clientID      string
	logoutBaseURL string
	rpLogout      bool
}

// New initializes the tenant provider using OIDC discovery.
func New(ctx context.Context, opts Options) (*Provider, error) {
	if opts.Domain == "" || opts.ClientID == "" || opts.RedirectURL == "" {
		return nil, errors.New("tenant oauth config missing required fields")
	}

	issuer := opts.Issuer
	if issuer == "" {
		issuer = "https://" + opts.Domain + "/"
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init tenant oidc provider: %w", err)
	}

	var discovery struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	if err := oidcProvider.Claims(&discovery); err != nil {
		return nil, fmt.Errorf("tenant discovery document parse failed: %w", err)
	}

	p := &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			RedirectURL:  opts.RedirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes: []string{
				oidc.ScopeOpenID,
				"profile",
				"email",
			},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{
			ClientID: opts.ClientID,
		}),
		clientID: opts.ClientID,
	}

	if discovery.EndSessionEndpoint != "" {
		p.logoutBaseURL = discovery.EndSessionEndpoint
		p.rpLogout = true
	} else {
		p.logoutBaseURL = strings.TrimSuffix(issuer, "/") + "/v2/logout"
	}

	logger.Info("tenant oidc provider ready", map[string]any{
		"issuer":    issuer,
		"rp_logout": p.rpLogout,
	})

	return p, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL with PKCE parameters.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// ExchangeCode exchanges the authorization code and returns the profile
// carried by the verified ID token. Tokens are discarded afterwards.
func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.User, error) {

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("tenant token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("tenant did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("tenant id_token verification failed: %w", err)
	}

	var user auth.User
	if err := idToken.Claims(&user); err != nil {
		return nil, fmt.Errorf("tenant id_token claims parse failed: %w", err)
	}

	if user.Subject == "" {
		return nil, errors.New("tenant id_token missing sub claim")
	}

	logger.Info("tenant oidc verified", map[string]any{
		"issuer":          idToken.Issuer,
		"subject_present": user.Subject != "",
		"name_present":    user.Name != "",
		"picture_present": user.Picture != "",
		"email_verified":  user.EmailVerified,
		"expiry_unix":     idToken.Expiry.Unix(),
	})

	return &user, nil
}

// LogoutURL returns the tenant logout URL. RP-initiated logout is used when
// the discovery document advertises it.
func (p *Provider) LogoutURL(returnTo string) string {
	q := url.Values{}
	q.Set("client_id", p.clientID)

	if p.rpLogout {
		q.Set("post_logout_redirect_uri", returnTo)
	} else {
		q.Set("returnTo", returnTo)
	}

	sep := "?"
	if strings.Contains(p.logoutBaseURL, "?") {
		sep = "&"
	}
	return p.logoutBaseURL + sep + q.Encode()
}
