package handler

import (
	"errors"
	"net/http"
	"time"

	"profile-shell/internal/auth/provider"
	"profile-shell/internal/logger"
	"profile-shell/internal/session"

	"github.com/gin-gonic/gin"
)

const defaultSessionTTL = 24 * time.Hour

// Options configures the login flow.
type Options struct {
	// SessionTTL is the absolute lifetime of a session.
	SessionTTL time.Duration
	// ReturnTo is where the provider sends the browser after logout.
	ReturnTo string
	// SecureCookies marks every cookie Secure. Set it when served over HTTPS.
	SecureCookies bool
}

type Handler struct {
	provider     provider.IdentityProvider
	sessionStore session.Store
	sessionTTL   time.Duration
	returnTo     string
	cookies      session.CookieOptions
	now          func() time.Time
}

func NewHandler(
	idp provider.IdentityProvider,
	sessionStore session.Store,
	opts Options,
) *Handler {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &Handler{
		provider:     idp,
		sessionStore: sessionStore,
		sessionTTL:   ttl,
		returnTo:     opts.ReturnTo,
		cookies:      session.NewCookieOptions(opts.SecureCookies),
		now:          time.Now,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/login", h.Login)
	r.GET("/callback", h.Callback)
	r.POST("/logout", h.Logout)
}

// Login starts the authorization code flow and redirects the browser to
// the provider.
func (h *Handler) Login(c *gin.Context) {
	state, err := generateState(c, h.cookies.Secure)
	if err != nil {
		logger.Error("login state generation failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
		return
	}

	_, codeChallenge, err := generatePKCE(c, h.cookies.Secure)
	if err != nil {
		logger.Error("login pkce generation failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login unavailable"})
		return
	}

	authURL := h.provider.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

// Callback completes the flow started by Login.
func (h *Handler) Callback(c *gin.Context) {
	providerName := h.provider.Name()

	if !validateState(c) {
		clearFlowCookies(c, h.cookies.Secure)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oidc callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})

		clearFlowCookies(c, h.cookies.Secure)
		c.Redirect(http.StatusFound, "/")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oidc callback missing code and error", nil)
		clearFlowCookies(c, h.cookies.Secure)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		clearFlowCookies(c, h.cookies.Secure)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	user, err := h.provider.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	// the verifier is single-use whatever the outcome
	clearFlowCookies(c, h.cookies.Secure)

	if err == nil && user == nil {
		err = errors.New("provider returned no user")
	}
	if err != nil {
		logger.Warn("oidc code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to create session",
		})
		return
	}

	now := h.now()
	sess := session.Session{
		SessionID: sessionID,
		User:      *user,
		CreatedAt: now,
		ExpiresAt: now.Add(h.sessionTTL),
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		logger.Error("session persist failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to persist session",
		})
		return
	}

	session.SetCookie(c.Writer, sessionID, sess.ExpiresAt, h.cookies)

	logger.Info("login succeeded", map[string]any{
		"provider": providerName,
		"sub":      user.Subject,
		"ip":       c.ClientIP(),
	})

	c.Redirect(http.StatusFound, "/")
}

// Logout drops the local session and hands the browser to the provider
// so its session ends too.
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, ok := session.IDFromRequest(c.Request); ok {
		// best-effort: the cookie is cleared regardless
		if err := h.sessionStore.Delete(c.Request.Context(), sessionID); err != nil {
			logger.Warn("session delete failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	session.ClearCookie(c.Writer, h.cookies)

	logger.Info("logout", map[string]any{
		"provider": h.provider.Name(),
		"ip":       c.ClientIP(),
	})

	c.Redirect(http.StatusSeeOther, h.provider.LogoutURL(h.returnTo))
}
