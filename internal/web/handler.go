package web

import (
	"net/http"

	"profile-shell/internal/auth"
	"profile-shell/internal/logger"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

const pageTitle = "Profile"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the shell. The session state must already be in
// the request context; requireAuth guards the JSON profile.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	r.GET("/", h.Home)
	r.GET("/api/me", requireAuth, h.Me)
}

func (h *Handler) Home(c *gin.Context) {
	state := auth.StateFromContext(c.Request.Context())
	if state.Authenticated && state.User == nil {
		logger.Warn("authenticated state without user, rendering logged out", nil)
	}

	render(c, http.StatusOK, Page(pageTitle, Shell(state)))
}

func (h *Handler) Me(c *gin.Context) {
	state := auth.StateFromContext(c.Request.Context())
	if !state.LoggedIn() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, state.User)
}

func render(c *gin.Context, status int, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)

	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("render failed", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
	}
}
