package app

import (
	"context"
	"net/http"

	"profile-shell/internal/auth/handler"
	"profile-shell/internal/auth/provider"
	"profile-shell/internal/auth/provider/tenant"
	"profile-shell/internal/config"
	"profile-shell/internal/middleware"
	"profile-shell/internal/session"
	"profile-shell/internal/web"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	idp, err := tenant.New(ctx, tenant.Options{
		Domain:       cfg.TenantDomain,
		Issuer:       cfg.Issuer,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
	})
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	router := newRouter(cfg, idp, infra.Sessions)

	return router, infra.Close, nil
}

// newRouter mounts the shell inside the session middleware.
func newRouter(
	cfg config.Config,
	idp provider.IdentityProvider,
	sessions session.Store,
) *gin.Engine {
	authHandler := handler.NewHandler(idp, sessions, handler.Options{
		SessionTTL:    cfg.SessionTTL,
		ReturnTo:      cfg.BaseURL,
		SecureCookies: cfg.SecureCookies(),
	})
	authMiddleware := middleware.NewAuthMiddleware(sessions)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler.RegisterRoutes(router)

	shell := router.Group("/")
	shell.Use(middleware.GinLoadSession(authMiddleware))
	web.NewHandler().RegisterRoutes(shell, middleware.GinRequireAuth(authMiddleware))

	return router
}
