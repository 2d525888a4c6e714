package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinLoadSession adapts AuthMiddleware.LoadSession to Gin.
func GinLoadSession(a *AuthMiddleware) gin.HandlerFunc {
	return bridge(a.LoadSession)
}

// GinRequireAuth adapts AuthMiddleware.RequireAuth to Gin.
func GinRequireAuth(a *AuthMiddleware) gin.HandlerFunc {
	return bridge(a.RequireAuth)
}

// bridge runs a net/http middleware inside a Gin chain. The rest of the
// chain runs only if the middleware calls next.
func bridge(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})

		mw(next).ServeHTTP(c.Writer, c.Request)

		if !called {
			c.Abort()
		}
	}
}
