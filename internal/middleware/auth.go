package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"profile-shell/internal/auth"
	"profile-shell/internal/logger"
	"profile-shell/internal/session"
)

type AuthMiddleware struct {
	Store session.Store
	now   func() time.Time
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store, now: time.Now}
}

// resolve loads the session named by the request cookie. Expired sessions
// are deleted and reported as absent.
func (a *AuthMiddleware) resolve(r *http.Request) auth.State {
	sessionID, ok := session.IDFromRequest(r)
	if !ok {
		return auth.Anonymous()
	}

	sess, err := a.Store.Get(r.Context(), sessionID)
	if err != nil {
		logger.Warn("session lookup failed", map[string]any{
			"error": err.Error(),
		})
		return auth.Anonymous()
	}
	if sess == nil {
		return auth.Anonymous()
	}

	if sess.Expired(a.now()) {
		_ = a.Store.Delete(r.Context(), sessionID)
		return auth.Anonymous()
	}

	user := sess.User
	return auth.SignedIn(&user)
}

// LoadSession attaches the session state to the request context. It never
// rejects a request.
func (a *AuthMiddleware) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := a.resolve(r)
		next.ServeHTTP(w, r.WithContext(auth.WithState(r.Context(), state)))
	})
}

// RequireAuth is LoadSession that answers 401 when there is no session.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := a.resolve(r)
		if !state.LoggedIn() {
			writeJSONError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithState(r.Context(), state)))
	})
}

// writeJSONError answers with the {"error": "..."} body the handlers use.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
