package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/vinay71-re/MEDBUD/internal/models"
	"github.com/vinay71-re/MEDBUD/internal/store"
)

type contextKey string

const sessionContextKey contextKey = "session"

// publicPaths are reachable without a session. Doctor discovery stays open so
// patients can browse before signing up.
func isPublicPath(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/debug/vars", "/api/auth/signup", "/api/auth/login":
		return true
	}
	if r.Method == http.MethodGet && (r.URL.Path == "/api/doctors" || strings.HasPrefix(r.URL.Path, "/api/doctors/")) {
		return true
	}
	return false
}

// AuthMiddleware resolves the Bearer session before the handler runs.
// Sessions are opaque IDs looked up in the store, not signed tokens.
func AuthMiddleware(auth store.AuthStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		sessionID := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if sessionID == "" {
			writeError(w, r, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		session, err := auth.GetSession(r.Context(), sessionID)
		if err != nil {
			status, code, msg := mapError(err)
			writeError(w, r, status, code, msg)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(models.Session)
	return session, ok
}
