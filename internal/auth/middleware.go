package auth

import (
	"context"
	"net/http"

	"github.com/eventboard/backend/internal/models"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session_token"

type contextKey string

const (
	userKey      contextKey = "user"
	sessionIDKey contextKey = "sessionID"
)

// SessionResolver resolves a session id to the cached user record
type SessionResolver interface {
	// Get retrieves the user record cached under the session id.
	//
	// If no session exists under the id, an error is returned together with "nil" value.
	Get(ctx context.Context, sessionID string) (*models.User, error)
}

// SessionMiddleware resolves the session cookie to a user record and stores
// it in the request context. Requests without a valid session proceed as
// guests; gating is done by RequireAuth/RequireAdmin.
func SessionMiddleware(tokenGenerator *TokenGenerator, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := tokenGenerator.ValidateSessionToken(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := sessions.Get(r.Context(), sessionID)
			if err != nil {
				// Expired or deleted session: treat as guest
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user, sessionID)))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated session
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose session user is not an admin
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		if !models.IsAdmin(user) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"insufficient permissions"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser returns a context carrying the session user and session id
func WithUser(ctx context.Context, user *models.User, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetUser retrieves the session user from context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// GetSessionID retrieves the session id from context
func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok
}
