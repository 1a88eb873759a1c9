package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessionResolver is a stub implementation of SessionResolver
type stubSessionResolver struct {
	user *models.User
	err  error
}

func (s *stubSessionResolver) Get(ctx context.Context, sessionID string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

// captureHandler records the context the middleware passed through
func captureHandler(gotUser **models.User, gotOK *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotUser, *gotOK = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)
	member := &models.User{ID: 2, Username: "alice", Role: models.RoleMember}

	tests := []struct {
		name     string
		cookie   func(t *testing.T) *http.Cookie
		resolver *stubSessionResolver
		wantUser bool
	}{
		{
			name:     "no cookie proceeds as guest",
			cookie:   func(t *testing.T) *http.Cookie { return nil },
			resolver: &stubSessionResolver{user: member},
			wantUser: false,
		},
		{
			name: "garbage token proceeds as guest",
			cookie: func(t *testing.T) *http.Cookie {
				return &http.Cookie{Name: SessionCookieName, Value: "garbage"}
			},
			resolver: &stubSessionResolver{user: member},
			wantUser: false,
		},
		{
			name: "expired session proceeds as guest",
			cookie: func(t *testing.T) *http.Cookie {
				token, err := tg.GenerateSessionToken("sess-1")
				require.NoError(t, err)
				return &http.Cookie{Name: SessionCookieName, Value: token}
			},
			resolver: &stubSessionResolver{err: errors.New("session not found")},
			wantUser: false,
		},
		{
			name: "valid session resolves the user",
			cookie: func(t *testing.T) *http.Cookie {
				token, err := tg.GenerateSessionToken("sess-1")
				require.NoError(t, err)
				return &http.Cookie{Name: SessionCookieName, Value: token}
			},
			resolver: &stubSessionResolver{user: member},
			wantUser: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *models.User
			var gotOK bool
			mw := SessionMiddleware(tg, tt.resolver)
			handler := mw(captureHandler(&gotUser, &gotOK))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if c := tt.cookie(t); c != nil {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantUser, gotOK)
			if tt.wantUser {
				assert.Equal(t, member, gotUser)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("guest is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session user passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: 2, Role: models.RoleMember}, "sess-1"))
		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		user           *models.User
		expectedStatus int
	}{
		{name: "guest", user: nil, expectedStatus: http.StatusUnauthorized},
		{name: "member", user: &models.User{ID: 2, Role: models.RoleMember}, expectedStatus: http.StatusForbidden},
		{name: "pending", user: &models.User{ID: 3, Role: models.RolePending}, expectedStatus: http.StatusForbidden},
		{name: "admin", user: &models.User{ID: 1, Role: models.RoleAdmin}, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user, "sess-1"))
			}
			rec := httptest.NewRecorder()
			RequireAdmin(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
