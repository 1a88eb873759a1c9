package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthService is a stub implementation of AuthService
type stubAuthService struct {
	user  *models.User
	token string
	err   error
}

func (s *stubAuthService) Signup(ctx context.Context, email, password, username string) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.err
}

func setupAuthRouter(svc AuthService, secureCookie bool) chi.Router {
	logger, _ := zap.NewDevelopment()
	handler := NewAuthHandler(svc, time.Hour, secureCookie, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatalf("response has no %s cookie", auth.SessionCookieName)
	return nil
}

func TestAuthHandler_Login_CookieSecurity(t *testing.T) {
	user := &models.User{ID: 1, Username: "haruto", Role: models.RoleMember}

	tests := []struct {
		name         string
		secureCookie bool
	}{
		{name: "https deployment", secureCookie: true},
		{name: "plain-http development", secureCookie: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubAuthService{user: user, token: "signed-token"}
			router := setupAuthRouter(svc, tt.secureCookie)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"haruto","password":"pass"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			cookie := sessionCookie(t, rec)
			assert.Equal(t, "signed-token", cookie.Value)
			assert.Equal(t, tt.secureCookie, cookie.Secure)
			assert.True(t, cookie.HttpOnly)
			assert.Positive(t, cookie.MaxAge)
		})
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	router := setupAuthRouter(&stubAuthService{}, true)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
