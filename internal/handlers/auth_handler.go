package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic
type AuthService interface {
	// Method Signup performs credential validation and user creation.
	//
	// "email", "password" and "username" parameters form the new account; the
	// account starts with role=pending and cannot log in until approved.
	//
	// If such user already exists, or some other error occurs, the error will be returned together with "nil" value.
	Signup(ctx context.Context, email, password, username string) (*models.User, error)
	// Method Login authenticates a user and opens a session.
	//
	// On success the user and a signed session token are returned. Invalid
	// credentials and pending accounts are rejected with the matching error.
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	// Method Logout deletes the session identified by "sessionID".
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService  AuthService
	sessionTTL   time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie controls whether the
// session cookie is restricted to HTTPS.
func NewAuthHandler(authService AuthService, sessionTTL time.Duration, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		authService:  authService,
		sessionTTL:   sessionTTL,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers all auth handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})
}

// Signup handles POST /auth/signup
// @Summary Register a new user
// @Description Register a new user with email, username and password. The account starts in pending state and must be approved before login.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup request"
// @Success 201 {object} models.ProfileResponse "User registered"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Username or email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		h.RespondError(w, http.StatusBadRequest, "email, username, and password are required")
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		h.Logger.Warn("failed to sign up user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.NewProfileResponse(user))
}

// Login handles POST /auth/login
// @Summary Login user
// @Description Authenticate with username and password. On success the session token is set as an HTTP-only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.ProfileResponse "Login successful"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Account pending approval"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Warn("failed to login user", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token, int(h.sessionTTL.Seconds()))
	h.RespondJSON(w, http.StatusOK, models.NewProfileResponse(user))
}

// Logout handles POST /auth/logout
// @Summary Logout user
// @Description Delete the current session and clear the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Logout successful"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := auth.GetSessionID(r.Context()); ok {
		if err := h.authService.Logout(r.Context(), sessionID); err != nil {
			h.Logger.Error("failed to delete session", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "failed to logout")
			return
		}
	}

	// Clearing the cookie makes logout effective even for an already
	// expired session
	h.setSessionCookie(w, "", -1)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /auth/me
// @Summary Current user
// @Description Return the profile of the session user, or 401 for guests.
// @Tags auth
// @Produce json
// @Success 200 {object} models.ProfileResponse "Session user"
// @Failure 401 {object} map[string]string "No session"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	h.RespondJSON(w, http.StatusOK, models.NewProfileResponse(user))
}

// setSessionCookie sets or clears the HTTP-only session cookie
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
