package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for profile business logic
type ProfileService interface {
	// Method GetUser retrieves a user's profile by id.
	//
	// If user with such ID does not exist, the error will be returned together with "nil" value.
	GetUser(ctx context.Context, userID int) (*models.User, error)
	// Method UpdateProfile updates the non-empty fields of the user's profile
	// and refreshes the cached session record.
	//
	// A new password is hashed before the write.
	UpdateProfile(ctx context.Context, userID int, sessionID string, req *models.UpdateProfileRequest) (*models.User, error)
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	BaseHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		profileService: profileService,
	}
}

// RegisterRoutes registers all profile handler routes.
// The caller wraps these with the auth-required middleware.
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
	})
}

// Get handles GET /profile
// @Summary Get profile
// @Description Return the fresh profile record of the session user.
// @Tags profile
// @Produce json
// @Success 200 {object} models.ProfileResponse "Profile"
// @Failure 401 {object} map[string]string "No session"
// @Router /profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	fresh, err := h.profileService.GetUser(r.Context(), user.ID)
	if err != nil {
		h.Logger.Error("failed to get profile", zap.Int("user_id", user.ID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewProfileResponse(fresh))
}

// Update handles PUT /profile
// @Summary Update profile
// @Description Update username, email and/or password of the session user. Empty fields stay unchanged.
// @Tags profile
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile update"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Username or email already taken"
// @Router /profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	sessionID, _ := auth.GetSessionID(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.profileService.UpdateProfile(r.Context(), user.ID, sessionID, &req)
	if err != nil {
		h.Logger.Warn("failed to update profile", zap.Int("user_id", user.ID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, models.NewProfileResponse(updated))
}
