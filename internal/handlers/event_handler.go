package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventService is the interface that wraps methods for event grid business logic
type EventService interface {
	// Method List builds the event grid cards for the caller (nil for guests).
	List(ctx context.Context, user *models.User) ([]models.EventCard, error)
	// Method Create appends a new event. Only admins may create; the list is
	// capped, and a full list yields a capacity error.
	Create(ctx context.Context, actor *models.User, title, password string) (*models.Event, error)
	// Method Edit updates title and password of the event at index. An
	// out-of-range index is reported as not-found.
	Edit(ctx context.Context, index int, title, password string) (*models.Event, error)
	// Method Delete removes the event at index and returns its title.
	Delete(ctx context.Context, index int) (string, error)
	// Method Open verifies the event's password gate and records the
	// caller's visit marker on success.
	Open(ctx context.Context, index int, password string, user *models.User) (*models.Event, error)
}

// EventHandler handles event grid HTTP requests
type EventHandler struct {
	BaseHandler
	eventService EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		eventService: eventService,
	}
}

// RegisterRoutes registers all event handler routes. Mutating endpoints
// are gated per-route with the admin middleware; /events may only be
// mounted once on a router tree.
// Note: This assumes the router is already scoped to /api/v1
func (h *EventHandler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/{index}/open", h.Open)
		r.With(auth.RequireAdmin).Post("/", h.Create)
		r.With(auth.RequireAdmin).Put("/{index}", h.Edit)
		r.With(auth.RequireAdmin).Delete("/{index}", h.Delete)
	})
}

// List handles GET /events
// @Summary List events
// @Description Return the event grid. Authenticated callers get their last-visited timestamps; admins additionally get stored passwords for the edit form.
// @Tags events
// @Produce json
// @Success 200 {array} models.EventCard "Event grid"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /events [get]
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.GetUser(r.Context())

	cards, err := h.eventService.List(r.Context(), user)
	if err != nil {
		h.Logger.Error("failed to list events", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to load events")
		return
	}

	h.RespondJSON(w, http.StatusOK, cards)
}

// Create handles POST /events
// @Summary Create event
// @Description Create a new event with an optional access password. Admin only; the grid holds at most 6 events.
// @Tags events
// @Accept json
// @Produce json
// @Param request body models.CreateEventRequest true "Create request"
// @Success 201 {object} models.Event "Created event"
// @Failure 400 {object} map[string]string "Empty title"
// @Failure 403 {object} map[string]string "Not an admin"
// @Failure 409 {object} map[string]string "Event limit reached"
// @Router /events [post]
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.GetUser(r.Context())

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.eventService.Create(r.Context(), user, req.Title, req.Password)
	if err != nil {
		h.Logger.Warn("failed to create event", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, event)
}

// Edit handles PUT /events/{index}
// @Summary Edit event
// @Description Update title and password of the event at the given grid index. An empty password removes the protection.
// @Tags events
// @Accept json
// @Produce json
// @Param index path int true "Grid index"
// @Param request body models.EditEventRequest true "Edit request"
// @Success 200 {object} models.Event "Updated event"
// @Failure 400 {object} map[string]string "Invalid index or empty title"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{index} [put]
func (h *EventHandler) Edit(w http.ResponseWriter, r *http.Request) {
	index, err := h.indexParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid event index")
		return
	}

	var req models.EditEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.eventService.Edit(r.Context(), index, req.Title, req.Password)
	if err != nil {
		h.Logger.Warn("failed to edit event", zap.Int("index", index), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{index}
// @Summary Delete event
// @Description Remove the event at the given grid index, preserving the order of the rest.
// @Tags events
// @Produce json
// @Param index path int true "Grid index"
// @Success 200 {object} map[string]string "Deletion message naming the removed event"
// @Failure 400 {object} map[string]string "Invalid index"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{index} [delete]
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	index, err := h.indexParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid event index")
		return
	}

	title, err := h.eventService.Delete(r.Context(), index)
	if err != nil {
		h.Logger.Warn("failed to delete event", zap.Int("index", index), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%q deleted successfully", title),
	})
}

// Open handles POST /events/{index}/open
// @Summary Open event
// @Description Pass the event's password gate. Password-free events open directly; protected events require the exact password. On success the caller's visit marker is recorded and the event id returned for navigation.
// @Tags events
// @Accept json
// @Produce json
// @Param index path int true "Grid index"
// @Param request body models.OpenEventRequest false "Password, when the event is protected"
// @Success 200 {object} map[string]string "Event id to navigate to"
// @Failure 403 {object} map[string]string "Incorrect password"
// @Failure 404 {object} map[string]string "Event not found"
// @Router /events/{index}/open [post]
func (h *EventHandler) Open(w http.ResponseWriter, r *http.Request) {
	index, err := h.indexParam(r)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid event index")
		return
	}

	// Body is optional for password-free events
	var req models.OpenEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, _ := auth.GetUser(r.Context())

	event, err := h.eventService.Open(r.Context(), index, req.Password, user)
	if err != nil {
		h.Logger.Warn("failed to open event", zap.Int("index", index), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"id": event.ID})
}

// indexParam parses the {index} URL parameter
func (h *EventHandler) indexParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}
