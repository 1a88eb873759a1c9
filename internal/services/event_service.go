package services

import (
	"context"
	"strings"
	"time"

	"github.com/eventboard/backend/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxEvents is the capacity of the shared event list
const MaxEvents = 6

// EventRepository is the interface that wraps the events document access used by the event service
type EventRepository interface {
	// Load returns the current event list, never nil. An absent document is
	// initialized to an empty list; only store failures are returned.
	Load(ctx context.Context) ([]models.Event, error)
	// Save writes the whole list atomically and notifies observers.
	Save(ctx context.Context, events []models.Event) error
}

// VisitMarker is the interface that wraps the visit marker methods used by the event service
type VisitMarker interface {
	// MarkVisited records now as the user's last visit of the event.
	MarkVisited(ctx context.Context, userID int, eventID string) error
	// LastVisited returns the user's last visit of the event in unix
	// milliseconds, 0 when never visited.
	LastVisited(ctx context.Context, userID int, eventID string) (int64, error)
}

// eventService implements the event grid operations. Every mutation works
// on a freshly loaded list, so a stale index behaves as not-found rather
// than hitting the wrong element.
type eventService struct {
	events EventRepository
	visits VisitMarker
	logger *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(events EventRepository, visits VisitMarker, logger *zap.Logger) *eventService {
	return &eventService{
		events: events,
		visits: visits,
		logger: logger,
	}
}

// List builds the event grid for a caller. Visit markers are looked up for
// authenticated users; admins additionally get the stored password so the
// edit form can be prefilled.
func (s *eventService) List(ctx context.Context, user *models.User) ([]models.EventCard, error) {
	events, err := s.events.Load(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]models.EventCard, 0, len(events))
	for _, ev := range events {
		card := models.EventCard{
			ID:          ev.ID,
			Title:       ev.Title,
			CreatedAt:   ev.CreatedAt,
			HasPassword: ev.HasPassword(),
			Functions:   ev.Functions,
		}

		if user != nil {
			visited, err := s.visits.LastVisited(ctx, user.ID, ev.ID)
			if err != nil {
				// The marker is advisory; render "never visited" instead of failing
				s.logger.Warn("failed to read visit marker", zap.String("event_id", ev.ID), zap.Error(err))
			} else {
				card.LastVisitedAt = visited
			}
		}
		if models.IsAdmin(user) {
			card.Password = ev.Password
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// Create appends a new event for an admin caller. Non-admins are rejected,
// as is creating beyond the list capacity.
func (s *eventService) Create(ctx context.Context, actor *models.User, title, password string) (*models.Event, error) {
	if !models.IsAdmin(actor) {
		return nil, ErrNotAdmin
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	events, err := s.events.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) >= MaxEvents {
		return nil, ErrEventLimit
	}

	event := models.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Password:  strings.TrimSpace(password),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Functions: models.DefaultEventFunctions(),
	}

	events = append(events, event)
	if err := s.events.Save(ctx, events); err != nil {
		return nil, err
	}

	s.logger.Info("event created", zap.String("event_id", event.ID), zap.String("title", event.Title))
	return &event, nil
}

// Edit updates the title and password of the event at index. An empty
// password clears the protection; a stale or out-of-range index is not-found.
func (s *eventService) Edit(ctx context.Context, index int, title, password string) (*models.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	events, err := s.events.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(events) {
		return nil, ErrEventNotFound
	}

	events[index].Title = title
	events[index].Password = strings.TrimSpace(password)

	if err := s.events.Save(ctx, events); err != nil {
		return nil, err
	}

	return &events[index], nil
}

// Delete removes exactly the event at index, preserving the order of the
// rest, and returns the removed event's title for the success message.
func (s *eventService) Delete(ctx context.Context, index int) (string, error) {
	events, err := s.events.Load(ctx)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(events) {
		return "", ErrEventNotFound
	}

	title := events[index].Title
	events = append(events[:index], events[index+1:]...)

	if err := s.events.Save(ctx, events); err != nil {
		return "", err
	}

	s.logger.Info("event deleted", zap.String("title", title))
	return title, nil
}

// Open checks the event's password gate and, on success, records the visit
// marker and returns the event for navigation. A password-protected event
// rejects a mismatch with no state change.
func (s *eventService) Open(ctx context.Context, index int, password string, user *models.User) (*models.Event, error) {
	events, err := s.events.Load(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(events) {
		return nil, ErrEventNotFound
	}

	event := events[index]
	if event.HasPassword() && password != event.Password {
		return nil, ErrWrongPassword
	}

	if user != nil {
		if err := s.visits.MarkVisited(ctx, user.ID, event.ID); err != nil {
			s.logger.Warn("failed to record visit marker", zap.String("event_id", event.ID), zap.Error(err))
		}
	}

	return &event, nil
}
