package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eventboard/backend/internal/models"
	"go.uber.org/zap"
)

const (
	eventsCollection = "events"
	eventsDocID      = "activeEvents"
)

// DocStore is the interface that wraps the document store methods used by the event repository
type DocStore interface {
	// Method Get performs a point lookup of a document.
	//
	// "collection" and "docID" parameters address the document.
	//
	// A missing document is reported with "false" and no error; only store
	// failures are returned as errors.
	Get(ctx context.Context, collection, docID string) (json.RawMessage, bool, error)
	// Method Set writes a document value as one atomic upsert.
	//
	// "value" parameter is JSON-marshaled and stored whole.
	//
	// If marshaling or the write fails, the error is returned.
	Set(ctx context.Context, collection, docID string, value any) error
}

// ChangeNotifier publishes a notification after the events document changed
type ChangeNotifier interface {
	// EventsChanged signals interested clients to re-render the event grid.
	EventsChanged(ctx context.Context) error
}

// eventsDocument is the stored shape of the shared events document
type eventsDocument struct {
	Events []models.Event `json:"events"`
}

// eventRepository loads and saves the bounded event list as a single document
type eventRepository struct {
	store    DocStore
	notifier ChangeNotifier
	logger   *zap.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(store DocStore, notifier ChangeNotifier, logger *zap.Logger) *eventRepository {
	return &eventRepository{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Load reads the events document. An absent document is lazily initialized
// to an empty list; a corrupt or non-list value is coerced to empty. Only
// store-level failures propagate.
func (r *eventRepository) Load(ctx context.Context) ([]models.Event, error) {
	data, found, err := r.store.Get(ctx, eventsCollection, eventsDocID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	if !found {
		if err := r.store.Set(ctx, eventsCollection, eventsDocID, eventsDocument{Events: []models.Event{}}); err != nil {
			return nil, fmt.Errorf("failed to initialize events document: %w", err)
		}
		return []models.Event{}, nil
	}

	var doc eventsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Warn("events document is corrupt, treating as empty", zap.Error(err))
		return []models.Event{}, nil
	}
	if doc.Events == nil {
		return []models.Event{}, nil
	}

	return doc.Events, nil
}

// Save writes the whole event list atomically as one document value and
// notifies observers. A nil list is coerced to an empty one.
func (r *eventRepository) Save(ctx context.Context, events []models.Event) error {
	if events == nil {
		events = []models.Event{}
	}

	if err := r.store.Set(ctx, eventsCollection, eventsDocID, eventsDocument{Events: events}); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}

	// Change notification is advisory; a failed publish must not fail the save
	if err := r.notifier.EventsChanged(ctx); err != nil {
		r.logger.Warn("failed to publish events change notification", zap.Error(err))
	}

	return nil
}
