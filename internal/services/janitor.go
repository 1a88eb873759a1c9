package services

import (
	"context"
	"fmt"

	"github.com/eventboard/backend/internal/session"
	"go.uber.org/zap"
)

// MarkerStore is the interface that wraps the visit marker maintenance methods used by the janitor
type MarkerStore interface {
	// ListMarkers scans all stored visit markers.
	ListMarkers(ctx context.Context) ([]session.Marker, error)
	// DeleteMarkers removes the markers with the given keys.
	DeleteMarkers(ctx context.Context, keys []string) error
}

// Janitor prunes visit markers that point at deleted events. Markers have
// no TTL, so without pruning they would accumulate forever.
type Janitor struct {
	events  EventRepository
	markers MarkerStore
	logger  *zap.Logger
}

// NewJanitor creates a new marker janitor
func NewJanitor(events EventRepository, markers MarkerStore, logger *zap.Logger) *Janitor {
	return &Janitor{
		events:  events,
		markers: markers,
		logger:  logger,
	}
}

// Run deletes every marker whose event no longer exists in the list
func (j *Janitor) Run(ctx context.Context) error {
	events, err := j.events.Load(ctx)
	if err != nil {
		return fmt.Errorf("janitor failed to load events: %w", err)
	}

	liveIDs := make(map[string]struct{}, len(events))
	for _, ev := range events {
		liveIDs[ev.ID] = struct{}{}
	}

	markers, err := j.markers.ListMarkers(ctx)
	if err != nil {
		return fmt.Errorf("janitor failed to list markers: %w", err)
	}

	var stale []string
	for _, m := range markers {
		if _, ok := liveIDs[m.EventID]; !ok {
			stale = append(stale, m.Key)
		}
	}

	if len(stale) == 0 {
		return nil
	}

	if err := j.markers.DeleteMarkers(ctx, stale); err != nil {
		return fmt.Errorf("janitor failed to delete markers: %w", err)
	}

	j.logger.Info("pruned stale visit markers", zap.Int("count", len(stale)))
	return nil
}
