package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const visitKeyPrefix = "lastVisited_"

// Marker is one stored visit marker, addressed by its full key
type Marker struct {
	Key     string
	EventID string
}

// VisitStore records when a user last opened an event. Markers are purely
// advisory; losing one only resets the "last visited" label in the grid.
type VisitStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewVisitStore creates a new visit marker store
func NewVisitStore(rdb *redis.Client, logger *zap.Logger) *VisitStore {
	return &VisitStore{
		rdb:    rdb,
		logger: logger,
	}
}

// visitKey builds the marker key for a (user, event) pair
func visitKey(userID int, eventID string) string {
	return visitKeyPrefix + strconv.Itoa(userID) + "_" + eventID
}

// MarkVisited stores the current time as the user's visit marker for an event
func (s *VisitStore) MarkVisited(ctx context.Context, userID int, eventID string) error {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := s.rdb.Set(ctx, visitKey(userID, eventID), timestamp, 0).Err(); err != nil {
		s.logger.Error("failed to mark visit", zap.Error(err),
			zap.Int("user_id", userID), zap.String("event_id", eventID))
		return fmt.Errorf("failed to mark visit: %w", err)
	}
	return nil
}

// LastVisited returns the user's visit marker for an event in unix
// milliseconds, or 0 when the event was never visited
func (s *VisitStore) LastVisited(ctx context.Context, userID int, eventID string) (int64, error) {
	value, err := s.rdb.Get(ctx, visitKey(userID, eventID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get visit marker: %w", err)
	}

	timestamp, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		// Unreadable marker is the same as no marker
		return 0, nil
	}

	return timestamp, nil
}

// ListMarkers scans all stored visit markers
func (s *VisitStore) ListMarkers(ctx context.Context) ([]Marker, error) {
	var markers []Marker

	iter := s.rdb.Scan(ctx, 0, visitKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		// Key shape: lastVisited_<userID>_<eventID>
		parts := strings.SplitN(key, "_", 3)
		if len(parts) != 3 {
			continue
		}
		markers = append(markers, Marker{Key: key, EventID: parts[2]})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan visit markers: %w", err)
	}

	return markers, nil
}

// DeleteMarkers removes the markers with the given keys
func (s *VisitStore) DeleteMarkers(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete visit markers: %w", err)
	}
	return nil
}
