// Package session persists authenticated sessions and per-user visit
// markers in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eventboard/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when no session exists under the given id
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session_"

// Store caches the authenticated user's record under an opaque session id
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore creates a new session store
func NewStore(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

// Create stores the user record under a fresh session id and returns the id
func (s *Store) Create(ctx context.Context, user *models.User) (string, error) {
	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session user: %w", err)
	}

	sessionID := uuid.New().String()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		s.logger.Error("failed to create session", zap.Error(err), zap.Int("user_id", user.ID))
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return sessionID, nil
}

// Get resolves a session id to the cached user record
func (s *Store) Get(ctx context.Context, sessionID string) (*models.User, error) {
	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("failed to get session", zap.Error(err))
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	user := &models.User{}
	if err := json.Unmarshal(payload, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}

	return user, nil
}

// Refresh overwrites the cached user record for an existing session,
// restarting its TTL
func (s *Store) Refresh(ctx context.Context, sessionID string, user *models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		s.logger.Error("failed to refresh session", zap.Error(err))
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	return nil
}

// Delete removes a session; deleting a missing session is not an error
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
