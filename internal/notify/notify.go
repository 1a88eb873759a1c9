// Package notify publishes change notifications for connected clients.
package notify

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// EventsChannel is the pub/sub channel carrying event list change notifications
const EventsChannel = "events:changed"

// Publisher broadcasts event list changes over Redis pub/sub so open grid
// pages can re-render
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewPublisher creates a new change publisher
func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		rdb:    rdb,
		logger: logger,
	}
}

// EventsChanged publishes a notification that the events document changed
func (p *Publisher) EventsChanged(ctx context.Context) error {
	if err := p.rdb.Publish(ctx, EventsChannel, "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish events change: %w", err)
	}
	return nil
}
