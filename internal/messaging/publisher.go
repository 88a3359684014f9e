package messaging

import (
	"context"

	"github.com/brnd-floc/brnd-v2-backend-sub000/internal/domain"
)

// Publisher defines the interface for publishing projection change events to
// the message broker. Downstream consumers (notification formatting, shared
// ranking triggers) subscribe to these instead of polling the projection.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a projection change event
	PublishEvent(ctx context.Context, event *domain.ProjectionEvent) error
	// Close closes the connection
	Close()
}
