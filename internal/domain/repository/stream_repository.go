package repository

import (
	"context"

	"github.com/saved-places-service/internal/domain"
)

// StreamRepository publishes and consumes Redis Stream messages. The
// core only publishes refresh requests; the consume side exists for the
// refresh collaborator's contract and for integration tests.
type StreamRepository interface {
	// PublishToStream publishes a JSON-serialized message.
	PublishToStream(ctx context.Context, stream string, data interface{}) error

	// CreateConsumerGroup creates a consumer group, tolerating one that
	// already exists.
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream reads messages via a consumer group.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage acknowledges a processed message.
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
