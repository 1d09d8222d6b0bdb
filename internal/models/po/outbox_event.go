package po

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEvent 对应 catalog.outbox_events 行，承载待发布的领域事件。
type OutboxEvent struct {
	EventID       uuid.UUID         `db:"event_id"`
	AggregateType string            `db:"aggregate_type"`
	AggregateID   uuid.UUID         `db:"aggregate_id"`
	EventType     string            `db:"event_type"`
	Payload       []byte            `db:"payload"`
	Attributes    map[string]string `db:"attributes"`
	AvailableAt   time.Time         `db:"available_at"`
	PublishedAt   *time.Time        `db:"published_at"`
	FailureCount  int32             `db:"failure_count"`
	LastError     *string           `db:"last_error"`
	CreatedAt     time.Time         `db:"created_at"`
}
