package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Subjects published by the API.
const (
	SubjectTaskCreated         = "tasks.created"
	SubjectTaskUpdated         = "tasks.updated"
	SubjectTaskDeleted         = "tasks.deleted"
	SubjectSuggestionGenerated = "suggestions.generated"
)

// Event is the JSON envelope sent on every subject.
type Event struct {
	ID         string    `json:"id"`
	Subject    string    `json:"subject"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// NewEvent stamps data with a fresh ID and the current time.
func NewEvent(subject string, userID int64, data any) Event {
	return Event{
		ID:         uuid.New().String(),
		Subject:    subject,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
