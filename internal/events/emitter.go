package events

import (
	"context"
	"log/slog"

	"github.com/sprintsync/sprintsync-api/internal/logger"
)

// Emitter publishes events and logs failures instead of returning them.
// HTTP handlers use it so that broker problems never reach the caller.
type Emitter struct {
	publisher Publisher
	logger    *logger.Logger
}

func NewEmitter(publisher Publisher, log *logger.Logger) *Emitter {
	if publisher == nil {
		publisher = Noop{}
	}
	return &Emitter{publisher: publisher, logger: log.WithComponent("events")}
}

// Emit publishes data on subject. A nil Emitter is a no-op.
func (e *Emitter) Emit(ctx context.Context, subject string, userID int64, data any) {
	if e == nil {
		return
	}

	if err := e.publisher.Publish(ctx, NewEvent(subject, userID, data)); err != nil {
		e.logger.WithContext(ctx).Warn("failed to publish event",
			slog.String("subject", subject),
			slog.String("error", err.Error()))
	}
}
