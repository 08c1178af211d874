package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sprintsync/sprintsync-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestEmitterPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	emitter := NewEmitter(pub, logger.Discard())

	emitter.Emit(context.Background(), SubjectTaskCreated, 3, map[string]any{"id": 1})

	require.Len(t, pub.events, 1)
	event := pub.events[0]
	assert.Equal(t, SubjectTaskCreated, event.Subject)
	assert.Equal(t, int64(3), event.UserID)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestEmitterSwallowsErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	emitter := NewEmitter(pub, logger.Discard())

	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), SubjectTaskDeleted, 1, nil)
	})
	assert.Len(t, pub.events, 1)
}

func TestNilEmitter(t *testing.T) {
	var emitter *Emitter
	assert.NotPanics(t, func() {
		emitter.Emit(context.Background(), SubjectTaskUpdated, 1, nil)
	})
}

func TestNoopPublisher(t *testing.T) {
	emitter := NewEmitter(nil, logger.Discard())
	emitter.Emit(context.Background(), SubjectSuggestionGenerated, 1, nil)

	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), NewEvent(SubjectTaskCreated, 1, nil)))
	assert.NoError(t, p.Close())
}
