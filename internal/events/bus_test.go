package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	logger := zaptest.NewLogger(t)
	bus := NewEventBus(logger)
	defer bus.Close()

	var mu sync.Mutex
	received := make([]ModelGenerated, 0)

	err := bus.Subscribe(TopicModelGenerated, func(e ModelGenerated) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e)
	})
	require.NoError(t, err)

	event := ModelGenerated{
		Event:     NewEvent(),
		SessionID: "session-1",
		Provider:  "openai",
		Model:     "gpt-4",
		Status:    "success",
	}
	require.NoError(t, bus.Publish(TopicModelGenerated, event))

	// The underlying bus delivers synchronously for plain Subscribe,
	// but give it a moment in case that changes.
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "session-1", received[0].SessionID)
	assert.Equal(t, event.CorrelationID, received[0].CorrelationID)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	logger := zaptest.NewLogger(t)
	bus := NewEventBus(logger)
	defer bus.Close()

	calls := 0
	handler := func(e LogAnalyzed) { calls++ }

	require.NoError(t, bus.Subscribe(TopicLogAnalyzed, handler))
	require.NoError(t, bus.Unsubscribe(TopicLogAnalyzed, handler))

	require.NoError(t, bus.Publish(TopicLogAnalyzed, LogAnalyzed{Event: NewEvent()}))
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls)
}

func TestEventBus_ClosedRejectsOperations(t *testing.T) {
	logger := zaptest.NewLogger(t)
	bus := NewEventBus(logger)

	require.NoError(t, bus.Close())

	assert.Error(t, bus.Publish(TopicModelGenerated, ModelGenerated{}))
	assert.Error(t, bus.Subscribe(TopicModelGenerated, func(e ModelGenerated) {}))

	// Closing twice is a no-op
	assert.NoError(t, bus.Close())
}

func TestNewEvent(t *testing.T) {
	e1 := NewEvent()
	e2 := NewEvent()

	assert.NotEmpty(t, e1.CorrelationID)
	assert.NotEqual(t, e1.CorrelationID, e2.CorrelationID)
	assert.WithinDuration(t, time.Now(), e1.Timestamp, time.Second)
}

func TestMockEventBus_SynchronousDelivery(t *testing.T) {
	bus := NewMockEventBus()

	var got *ModelRefined
	require.NoError(t, bus.Subscribe(TopicModelRefined, func(e ModelRefined) {
		got = &e
	}))

	event := ModelRefined{Event: NewEvent(), SessionID: "s", Feedback: "add a gateway"}
	require.NoError(t, bus.Publish(TopicModelRefined, event))

	require.NotNil(t, got)
	assert.Equal(t, "add a gateway", got.Feedback)
	assert.Len(t, bus.GetPublishedEvents(TopicModelRefined), 1)
	assert.Equal(t, 1, bus.GetSubscriberCount(TopicModelRefined))
}

func TestMockEventBus_TypeMismatchRecorded(t *testing.T) {
	bus := NewMockEventBus()

	require.NoError(t, bus.Subscribe(TopicModelGenerated, func(e LogAnalyzed) {}))
	require.NoError(t, bus.Publish(TopicModelGenerated, ModelGenerated{Event: NewEvent()}))

	assert.NotEmpty(t, bus.Errors())
}
