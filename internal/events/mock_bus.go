package events

import (
	"fmt"
	"sync"
	"time"
)

// MockEventBus provides an in-memory implementation of EventBus for testing.
// Delivery is synchronous so tests can assert immediately after Publish.
type MockEventBus struct {
	subscriptions   map[string][]interface{}
	publishedEvents map[string][]interface{}
	errors          []error
	mutex           sync.RWMutex
}

// NewMockEventBus creates a new MockEventBus instance
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{
		subscriptions:   make(map[string][]interface{}),
		publishedEvents: make(map[string][]interface{}),
	}
}

// Subscribe implements the EventBus interface
func (m *MockEventBus) Subscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions[topic] = append(m.subscriptions[topic], handler)
	return nil
}

// Unsubscribe implements the EventBus interface
func (m *MockEventBus) Unsubscribe(topic string, handler interface{}) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	handlers := m.subscriptions[topic]
	for i := len(handlers) - 1; i >= 0; i-- {
		if handlers[i] == handler {
			handlers = append(handlers[:i], handlers[i+1:]...)
		}
	}
	m.subscriptions[topic] = handlers
	return nil
}

// Publish implements the EventBus interface
func (m *MockEventBus) Publish(topic string, event interface{}) error {
	m.mutex.Lock()
	m.publishedEvents[topic] = append(m.publishedEvents[topic], event)
	handlersToInvoke := make([]interface{}, len(m.subscriptions[topic]))
	copy(handlersToInvoke, m.subscriptions[topic])
	m.mutex.Unlock()

	for _, handler := range handlersToInvoke {
		m.invokeHandler(handler, event)
	}
	return nil
}

// Close implements the EventBus interface
func (m *MockEventBus) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscriptions = make(map[string][]interface{})
	m.publishedEvents = make(map[string][]interface{})
	return nil
}

// GetPublishedEvents returns published events for a topic
func (m *MockEventBus) GetPublishedEvents(topic string) []interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]interface{}, len(m.publishedEvents[topic]))
	copy(result, m.publishedEvents[topic])
	return result
}

// GetSubscriberCount returns the number of subscribers for a topic
func (m *MockEventBus) GetSubscriberCount(topic string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.subscriptions[topic])
}

// ClearEvents resets all published events
func (m *MockEventBus) ClearEvents() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.publishedEvents = make(map[string][]interface{})
}

// WaitForEvent waits for an event to be published on a topic
func (m *MockEventBus) WaitForEvent(topic string, timeout time.Duration) (interface{}, error) {
	startTime := time.Now()

	for {
		published := m.GetPublishedEvents(topic)
		if len(published) > 0 {
			return published[len(published)-1], nil
		}

		if time.Since(startTime) > timeout {
			return nil, fmt.Errorf("timeout waiting for event on topic %s after %v", topic, timeout)
		}

		time.Sleep(10 * time.Millisecond)
	}
}

// Errors returns handler invocation errors collected so far
func (m *MockEventBus) Errors() []error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]error, len(m.errors))
	copy(result, m.errors)
	return result
}

func (m *MockEventBus) invokeHandler(handler interface{}, event interface{}) {
	defer func() {
		if r := recover(); r != nil {
			m.mutex.Lock()
			m.errors = append(m.errors, fmt.Errorf("handler panic: %v", r))
			m.mutex.Unlock()
		}
	}()

	handlerInvoked := false
	switch h := handler.(type) {
	case func(ModelGenerated):
		if e, ok := event.(ModelGenerated); ok {
			h(e)
			handlerInvoked = true
		}
	case func(ModelRefined):
		if e, ok := event.(ModelRefined); ok {
			h(e)
			handlerInvoked = true
		}
	case func(PetriNetGenerated):
		if e, ok := event.(PetriNetGenerated); ok {
			h(e)
			handlerInvoked = true
		}
	case func(LogAnalyzed):
		if e, ok := event.(LogAnalyzed); ok {
			h(e)
			handlerInvoked = true
		}
	case func(interface{}):
		h(event)
		handlerInvoked = true
	}

	if !handlerInvoked {
		m.mutex.Lock()
		m.errors = append(m.errors, fmt.Errorf("type mismatch: handler type does not match event type %T", event))
		m.mutex.Unlock()
	}
}
