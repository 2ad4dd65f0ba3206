package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is a domain lifecycle notification. Workflow transitions publish
// these instead of triggering side effects implicitly on persistence writes;
// subscribers decide what to do with them.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
}

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

type Handler func(ctx context.Context, event Event) error

// EventBus is a minimal in-process dispatcher. Subscriptions are expected to
// happen during startup; publishing is safe from any goroutine afterwards.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (b *EventBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	b.logger.Info("event handler registered", "event_type", eventType)
}

// Publish dispatches the event to every subscriber asynchronously. Handler
// failures and panics are logged, never propagated to the publisher: a
// failed side effect must not undo the workflow transition that caused it.
func (b *EventBus) Publish(ctx context.Context, event Event) error {
	for _, handler := range b.subscribers(event.EventType()) {
		go b.dispatch(ctx, event, handler)
	}
	return nil
}

// PublishSync runs every subscriber inline and stops at the first failure.
// Used by the event CLI where the caller wants the outcome.
func (b *EventBus) PublishSync(ctx context.Context, event Event) error {
	for _, handler := range b.subscribers(event.EventType()) {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"error", err)
			return fmt.Errorf("handler failed for event %s: %w", event.EventType(), err)
		}
	}
	return nil
}

func (b *EventBus) subscribers(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.handlers[eventType]
}

func (b *EventBus) dispatch(ctx context.Context, event Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event_type", event.EventType(),
				"event_id", event.EventID(),
				"panic", r)
		}
	}()

	if err := handler(ctx, event); err != nil {
		b.logger.Error("event handler failed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}
