// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package events

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

// Bus is the in-process publish/subscribe hub.
//
// # Concurrency
//
// Subscribe/Unsubscribe may run concurrently with Publish. Publish works on
// a snapshot of the subscriber list, so a handler added mid-dispatch is not
// invoked for events already in flight. The internal queue is unbounded;
// Publish never blocks on the drain loop.
//
// Bus is constructed once by the composition root and passed in explicitly —
// there is no package-level singleton.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Type][]Handler

	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     []Event

	logger *slog.Logger
}

// NewBus creates an event bus that reports handler failures to logger.
func NewBus(logger *slog.Logger) *Bus {
	bus := &Bus{
		subscribers: make(map[Type][]Handler),
		logger:      logger,
	}
	bus.queueCond = sync.NewCond(&bus.queueMu)
	return bus
}

// # Subscription Management

// Subscribe registers a handler for the given event type.
// Multiple handlers per type are allowed; insertion order is preserved
// and determines synchronous dispatch order.
func (bus *Bus) Subscribe(eventType Type, handler Handler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers[eventType] = append(bus.subscribers[eventType], handler)
}

// Unsubscribe removes a previously registered handler. It is a no-op when
// the handler was never registered.
//
// Handlers are matched by function code identity, so the same func value
// (or method value) passed to Subscribe must be passed here. Closures
// created from the same function literal share code identity even when
// they capture different state; Unsubscribe then removes the earliest
// matching registration. Handlers that must be individually removable
// should be distinct named functions or methods.
func (bus *Bus) Unsubscribe(eventType Type, handler Handler) {
	target := reflect.ValueOf(handler).Pointer()

	bus.mu.Lock()
	defer bus.mu.Unlock()

	handlers := bus.subscribers[eventType]
	for i, registered := range handlers {
		if reflect.ValueOf(registered).Pointer() == target {
			bus.subscribers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// # Publishing

// Publish enqueues the event for asynchronous draining and synchronously
// notifies every currently-registered handler for its type.
//
// Publish runs on the caller's execution path but is isolated from handler
// failures: a panicking or erroring subscriber is logged and skipped, never
// surfaced to the publisher, and never prevents the enqueue or the
// remaining handlers.
func (bus *Bus) Publish(event Event) {
	bus.enqueue(event)
	bus.notify(event)
}

// enqueue appends the event to the unbounded queue and wakes the drain loop.
func (bus *Bus) enqueue(event Event) {
	bus.queueMu.Lock()
	bus.queue = append(bus.queue, event)
	bus.queueMu.Unlock()
	bus.queueCond.Signal()
}

// notify invokes a snapshot of the subscribers for the event's type,
// in subscription order.
func (bus *Bus) notify(event Event) {
	bus.mu.RLock()
	handlers := make([]Handler, len(bus.subscribers[event.Type]))
	copy(handlers, bus.subscribers[event.Type])
	bus.mu.RUnlock()

	for _, handler := range handlers {
		bus.invoke(event, handler)
	}
}

// invoke runs one handler with panic and error isolation.
func (bus *Bus) invoke(event Event, handler Handler) {
	defer func() {
		if recovered := recover(); recovered != nil {
			bus.logger.Error("event_handler_panicked",
				slog.String("event_type", string(event.Type)),
				slog.Any("panic", recovered),
			)
		}
	}()

	if err := handler(event); err != nil {
		bus.logger.Error("event_handler_failed",
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err),
		)
	}
}

// # Asynchronous Draining

// Run drains the queue one event at a time until ctx is cancelled.
//
// Processing is best-effort: each drained event is recorded and marked done
// even if handling failed, so the queue never stalls on a single bad event.
// Run is the process's only long-lived background task for events; the
// composition root starts it in its own goroutine.
func (bus *Bus) Run(ctx context.Context) {
	// Wake the wait loop when the context is cancelled. The broadcast must
	// hold the lock: otherwise it can fall between a waiter's ctx.Err()
	// check and its Wait registration and be consumed by no one, leaving
	// dequeue parked forever.
	go func() {
		<-ctx.Done()
		bus.queueMu.Lock()
		bus.queueCond.Broadcast()
		bus.queueMu.Unlock()
	}()

	for {
		event, ok := bus.dequeue(ctx)
		if !ok {
			bus.logger.Info("event_bus_stopped")
			return
		}
		bus.process(event)
	}
}

// dequeue blocks until an event is available or ctx is cancelled.
func (bus *Bus) dequeue(ctx context.Context) (Event, bool) {
	bus.queueMu.Lock()
	defer bus.queueMu.Unlock()

	for len(bus.queue) == 0 {
		if ctx.Err() != nil {
			return Event{}, false
		}
		bus.queueCond.Wait()
	}

	event := bus.queue[0]
	bus.queue = bus.queue[1:]
	return event, true
}

// process performs the queued path's best-effort handling of one event.
func (bus *Bus) process(event Event) {
	defer func() {
		if recovered := recover(); recovered != nil {
			bus.logger.Error("event_processing_panicked",
				slog.String("event_type", string(event.Type)),
				slog.Any("panic", recovered),
			)
		}
	}()

	bus.logger.Debug("event_processed",
		slog.String("event_type", string(event.Type)),
		slog.Any("data", event.Payload),
	)
}

// QueueLen reports the number of events awaiting asynchronous processing.
func (bus *Bus) QueueLen() int {
	bus.queueMu.Lock()
	defer bus.queueMu.Unlock()
	return len(bus.queue)
}
