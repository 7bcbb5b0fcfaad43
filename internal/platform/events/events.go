// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

/*
Package events provides the in-process event bus that decouples "something
interesting happened" from whatever reacts to it.

Publishers (registration, login) emit an [Event]; zero or more subscribers
receive it without the publisher knowing who, if anyone, is listening.

Delivery is dual, by contract:

  - Synchronous: Publish immediately invokes every currently-registered
    handler for the event's type, in subscription order.
  - Asynchronous: Publish also enqueues the event onto an unbounded internal
    queue drained by a single background loop for best-effort processing.

The two paths are independent; neither waits for the other.
*/
package events

import "time"

// # Event Types

// Type identifies the category of a domain event.
type Type string

const (
	// TypeUserRegistered fires once per successful registration.
	TypeUserRegistered Type = "user_registered"

	// TypeUserLoggedIn fires once per successful credential login.
	TypeUserLoggedIn Type = "user_logged_in"

	// TypeUserUpdated fires when a user mutates their profile.
	TypeUserUpdated Type = "user_updated"

	// TypeUserDeleted fires when a user account is removed.
	TypeUserDeleted Type = "user_deleted"
)

// # Event Value

// Event is an immutable record of a domain occurrence.
//
// Payload must be treated as read-only by every subscriber; events are
// shared between the synchronous and queued delivery paths.
type Event struct {
	Type       Type           `json:"event_type"`
	Payload    map[string]any `json:"data"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// New constructs an [Event] stamped with the current time.
func New(eventType Type, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now(),
	}
}

// Handler consumes a single event. A non-nil error is reported by the bus
// but never propagated to the publisher.
type Handler func(Event) error
