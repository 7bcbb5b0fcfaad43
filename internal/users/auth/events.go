// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package auth

import "github.com/identra/identra/internal/platform/events"

// # Domain Event Constructors

// Payload field names shared by the account lifecycle events.
const (
	payloadUserID    = "user_id"
	payloadUsername  = "username"
	payloadEmail     = "email"
	payloadIPAddress = "ip_address"
)

// NewUserRegisteredEvent records a successful registration.
func NewUserRegisteredEvent(user *User) events.Event {
	return events.New(events.TypeUserRegistered, map[string]any{
		payloadUserID:   user.ID,
		payloadUsername: user.Username,
		payloadEmail:    user.Email,
	})
}

// NewUserLoggedInEvent records a successful credential login.
// The client IP is carried for the activity recorder and audit trail.
func NewUserLoggedInEvent(user *User, ipAddress string) events.Event {
	return events.New(events.TypeUserLoggedIn, map[string]any{
		payloadUserID:    user.ID,
		payloadUsername:  user.Username,
		payloadIPAddress: ipAddress,
	})
}

// NewUserUpdatedEvent records a profile mutation.
func NewUserUpdatedEvent(user *User) events.Event {
	return events.New(events.TypeUserUpdated, map[string]any{
		payloadUserID:   user.ID,
		payloadUsername: user.Username,
		payloadEmail:    user.Email,
	})
}

// NewUserDeletedEvent records an account removal.
func NewUserDeletedEvent(user *User) events.Event {
	return events.New(events.TypeUserDeleted, map[string]any{
		payloadUserID:   user.ID,
		payloadUsername: user.Username,
	})
}
