// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

/*
Package activity contains the event subscribers that react to account
lifecycle events without the publishers knowing about them.

Two subscribers ship today:

  - Recorder: Persists each user's last-login timestamp in Redis with a TTL.
  - Auditor: Emits a structured audit log line for every lifecycle event.

Both are registered against the event bus at startup; a failure in either is
reported by the bus and never reaches the request path.
*/
package activity

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/identra/identra/internal/platform/constants"
	"github.com/identra/identra/internal/platform/events"
)

// lastLoginTTL bounds how long a last-seen record survives without a new
// login. Thirty days matches the product's "inactive account" window.
const lastLoginTTL = 30 * 24 * time.Hour

// writeTimeout bounds each Redis write so a slow cache cannot back up the
// bus drain loop.
const writeTimeout = 2 * time.Second

// # Last-Login Recorder

// Recorder stores per-user last-login timestamps in Redis.
type Recorder struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRecorder creates the Redis-backed activity recorder.
func NewRecorder(client *redis.Client, logger *slog.Logger) *Recorder {
	return &Recorder{
		client: client,
		logger: logger,
	}
}

// HandleUserLoggedIn records the login time for the event's user.
// It is subscribed to [events.TypeUserLoggedIn].
func (recorder *Recorder) HandleUserLoggedIn(event events.Event) error {
	userID, ok := event.Payload["user_id"].(string)
	if !ok || userID == "" {
		return fmt.Errorf("activity: login event missing user_id")
	}

	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), writeTimeout)
	defer cancel()

	key := constants.RedisPrefixLastLogin + userID
	value := event.OccurredAt.UTC().Format(time.RFC3339)

	if err := recorder.client.Set(ctx, key, value, lastLoginTTL).Err(); err != nil {
		return fmt.Errorf("activity: failed to record last login: %w", err)
	}

	return nil
}

// LastLogin returns the recorded last-login time for a user, or the zero
// time if none is recorded (or it has expired).
func (recorder *Recorder) LastLogin(ctx stdctx.Context, userID string) (time.Time, error) {
	value, err := recorder.client.Get(ctx, constants.RedisPrefixLastLogin+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("activity: failed to read last login: %w", err)
	}

	lastLogin, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("activity: corrupt last login value: %w", err)
	}

	return lastLogin, nil
}

// # Audit Trail

// Auditor writes one structured log line per account lifecycle event.
type Auditor struct {
	logger *slog.Logger
}

// NewAuditor creates the audit-trail subscriber.
func NewAuditor(logger *slog.Logger) *Auditor {
	return &Auditor{logger: logger}
}

// HandleEvent logs the event. It is subscribed to every lifecycle type.
func (auditor *Auditor) HandleEvent(event events.Event) error {
	auditor.logger.Info("audit_event",
		slog.String("event_type", string(event.Type)),
		slog.Time("occurred_at", event.OccurredAt),
		slog.Any("data", event.Payload),
	)
	return nil
}

// # Bus Wiring

// Register subscribes the activity handlers to the bus.
//
// The recorder only cares about logins; the auditor watches the full
// account lifecycle.
func Register(bus *events.Bus, recorder *Recorder, auditor *Auditor) {
	bus.Subscribe(events.TypeUserLoggedIn, recorder.HandleUserLoggedIn)

	for _, eventType := range []events.Type{
		events.TypeUserRegistered,
		events.TypeUserLoggedIn,
		events.TypeUserUpdated,
		events.TypeUserDeleted,
	} {
		bus.Subscribe(eventType, auditor.HandleEvent)
	}
}
