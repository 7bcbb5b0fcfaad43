// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package profile_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identra/identra/internal/platform/apperr"
	"github.com/identra/identra/internal/platform/events"
	"github.com/identra/identra/internal/users/auth"
	"github.com/identra/identra/internal/users/profile"
)

// memoryRepository is an in-memory auth.UserRepository for profile tests.
type memoryRepository struct {
	users map[string]*auth.User
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[string]*auth.User)}
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repository.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := repository.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	repository.users[user.ID] = &copied
	return nil
}

func (repository *memoryRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := repository.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repository.users, id)
	return nil
}

// recordingBus captures published events.
type recordingBus struct {
	published []events.Event
}

func (bus *recordingBus) Publish(event events.Event) {
	bus.published = append(bus.published, event)
}

func seedUser(t *testing.T, repository *memoryRepository) *auth.User {
	t.Helper()
	now := time.Now().UTC()
	user := &auth.User{
		ID:           "0190d6a0-93e8-7cc1-a2ed-0f3f1a9e4b01",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefa",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repository.Create(context.Background(), user))
	return user
}

/*
TestGetProfile verifies lookup of an existing and a missing account.
*/
func TestGetProfile(t *testing.T) {
	repository := newMemoryRepository()
	service := profile.NewService(repository, &recordingBus{}, nil)
	seeded := seedUser(t, repository)

	found, err := service.GetProfile(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = service.GetProfile(context.Background(), "0190d6a0-93e8-7cc1-a2ed-0f3f1a9e4b02")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

/*
TestUpdateEmail verifies the change, the conflict rule, and the event.
*/
func TestUpdateEmail(t *testing.T) {
	t.Run("success_publishes_event", func(t *testing.T) {
		repository := newMemoryRepository()
		bus := &recordingBus{}
		service := profile.NewService(repository, bus, nil)
		seeded := seedUser(t, repository)

		updated, err := service.UpdateEmail(context.Background(), seeded.ID, "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", updated.Email)

		require.Len(t, bus.published, 1)
		assert.Equal(t, events.TypeUserUpdated, bus.published[0].Type)
	})

	t.Run("unchanged_email_is_noop", func(t *testing.T) {
		repository := newMemoryRepository()
		bus := &recordingBus{}
		service := profile.NewService(repository, bus, nil)
		seeded := seedUser(t, repository)

		updated, err := service.UpdateEmail(context.Background(), seeded.ID, seeded.Email)
		require.NoError(t, err)
		assert.Equal(t, seeded.Email, updated.Email)
		assert.Empty(t, bus.published)
	})

	t.Run("conflict_with_other_account", func(t *testing.T) {
		repository := newMemoryRepository()
		bus := &recordingBus{}
		service := profile.NewService(repository, bus, nil)
		seeded := seedUser(t, repository)

		other := *seeded
		other.ID = "0190d6a0-93e8-7cc1-a2ed-0f3f1a9e4b02"
		other.Username = "bob"
		other.Email = "bob@example.com"
		require.NoError(t, repository.Create(context.Background(), &other))

		_, err := service.UpdateEmail(context.Background(), seeded.ID, "bob@example.com")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.Code)
		assert.Equal(t, "Email already registered", ae.Message)
		assert.Empty(t, bus.published)
	})
}

// stubActivity is a canned profile.ActivityReader.
type stubActivity struct {
	last time.Time
	err  error
}

func (activity *stubActivity) LastLogin(_ context.Context, userID string) (time.Time, error) {
	return activity.last, activity.err
}

/*
TestLastSeen verifies the advisory last-login read: present, absent, and
failing readers all resolve without surfacing an error.
*/
func TestLastSeen(t *testing.T) {
	repository := newMemoryRepository()
	seeded := seedUser(t, repository)
	recorded := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("recorded_login", func(t *testing.T) {
		service := profile.NewService(repository, &recordingBus{}, &stubActivity{last: recorded})

		lastSeen := service.LastSeen(context.Background(), seeded.ID)
		require.NotNil(t, lastSeen)
		assert.Equal(t, recorded, *lastSeen)
	})

	t.Run("no_record", func(t *testing.T) {
		service := profile.NewService(repository, &recordingBus{}, &stubActivity{})
		assert.Nil(t, service.LastSeen(context.Background(), seeded.ID))
	})

	t.Run("reader_fault_is_advisory", func(t *testing.T) {
		service := profile.NewService(repository, &recordingBus{}, &stubActivity{err: context.DeadlineExceeded})
		assert.Nil(t, service.LastSeen(context.Background(), seeded.ID))
	})

	t.Run("no_reader_wired", func(t *testing.T) {
		service := profile.NewService(repository, &recordingBus{}, nil)
		assert.Nil(t, service.LastSeen(context.Background(), seeded.ID))
	})
}

/*
TestDelete verifies removal and the deletion event.
*/
func TestDelete(t *testing.T) {
	repository := newMemoryRepository()
	bus := &recordingBus{}
	service := profile.NewService(repository, bus, nil)
	seeded := seedUser(t, repository)

	require.NoError(t, service.Delete(context.Background(), seeded.ID))

	_, err := service.GetProfile(context.Background(), seeded.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.TypeUserDeleted, bus.published[0].Type)
	assert.Equal(t, seeded.ID, bus.published[0].Payload["user_id"])

	// Deleting again reports not found, no second event.
	err = service.Delete(context.Background(), seeded.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Len(t, bus.published, 1)
}
