// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

/*
Package profile implements the account self-service use cases: reading,
updating, and deleting an existing user profile.

It reuses the identity domain's entities and repository; only the use cases
differ, which is why this package carries no storage code of its own.
*/
package profile

import (
	"context"
	"time"

	"github.com/identra/identra/internal/platform/apperr"
	"github.com/identra/identra/internal/users/auth"
)

// ActivityReader reports per-user activity collected by the event
// subscribers. The concrete implementation is activity.Recorder.
type ActivityReader interface {
	LastLogin(ctx context.Context, userID string) (time.Time, error)
}

// Service implements the profile use cases on top of the identity repository.
type Service struct {
	userRepository auth.UserRepository
	bus            auth.Publisher
	activity       ActivityReader
}

// NewService wires the profile service. activity may be nil, in which case
// profiles simply carry no last-login information.
func NewService(userRepository auth.UserRepository, bus auth.Publisher, activity ActivityReader) *Service {
	return &Service{
		userRepository: userRepository,
		bus:            bus,
		activity:       activity,
	}
}

/*
GetProfile returns the account with the given ID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The account
  - error: apperr.NotFound (404) or storage faults
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
LastSeen returns the user's recorded last-login time, or nil when no record
exists. Activity is advisory: an absent reader or a cache fault never fails
a profile read.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *time.Time: Last login, or nil when unknown
*/
func (service *Service) LastSeen(context context.Context, userID string) *time.Time {
	if service.activity == nil {
		return nil
	}

	lastLogin, err := service.activity.LastLogin(context, userID)
	if err != nil || lastLogin.IsZero() {
		return nil
	}

	return &lastLogin
}

/*
UpdateEmail changes the account's email after a uniqueness check.

Parameters:
  - context: context.Context
  - userID: string
  - email: string (New address, pre-validated at the transport layer)

Returns:
  - *auth.User: The updated account
  - error: apperr.Business (409) on conflict, apperr.NotFound, or storage faults
*/
func (service *Service) UpdateEmail(context context.Context, userID, email string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Unchanged email is a no-op, not a conflict with ourselves.
	if user.Email == email {
		return user, nil
	}

	if existing, err := service.userRepository.FindByEmail(context, email); err == nil && existing.ID != user.ID {
		return nil, apperr.Business("Email already registered").WithCode(409)
	} else if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	user.Email = email
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.bus.Publish(auth.NewUserUpdatedEvent(user))

	return user, nil
}

/*
Delete soft-deletes the account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound (404) or storage faults
*/
func (service *Service) Delete(context context.Context, userID string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if err := service.userRepository.SoftDelete(context, user.ID); err != nil {
		return err
	}

	service.bus.Publish(auth.NewUserDeletedEvent(user))

	return nil
}
