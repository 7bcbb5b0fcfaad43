// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package auth

import (
	"context"
	"time"

	"github.com/identra/identra/internal/platform/apperr"
	"github.com/identra/identra/internal/platform/events"
	"github.com/identra/identra/internal/platform/sec"
	"github.com/identra/identra/pkg/uuidv7"
)

// # Collaborator Contracts

// TokenProvider issues and verifies stateless access tokens.
// The concrete implementation is sec.TokenService (RS256).
type TokenProvider interface {
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Publisher is the slice of the event bus the service needs. Publish must
// never block on or fail because of subscriber behavior.
type Publisher interface {
	Publish(event events.Event)
}

// # Service

// Service implements the account identity use cases: register, authenticate,
// and token issue/verify.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	bus            Publisher
	tokenTTL       time.Duration
}

// NewService wires the identity service with its collaborators.
func NewService(userRepository UserRepository, tokenProvider TokenProvider, bus Publisher, tokenTTL time.Duration) *Service {
	return &Service{
		userRepository: userRepository,
		tokenProvider:  tokenProvider,
		bus:            bus,
		tokenTTL:       tokenTTL,
	}
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

/*
Register creates a new account after enforcing the uniqueness rules.

The username check runs before the email check, so a request that collides
on both reports the username conflict.

Parameters:
  - context: context.Context
  - username: string (Desired handle, pre-validated at the transport layer)
  - email: string
  - password: string (Plaintext, hashed here and never stored)

Returns:
  - *User: The persisted account
  - error: apperr.Business (409) on conflicts, storage faults otherwise
*/
func (service *Service) Register(context context.Context, username, email, password string) (*User, error) {

	// Uniqueness: username first, then email. A NotFound from the lookup is
	// the happy path here; anything else is a real storage fault and must
	// propagate untranslated.
	if _, err := service.userRepository.FindByUsername(context, username); err == nil {
		return nil, apperr.Business("Username already registered").WithCode(409)
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Business("Email already registered").WithCode(409)
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, err
	}

	currentTime := time.Now().UTC()
	user := &User{
		ID:           uuidv7.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    currentTime,
		UpdatedAt:    currentTime,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Exactly one registration event per persisted account.
	service.bus.Publish(NewUserRegisteredEvent(user))

	return user, nil
}

/*
Authenticate verifies a username/password pair.

Unknown username and wrong password produce the exact same error, so the
response gives no signal about which part was wrong.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *User: The verified account
  - error: apperr.Auth (401) on any credential failure
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*User, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Auth("Incorrect username or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Auth("Incorrect username or password")
	}

	return user, nil
}

/*
Login authenticates the credentials and issues an access token.

Parameters:
  - context: context.Context
  - username: string
  - password: string
  - ipAddress: string (Client address carried in the login event)

Returns:
  - *LoginResult: Bearer token material
  - error: apperr.Auth (401) on credential failures
*/
func (service *Service) Login(context context.Context, username, password, ipAddress string) (*LoginResult, error) {
	user, err := service.Authenticate(context, username, password)
	if err != nil {
		return nil, err
	}

	result, err := service.IssueToken(user)
	if err != nil {
		return nil, err
	}

	service.bus.Publish(NewUserLoggedInEvent(user, ipAddress))

	return result, nil
}

/*
IssueToken creates a signed bearer token for an already-verified user.

Returns:
  - *LoginResult: Token, type, and lifetime in seconds
  - error: Signing failures
*/
func (service *Service) IssueToken(user *User) (*LoginResult, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, service.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(service.tokenTTL.Seconds()),
	}, nil
}

/*
VerifyToken validates a bearer token string and returns its claims.

Any verification failure (expired, tampered, wrong key) is collapsed into a
single auth error; clients never learn which check failed.

Returns:
  - *sec.AuthClaims: Decoded claims on success
  - error: apperr.Auth (401) on any verification failure
*/
func (service *Service) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	claims, err := service.tokenProvider.VerifyToken(tokenString)
	if err != nil {
		return nil, apperr.Auth("Invalid or expired token").WithCause(err)
	}

	return claims, nil
}
