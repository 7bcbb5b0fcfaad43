// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package profile

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/identra/identra/internal/platform/middleware"
	requestutil "github.com/identra/identra/internal/platform/request"
	"github.com/identra/identra/internal/platform/respond"
	"github.com/identra/identra/internal/platform/validate"
	"github.com/identra/identra/internal/users/auth"
)

// Handler exposes the profile use cases over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the HTTP handler for the user profile endpoints.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the profile endpoints. The /me group requires a valid
// bearer token; the by-id lookup is also authenticated.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/me", handler.GetMe)
		protected.Patch("/me", handler.UpdateMe)
		protected.Delete("/me", handler.DeleteMe)
		protected.Get("/{userID}", handler.GetByID)
	})

	return router
}

// updateRequest is the PATCH /me payload. Only the email is mutable.
type updateRequest struct {
	Email string `json:"email"`
}

// meView is the /me representation: the public fields plus the caller's
// recorded last login, when one exists.
type meView struct {
	auth.PublicUser
	LastLoginAt *time.Time `json:"last_login,omitempty"`
}

/*
GetMe handles GET /api/v1/users/me.

Responses:
  - 200: Success envelope with the caller's public representation
  - 401: Missing or invalid token
*/
func (handler *Handler) GetMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	user, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	respond.OK(writer, request, meView{
		PublicUser:  user.Public(),
		LastLoginAt: handler.service.LastSeen(request.Context(), userID),
	})
}

/*
GetByID handles GET /api/v1/users/{userID}.

Responses:
  - 200: Success envelope with the target's public representation
  - 400: Malformed user ID
  - 404: Unknown or deleted account
*/
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	validator := &validate.Validator{}
	validator.UUID("user_id", userID)
	if err := validator.Err(); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	user, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	respond.OK(writer, request, user.Public())
}

/*
UpdateMe handles PATCH /api/v1/users/me.

Responses:
  - 200: Success envelope with the updated public representation
  - 400: Request-shape validation failure
  - 409: Email already registered
*/
func (handler *Handler) UpdateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	var payload updateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(auth.FieldEmail, payload.Email).
		Email(auth.FieldEmail, payload.Email)
	if err := validator.Err(); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	user, err := handler.service.UpdateEmail(request.Context(), userID, payload.Email)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	respond.OK(writer, request, user.Public())
}

/*
DeleteMe handles DELETE /api/v1/users/me.

Responses:
  - 200: Success envelope with a null data payload
  - 401: Missing or invalid token
*/
func (handler *Handler) DeleteMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	respond.OK(writer, request, nil)
}
