// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/identra/identra/internal/platform/middleware"
	requestutil "github.com/identra/identra/internal/platform/request"
	"github.com/identra/identra/internal/platform/respond"
	"github.com/identra/identra/internal/platform/validate"
)

// Payload length limits enforced at the transport boundary.
const (
	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input ceiling
	maxEmailLength    = 254
)

// Handler exposes the identity use cases over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates the HTTP handler for the auth endpoints.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the auth endpoints. Both are anonymous by design.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.Register)
	router.Post("/login", handler.Login)

	return router
}

// registerRequest is the POST /register payload.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the POST /login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles POST /api/v1/auth/register.

Responses:
  - 201: Success envelope with the public user representation
  - 400: Request-shape validation failure
  - 409: Username or email already registered
*/
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, payload.Username).
		MinLen(FieldUsername, payload.Username, minUsernameLength).
		MaxLen(FieldUsername, payload.Username, maxUsernameLength).
		Required(FieldEmail, payload.Email).
		MaxLen(FieldEmail, payload.Email, maxEmailLength).
		Email(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).
		MinLen(FieldPassword, payload.Password, minPasswordLength).
		MaxLen(FieldPassword, payload.Password, maxPasswordLength)
	if err := validator.Err(); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	respond.Created(writer, request, user.Public())
}

/*
Login handles POST /api/v1/auth/login.

Responses:
  - 200: Success envelope with {access_token, token_type, expires_in}
  - 400: Request-shape validation failure
  - 401: Incorrect username or password
*/
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, payload.Username).
		Required(FieldPassword, payload.Password)
	if err := validator.Err(); err != nil {
		respond.Failure(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), payload.Username, payload.Password, middleware.RealIP(request))
	if err != nil {
		respond.Failure(writer, request, err)
		return
	}

	respond.OK(writer, request, result)
}
