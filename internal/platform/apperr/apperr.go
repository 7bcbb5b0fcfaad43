// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

/*
Package apperr defines the centralized error taxonomy for Identra.

Every failure that domain code can classify is expressed as an [AppError]
carrying a closed [Kind] discriminator instead of an open class hierarchy.
Callers switch on Kind; the single boundary handler in the respond package
turns the value into a wire envelope.

Architecture:

  - Kind: Closed set of failure categories (Auth, Business, Database, ...).
  - Defaults: Each Kind fixes a default transport code and log severity.
  - Overrides: Raise sites may override code, severity, and details.

Every error that leaves the service layer should be an [AppError] (or an
error the respond package knows how to classify) to guarantee consistent
API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Failure Taxonomy

// Kind discriminates the closed set of failure categories.
type Kind uint8

const (
	// KindUnclassified is the catch-all for failures no layer claimed.
	KindUnclassified Kind = iota

	// KindAuth covers credential and token verification failures.
	KindAuth

	// KindForbidden covers authenticated-but-not-allowed failures.
	KindForbidden

	// KindBusiness covers domain rule violations (duplicate username, ...).
	KindBusiness

	// KindNotFound covers lookups that resolved to nothing.
	KindNotFound

	// KindValidation covers semantically invalid input detected in services.
	KindValidation

	// KindDatabase covers storage-layer faults surfaced to the caller.
	KindDatabase
)

// String returns the machine-readable name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindBusiness:
		return "business"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindDatabase:
		return "database"
	default:
		return "unclassified"
	}
}

// DefaultCode maps a Kind to its default transport status code.
func (k Kind) DefaultCode() int {
	switch k {
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBusiness:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DefaultSeverity maps a Kind to its default log severity.
func (k Kind) DefaultSeverity() Severity {
	switch k {
	case KindAuth, KindForbidden, KindBusiness:
		return SeverityWarning
	case KindNotFound, KindValidation:
		return SeverityInfo
	default:
		return SeverityError
	}
}

// # Log Severity

// Severity is the logging level hint attached to an [AppError].
type Severity string

const (
	SeverityDebug    Severity = "debug"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// # Canonical Error Type

// AppError is the canonical error value for the Identra API.
//
// It carries the Kind discriminator, a transport status code, a client-safe
// message, an optional structured details payload, and a severity hint for
// the boundary logger.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to
// clients to avoid leaking internal implementation details.
type AppError struct {
	// Kind is the failure category discriminator.
	Kind Kind `json:"kind"`
	// Code is the transport status code for this failure.
	Code int `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// Details holds optional structured information about the failure.
	Details map[string]any `json:"details,omitempty"`
	// Severity is the level the boundary handler logs this failure at.
	Severity Severity `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// New creates an [AppError] of the given Kind with its default code and
// severity. Use the With* methods to override per raise-site.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:     kind,
		Code:     kind.DefaultCode(),
		Message:  message,
		Severity: kind.DefaultSeverity(),
	}
}

// # Per-Site Overrides

// WithCode overrides the default transport status code.
func (e *AppError) WithCode(code int) *AppError {
	e.Code = code
	return e
}

// WithSeverity overrides the default log severity.
func (e *AppError) WithSeverity(severity Severity) *AppError {
	e.Severity = severity
	return e
}

// WithDetails attaches a structured details payload.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// WithCause records the underlying error for server-side logging.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// # Kind Constructors

// Auth creates a 401/warning [AppError] for credential or token failures.
func Auth(message string) *AppError { return New(KindAuth, message) }

// Forbidden creates a 403/warning [AppError].
func Forbidden(message string) *AppError { return New(KindForbidden, message) }

// Business creates a 400/warning [AppError] for domain rule violations.
func Business(message string) *AppError { return New(KindBusiness, message) }

// NotFound creates a 404/info [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("User") // Returns "User not found"
func NotFound(resource string) *AppError {
	return New(KindNotFound, resource+" not found")
}

// Validation creates a 400/info [AppError] for semantically invalid input.
func Validation(message string) *AppError { return New(KindValidation, message) }

// Database creates a 500/error [AppError] wrapping a storage fault.
func Database(cause error) *AppError {
	return New(KindDatabase, "database operation failed").WithCause(cause)
}

// Unclassified creates a 500/error [AppError] wrapping an unexpected failure.
// The cause is stored for logging but is never sent to the client.
func Unclassified(cause error) *AppError {
	return New(KindUnclassified, "internal server error").WithCause(cause)
}

// # Helpers

// IsKind reports whether err (or any error in its chain) is an [*AppError]
// of the given Kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
