// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

/*
Package respond provides HTTP response helpers used by all API handlers.

# Architecture

This package centralizes the presentation logic for HTTP responses. Every
outward-facing result is normalized into one of exactly two wire shapes:

  - Success: {code, message, request_id, data}
  - Error:   {code, message, request_id, error_details}

[Failure] is the single translation point from "anything raised" — a
taxonomy error, a request validation failure, a transport error, a storage
fault, or an unclassified failure — into the error envelope plus one log
entry carrying the request correlation id. No other code path formats
errors, which guarantees that no two endpoints disagree on error shape.
*/
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"

	"github.com/identra/identra/internal/platform/apperr"
	"github.com/identra/identra/internal/platform/constants"
	"github.com/identra/identra/internal/platform/ctxutil"
	"github.com/identra/identra/internal/platform/dberr"
	"github.com/identra/identra/internal/platform/validate"
)

// # Wire Envelopes

// SuccessEnvelope is the JSON envelope for successful responses.
type SuccessEnvelope struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Data      any    `json:"data"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Code         int            `json:"code"`
	Message      string         `json:"message"`
	RequestID    string         `json:"request_id"`
	ErrorDetails map[string]any `json:"error_details,omitempty"`
}

// StatusError is a transport-level failure that already carries its final
// HTTP status, e.g. "route not found" produced by the router itself.
// It is passed through the envelope untranslated.
type StatusError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string { return e.Message }

// # Success Writers

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, request *http.Request, data any) {
	Success(writer, request, http.StatusOK, data)
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, request *http.Request, data any) {
	Success(writer, request, http.StatusCreated, data)
}

// Success writes a success envelope with an explicit status code.
func Success(writer http.ResponseWriter, request *http.Request, statusCode int, data any) {
	JSON(writer, statusCode, SuccessEnvelope{
		Code:      statusCode,
		Message:   "success",
		RequestID: ctxutil.GetRequestID(request.Context()),
		Data:      data,
	})
}

// # Central Exception Handler

// Failure converts any error reaching the HTTP boundary into the standard
// error envelope and logs it exactly once at the resolved severity.
//
// # Priority
//
// The branches form a priority list, checked in order; exactly one applies:
//
//  1. [*apperr.AppError]   — code/message/details/severity used verbatim.
//  2. [*validate.Error]    — fixed 400 "request parameter validation failed".
//  3. [*StatusError]       — status passed through; warning below 500, else error.
//  4. [*dberr.Error]       — fixed 500 "database operation failed".
//  5. anything else        — fixed 500 "internal server error".
//
// 5xx envelopes never expose raw internal failure text beyond the generic
// message plus sanitized details.
func Failure(writer http.ResponseWriter, request *http.Request, err error) {
	envelope := ErrorEnvelope{
		RequestID: ctxutil.GetRequestID(request.Context()),
	}
	severity := apperr.SeverityError

	var (
		appError        *apperr.AppError
		validationError *validate.Error
		statusError     *StatusError
		storageError    *dberr.Error
	)

	switch {
	case errors.As(err, &appError):
		envelope.Code = appError.Code
		envelope.Message = appError.Message
		envelope.ErrorDetails = appError.Details
		severity = appError.Severity

	case errors.As(err, &validationError):
		envelope.Code = http.StatusBadRequest
		envelope.Message = "request parameter validation failed"
		envelope.ErrorDetails = map[string]any{"errors": validationError.Fields}
		severity = apperr.SeverityInfo

	case errors.As(err, &statusError):
		envelope.Code = statusError.Status
		envelope.Message = statusError.Message
		severity = apperr.SeverityWarning
		if statusError.Status >= 500 {
			severity = apperr.SeverityError
		}

	case errors.As(err, &storageError):
		envelope.Code = http.StatusInternalServerError
		envelope.Message = "database operation failed"
		envelope.ErrorDetails = map[string]any{"original_error": storageError.Err.Error()}
		severity = apperr.SeverityError

	default:
		envelope.Code = http.StatusInternalServerError
		envelope.Message = "internal server error"
		envelope.ErrorDetails = map[string]any{
			"exception_type": fmt.Sprintf("%T", err),
			"original_error": err.Error(),
		}
		severity = apperr.SeverityError
	}

	logFailure(request, err, envelope, severity)

	JSON(writer, envelope.Code, envelope)
}

// logFailure records the handled failure exactly once at the resolved severity.
// Error and critical entries carry a full stack trace; lower severities must
// not, to keep log volume proportional to actual risk.
func logFailure(request *http.Request, err error, envelope ErrorEnvelope, severity apperr.Severity) {
	logger := ctxutil.GetLogger(request.Context())
	ctx := request.Context()

	attrs := []any{
		slog.String(constants.FieldRequestID, envelope.RequestID),
		slog.String("path", request.URL.Path),
		slog.String("method", request.Method),
		slog.String("client_ip", clientIP(request)),
		slog.Int(constants.FieldCode, envelope.Code),
		slog.String("error_message", envelope.Message),
		slog.Any(constants.FieldErrorDetails, envelope.ErrorDetails),
		slog.String("exception_type", fmt.Sprintf("%T", err)),
	}

	switch severity {
	case apperr.SeverityDebug:
		logger.DebugContext(ctx, "request_failed", attrs...)
	case apperr.SeverityInfo:
		logger.InfoContext(ctx, "request_failed", attrs...)
	case apperr.SeverityWarning:
		logger.WarnContext(ctx, "request_failed", attrs...)
	default:
		// error and critical: include the failure trace.
		stackTrace := make([]byte, 4096)
		length := runtime.Stack(stackTrace, false)
		attrs = append(attrs,
			slog.String("severity", string(severity)),
			slog.String("stack", string(stackTrace[:length])),
		)
		logger.ErrorContext(ctx, "request_failed", attrs...)
	}
}

// clientIP extracts the client address, respecting common proxy headers.
func clientIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}

// # Router Fallback Handlers

// NotFoundHandler produces the standard envelope for unmatched routes.
func NotFoundHandler(writer http.ResponseWriter, request *http.Request) {
	Failure(writer, request, &StatusError{Status: http.StatusNotFound, Message: "route not found"})
}

// MethodNotAllowedHandler produces the standard envelope for bad methods.
func MethodNotAllowedHandler(writer http.ResponseWriter, request *http.Request) {
	Failure(writer, request, &StatusError{Status: http.StatusMethodNotAllowed, Message: "method not allowed"})
}
