// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identra/identra/internal/platform/apperr"
	"github.com/identra/identra/internal/platform/ctxutil"
	"github.com/identra/identra/internal/platform/dberr"
	"github.com/identra/identra/internal/platform/respond"
	"github.com/identra/identra/internal/platform/validate"
)

// newRequest builds a GET request carrying a known correlation id.
func newRequest(t *testing.T) *http.Request {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := ctxutil.WithRequestID(request.Context(), "req-abc-123")
	return request.WithContext(ctx)
}

// decodeError parses the recorded body into the error envelope.
func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

/*
TestSuccess_EnvelopeShape verifies the fixed success envelope fields.
*/
func TestSuccess_EnvelopeShape(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, newRequest(t), map[string]string{"id": "u1"})

	assert.Equal(t, http.StatusCreated, recorder.Code)

	var envelope respond.SuccessEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, http.StatusCreated, envelope.Code)
	assert.Equal(t, "success", envelope.Message)
	assert.Equal(t, "req-abc-123", envelope.RequestID)
	assert.Equal(t, map[string]any{"id": "u1"}, envelope.Data)
}

/*
TestFailure_AppError verifies branch 1: taxonomy errors are used verbatim.
*/
func TestFailure_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	err := apperr.Business("Username already registered").
		WithCode(http.StatusConflict).
		WithDetails(map[string]any{"field": "username"})

	respond.Failure(recorder, newRequest(t), err)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, http.StatusConflict, envelope.Code)
	assert.Equal(t, "Username already registered", envelope.Message)
	assert.Equal(t, "req-abc-123", envelope.RequestID)
	assert.Equal(t, "username", envelope.ErrorDetails["field"])
}

/*
TestFailure_ValidationError verifies branch 2: the fixed 400 validation shape.
*/
func TestFailure_ValidationError(t *testing.T) {
	recorder := httptest.NewRecorder()
	v := &validate.Validator{}
	v.Required("email", "")

	respond.Failure(recorder, newRequest(t), v.Err())

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, "request parameter validation failed", envelope.Message)

	fieldErrors, ok := envelope.ErrorDetails["errors"].([]any)
	require.True(t, ok)
	require.Len(t, fieldErrors, 1)
	first, ok := fieldErrors[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "email", first["field"])
}

/*
TestFailure_StatusError verifies branch 3: transport errors pass through.
*/
func TestFailure_StatusError(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Failure(recorder, newRequest(t), &respond.StatusError{
		Status:  http.StatusTooManyRequests,
		Message: "Rate limit exceeded",
	})

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, "Rate limit exceeded", envelope.Message)
	assert.Nil(t, envelope.ErrorDetails)
}

/*
TestFailure_StorageError verifies branch 4: storage faults map to the fixed
500 message and never leak the SQL text into Message.
*/
func TestFailure_StorageError(t *testing.T) {
	recorder := httptest.NewRecorder()
	driverFailure := errors.New("pq: relation does not exist")

	respond.Failure(recorder, newRequest(t), dberr.Wrap(driverFailure, "user.create"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, "database operation failed", envelope.Message)
	assert.Equal(t, driverFailure.Error(), envelope.ErrorDetails["original_error"])
}

/*
TestFailure_Fallback verifies branch 5: anything unclassified becomes the
generic 500 envelope with the exception type recorded.
*/
func TestFailure_Fallback(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Failure(recorder, newRequest(t), errors.New("something odd"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, "internal server error", envelope.Message)
	assert.Equal(t, "*errors.errorString", envelope.ErrorDetails["exception_type"])
	assert.Equal(t, "something odd", envelope.ErrorDetails["original_error"])
}

/*
TestFailure_BranchPriority verifies that an AppError wins even when a
storage fault sits in its cause chain.
*/
func TestFailure_BranchPriority(t *testing.T) {
	recorder := httptest.NewRecorder()
	storage := dberr.Wrap(errors.New("timeout"), "user.find_by_id")
	err := apperr.NotFound("User").WithCause(storage)

	respond.Failure(recorder, newRequest(t), err)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	envelope := decodeError(t, recorder)
	assert.Equal(t, "User not found", envelope.Message)
}

/*
TestRouterFallbacks verifies the 404/405 handlers keep the envelope shape.
*/
func TestRouterFallbacks(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.NotFoundHandler(recorder, newRequest(t))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		envelope := decodeError(t, recorder)
		assert.Equal(t, "route not found", envelope.Message)
		assert.Equal(t, "req-abc-123", envelope.RequestID)
	})

	t.Run("method_not_allowed", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		respond.MethodNotAllowedHandler(recorder, newRequest(t))

		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		envelope := decodeError(t, recorder)
		assert.Equal(t, "method not allowed", envelope.Message)
	})
}
