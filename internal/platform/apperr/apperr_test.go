// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identra/identra/internal/platform/apperr"
)

/*
TestKind_Defaults verifies the default code and severity fixed by each Kind.
*/
func TestKind_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		kind     apperr.Kind
		code     int
		severity apperr.Severity
	}{
		{"auth", apperr.KindAuth, http.StatusUnauthorized, apperr.SeverityWarning},
		{"forbidden", apperr.KindForbidden, http.StatusForbidden, apperr.SeverityWarning},
		{"business", apperr.KindBusiness, http.StatusBadRequest, apperr.SeverityWarning},
		{"not_found", apperr.KindNotFound, http.StatusNotFound, apperr.SeverityInfo},
		{"validation", apperr.KindValidation, http.StatusBadRequest, apperr.SeverityInfo},
		{"database", apperr.KindDatabase, http.StatusInternalServerError, apperr.SeverityError},
		{"unclassified", apperr.KindUnclassified, http.StatusInternalServerError, apperr.SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperr.New(tt.kind, "boom")
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

/*
TestAppError_Overrides verifies per-site overrides of code, severity, and details.
*/
func TestAppError_Overrides(t *testing.T) {
	cause := errors.New("underlying")

	err := apperr.Business("Username already registered").
		WithCode(http.StatusConflict).
		WithSeverity(apperr.SeverityInfo).
		WithDetails(map[string]any{"field": "username"}).
		WithCause(cause)

	assert.Equal(t, apperr.KindBusiness, err.Kind)
	assert.Equal(t, http.StatusConflict, err.Code)
	assert.Equal(t, apperr.SeverityInfo, err.Severity)
	assert.Equal(t, "username", err.Details["field"])
	assert.Equal(t, cause, errors.Unwrap(err))
}

/*
TestAppError_ErrorsAs verifies the value survives wrapping through fmt.Errorf.
*/
func TestAppError_ErrorsAs(t *testing.T) {
	original := apperr.Auth("Incorrect username or password")
	wrapped := fmt.Errorf("login: %w", original)

	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, original, extracted)

	assert.True(t, apperr.IsKind(wrapped, apperr.KindAuth))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindBusiness))
	assert.Nil(t, apperr.As(errors.New("plain")))
}

/*
TestNotFound_MessageFormat verifies the resource-based message constructor.
*/
func TestNotFound_MessageFormat(t *testing.T) {
	err := apperr.NotFound("User")
	assert.Equal(t, "User not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Code)
}

/*
TestUnclassified_HidesCause verifies the client message never carries the cause.
*/
func TestUnclassified_HidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := apperr.Unclassified(cause)

	assert.Equal(t, "internal server error", err.Error())
	assert.Equal(t, cause, err.Cause)
}
