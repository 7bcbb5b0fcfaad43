// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/identra/identra/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Identra", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				var ve *validate.Error
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.field, ve.Fields[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_simple", "user@example.com", true},
		{"valid_subdomain", "user@mail.example.com", true},
		{"missing_at", "userexample.com", false},
		{"missing_domain", "user@", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Lengths checks the rune-aware MinLen and MaxLen rules.
*/
func TestValidator_Lengths(t *testing.T) {
	t.Run("max_len_multibyte", func(t *testing.T) {
		v := &validate.Validator{}
		// 4 runes, more than 4 bytes.
		v.MaxLen("name", "日本語あ", 4)
		assert.False(t, v.HasErrors())
	})

	t.Run("min_len_violation", func(t *testing.T) {
		v := &validate.Validator{}
		v.MinLen("password", "short", 8)
		assert.True(t, v.HasErrors())
	})
}

/*
TestValidator_UUID checks the UUID format rule.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_v7", "0190d6a0-93e8-7cc1-a2ed-0f3f1a9e4b01", true},
		{"valid_uppercase", "0190D6A0-93E8-7CC1-A2ED-0F3F1A9E4B01", true},
		{"not_a_uuid", "user-42", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("id", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_CollectsAllFailures verifies a single Error carries every
failed rule rather than stopping at the first.
*/
func TestValidator_CollectsAllFailures(t *testing.T) {
	v := &validate.Validator{}
	v.Required("username", "").
		Required("email", "").
		MinLen("password", "abc", 8)

	err := v.Err()
	require.NotNil(t, err)

	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
	assert.Equal(t, "request parameter validation failed", ve.Error())
}
