// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

// Package dberr provides a bridge between low-level database errors and
// the application error taxonomy.
//
// Repositories wrap every unexpected pgx failure with [Wrap] so that the
// boundary handler can recognize a storage fault and emit the fixed
// "database operation failed" envelope without leaking SQL details.
package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// Error marks a failure as originating in the storage layer.
type Error struct {
	// Op names the repository operation that failed, for logging.
	Op string
	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string { return "dberr: " + e.Op + ": " + e.Err.Error() }

// Unwrap exposes the driver error to [errors.Is] and [errors.As].
func (e *Error) Unwrap() error { return e.Err }

// IsNoRows reports whether err is the driver's empty-result sentinel.
// Repositories use this to translate "no rows" into domain not-found
// semantics instead of a storage fault.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Wrap classifies a database error as a storage fault.
// It returns nil when err is nil so call sites can wrap unconditionally.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
