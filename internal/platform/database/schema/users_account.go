// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

// Package schema centralizes table and column names so repositories never
// hardcode identifiers in SQL strings.
package schema

import "strings"

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
	DeletedAt:    "deleted_at",
}

// Columns returns the non-deleted column names in canonical SELECT order.
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.CreatedAt, t.UpdatedAt,
	}
}

// ColumnList returns the canonical columns joined for use in a SELECT.
func (t UserAccountTable) ColumnList() string {
	return strings.Join(t.Columns(), ", ")
}
