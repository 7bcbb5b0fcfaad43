// Copyright (c) 2026 Identra. All rights reserved.
// Author: dev@identra.io

package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/identra/identra/internal/platform/apperr"
	"github.com/identra/identra/internal/platform/database/schema"
	"github.com/identra/identra/internal/platform/dberr"
)

// PostgresUserRepository is the pgx-backed implementation of [UserRepository].
//
// All rows live in the users.account table. Deletion is soft: deleted rows
// keep their data but are excluded from every lookup.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a PostgreSQL-backed user repository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// account is the schema definition shared by every query in this file.
var account = schema.UserAccount

/*
FindByID returns the account with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or storage faults
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + account.ColumnList() + ` FROM ` + account.Table + `
	          WHERE ` + account.ID + ` = $1 AND ` + account.DeletedAt + ` IS NULL`

	return repository.scanOne(context, "user.find_by_id", query, id)
}

/*
FindByEmail returns the account with the given email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or storage faults
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + account.ColumnList() + ` FROM ` + account.Table + `
	          WHERE ` + account.Email + ` = $1 AND ` + account.DeletedAt + ` IS NULL`

	return repository.scanOne(context, "user.find_by_email", query, email)
}

/*
FindByUsername returns the account with the given username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or storage faults
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + account.ColumnList() + ` FROM ` + account.Table + `
	          WHERE ` + account.Username + ` = $1 AND ` + account.DeletedAt + ` IS NULL`

	return repository.scanOne(context, "user.find_by_username", query, username)
}

/*
Create persists a brand-new user account.

Parameters:
  - context: context.Context
  - user: *User (ID and timestamps must already be set)

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `INSERT INTO ` + account.Table + ` (` + account.ColumnList() + `)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "user.create")
}

/*
Update persists changes to the mutable fields of an account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound if the row vanished, or persistence failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `UPDATE ` + account.Table + `
	          SET ` + account.Email + ` = $2, ` + account.PasswordHash + ` = $3, ` + account.UpdatedAt + ` = $4
	          WHERE ` + account.ID + ` = $1 AND ` + account.DeletedAt + ` IS NULL`

	commandTag, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "user.update")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
SoftDelete marks the account as deleted without removing the row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if already gone, or persistence failures
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	query := `UPDATE ` + account.Table + `
	          SET ` + account.DeletedAt + ` = $2, ` + account.UpdatedAt + ` = $2
	          WHERE ` + account.ID + ` = $1 AND ` + account.DeletedAt + ` IS NULL`

	commandTag, err := repository.pool.Exec(context, query, id, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "user.soft_delete")
	}

	if commandTag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// scanOne runs a single-row lookup and maps driver errors to the taxonomy.
func (repository *PostgresUserRepository) scanOne(context context.Context, op, query string, arg any) (*User, error) {
	var user User

	row := repository.pool.QueryRow(context, query, arg)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, op)
	}

	return &user, nil
}
