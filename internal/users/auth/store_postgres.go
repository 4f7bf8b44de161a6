// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to
// [apperr.AppError] types through [dberr.Wrap].
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// selectUserQuery reads every column of users.account; the caller appends the WHERE clause.
var selectUserQuery = fmt.Sprintf(`
	SELECT %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, COALESCE(%s, ''), %s, %s
	FROM %s`,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
	schema.UserAccount.Fullname, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
	schema.UserAccount.Password, schema.UserAccount.RefreshToken,
	schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	schema.UserAccount.Table,
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Fullname,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: The unique indexes on username and email back the uniqueness
check performed by the service, so a racing duplicate still yields Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict on a duplicate or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Fullname, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.Password, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.Fullname,
		user.AvatarURL,
		user.CoverImageURL,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			conflict := apperr.Conflict(MsgUserAlreadyExists)
			conflict.Cause = err
			return conflict
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", dberr.Wrap(err, "User"))
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, selectUserQuery+` WHERE `+schema.UserAccount.ID+` = $1`, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, selectUserQuery+` WHERE `+schema.UserAccount.Email+` = $1`, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, selectUserQuery+` WHERE `+schema.UserAccount.Username+` = $1`, username))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
SetRefreshToken overwrites (or with an empty token, unsets) the stored refresh token.

Description: A single-row UPDATE; concurrent rotations resolve as last write wins.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: NotFound when the user vanished, or database errors
*/
func (repository *PostgresUserRepository) SetRefreshToken(context context.Context, userID, token string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = NULLIF($2, ''), %s = NOW()
		WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.RefreshToken,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, userID, token)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_token_failed: %w", dberr.Wrap(err, "User"))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
UpdatePassword replaces the stored password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: NotFound or database errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", dberr.Wrap(err, "User"))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
