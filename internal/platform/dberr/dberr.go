// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/vidora/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes we classify.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRep      = "22P02"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Parameters
//   - err: The raw driver error.
//   - resource: Human name used in NotFound/Conflict messages (e.g. "Video").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint and input classes
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			conflict := apperr.Conflict(fmt.Sprintf("%s already exists", resource))
			conflict.Cause = err
			return conflict
		case codeForeignKeyViolation:
			notFound := apperr.NotFound("Referenced resource")
			notFound.Cause = err
			return notFound
		case codeInvalidTextRep:
			bad := apperr.BadRequest("Invalid identifier")
			bad.Cause = err
			return bad
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint failure,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key failure,
// optionally restricted to the named constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != codeForeignKeyViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}
