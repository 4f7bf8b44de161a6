// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "account_email_key"}, http.StatusConflict},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, http.StatusNotFound},
		{"bad_uuid", &pgconn.PgError{Code: "22P02"}, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
		{"already_classified", apperr.Forbidden("not authorized"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "Video")
			assert.True(t, apperr.HasStatus(wrapped, tt.status))
		})
	}

	assert.Nil(t, dberr.Wrap(nil, "Video"))
	assert.Equal(t, "Video not found", dberr.Wrap(pgx.ErrNoRows, "Video").Error())
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "account_username_key"})

	assert.True(t, dberr.IsUniqueViolation(err, ""))
	assert.True(t, dberr.IsUniqueViolation(err, "account_username_key"))
	assert.False(t, dberr.IsUniqueViolation(err, "account_email_key"))
	assert.False(t, dberr.IsUniqueViolation(errors.New("plain"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "comment_videoid_fkey"})

	assert.True(t, dberr.IsForeignKeyViolation(err, ""))
	assert.True(t, dberr.IsForeignKeyViolation(err, "comment_videoid_fkey"))
	assert.False(t, dberr.IsForeignKeyViolation(err, "comment_tweetid_fkey"))
	assert.False(t, dberr.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}, ""))
}
