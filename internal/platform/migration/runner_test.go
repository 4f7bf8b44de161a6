// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidora/internal/platform/migration"
)

func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/vidora?sslmode=disable", "pgx5://u:p@db:5432/vidora?sslmode=disable"},
		{"postgresql_scheme", "postgresql://db/vidora", "pgx5://db/vidora"},
		{"already_pgx5", "pgx5://db/vidora", "pgx5://db/vidora"},
		{"keyword_dsn_untouched", "host=db dbname=vidora", "host=db dbname=vidora"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5DSN(tt.dsn))
		})
	}
}
