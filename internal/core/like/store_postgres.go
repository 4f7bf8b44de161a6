// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/pointer"
)

// PostgresRepository implements [Repository] on social.like.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a like repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// likeProjection lists the hydrated columns of a like row aliased l joined with its liker o.
var likeProjection = fmt.Sprintf(`
	l.%s, o.%s, o.%s, o.%s, o.%s,
	COALESCE(l.%s::text, ''), COALESCE(l.%s::text, ''), COALESCE(l.%s::text, ''),
	l.%s`,
	schema.SocialLike.ID,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Fullname, schema.UserAccount.AvatarURL,
	schema.SocialLike.VideoID, schema.SocialLike.CommentID, schema.SocialLike.TweetID,
	schema.SocialLike.CreatedAt,
)

func scanLike(row pgx.Row) (*Like, error) {
	like := &Like{}
	err := row.Scan(
		&like.ID,
		&like.LikedBy.ID, &like.LikedBy.Username, &like.LikedBy.Fullname, &like.LikedBy.AvatarURL,
		&like.VideoID, &like.CommentID, &like.TweetID,
		&like.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return like, nil
}

func targetColumn(target Target) (string, string) {
	switch {
	case target.CommentID != "":
		return schema.SocialLike.CommentID, target.CommentID
	case target.TweetID != "":
		return schema.SocialLike.TweetID, target.TweetID
	default:
		return schema.SocialLike.VideoID, target.VideoID
	}
}

/*
Create inserts the like and hydrates the liker in the same statement.

Description: The partial unique indexes on (likedby, target) turn a repeated
like into a Conflict; the foreign keys turn an unknown target into NotFound.

Parameters:
  - context: context.Context
  - id: string (new like ID)
  - userID: string
  - target: Target

Returns:
  - *Like
  - error: Conflict, NotFound or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, id, userID string, target Target) (*Like, error) {
	like := schema.SocialLike
	account := schema.UserAccount

	query := fmt.Sprintf(`
		WITH l AS (
			INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING *
		)
		SELECT %s
		FROM l
		JOIN %s o ON o.%s = l.%s`,
		like.Table, like.ID, like.LikedBy, like.VideoID, like.CommentID, like.TweetID, like.CreatedAt,
		likeProjection,
		account.Table, account.ID, like.LikedBy,
	)

	created, err := scanLike(repository.pool.QueryRow(context, query,
		id, userID,
		pointer.NilIfZero(target.VideoID), pointer.NilIfZero(target.CommentID), pointer.NilIfZero(target.TweetID),
	))
	if err != nil {
		switch {
		case dberr.IsUniqueViolation(err, ""):
			conflict := apperr.Conflict(MsgAlreadyLiked)
			conflict.Cause = err
			return nil, conflict
		case dberr.IsForeignKeyViolation(err, ""):
			notFound := apperr.NotFound(target.Kind())
			notFound.Cause = err
			return nil, notFound
		}
		return nil, fmt.Errorf("postgres_like_repo_create_failed: %w", dberr.Wrap(err, "Like"))
	}

	return created, nil
}

// Delete removes userID's like on target.
func (repository *PostgresRepository) Delete(context context.Context, userID string, target Target) error {
	column, value := targetColumn(target)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialLike.Table, schema.SocialLike.LikedBy, column,
	)

	tag, err := repository.pool.Exec(context, query, userID, value)
	if err != nil {
		return dberr.Wrap(err, "Like")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Like")
	}
	return nil
}

// ListByTarget returns the likes on target with their likers, most recent first.
func (repository *PostgresRepository) ListByTarget(context context.Context, target Target) ([]*Like, error) {
	column, value := targetColumn(target)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s l
		JOIN %s o ON o.%s = l.%s
		WHERE l.%s = $1
		ORDER BY l.%s DESC`,
		likeProjection,
		schema.SocialLike.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialLike.LikedBy,
		column,
		schema.SocialLike.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, value)
	if err != nil {
		return nil, dberr.Wrap(err, "list_likes")
	}
	defer rows.Close()

	likes := []*Like{}
	for rows.Next() {
		like, err := scanLike(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_like")
		}
		likes = append(likes, like)
	}

	return likes, dberr.Wrap(rows.Err(), "list_likes")
}
