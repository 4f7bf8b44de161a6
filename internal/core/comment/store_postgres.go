// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/pkg/pointer"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// PostgresRepository implements [Repository] on social.comment.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a comment repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectCommentQuery hydrates the owner card and like count of each comment.
var selectCommentQuery = fmt.Sprintf(`
	SELECT c.%s, c.%s, COALESCE(c.%s::text, ''), COALESCE(c.%s::text, ''),
	       o.%s, o.%s, o.%s, o.%s,
	       (SELECT count(*) FROM %s l WHERE l.%s = c.%s),
	       c.%s, c.%s
	FROM %s c
	JOIN %s o ON o.%s = c.%s`,
	schema.SocialComment.ID, schema.SocialComment.Content, schema.SocialComment.VideoID, schema.SocialComment.TweetID,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Fullname, schema.UserAccount.AvatarURL,
	schema.SocialLike.Table, schema.SocialLike.CommentID, schema.SocialComment.ID,
	schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
	schema.SocialComment.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.OwnerID,
)

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.Content, &comment.VideoID, &comment.TweetID,
		&comment.Owner.ID, &comment.Owner.Username, &comment.Owner.Fullname, &comment.Owner.AvatarURL,
		&comment.LikesCount,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// targetColumn returns the column and value that select comments on target.
func targetColumn(target Target) (string, string) {
	if target.TweetID != "" {
		return schema.SocialComment.TweetID, target.TweetID
	}
	return schema.SocialComment.VideoID, target.VideoID
}

/*
ListByTarget returns one page of comments on a video or tweet, newest first.

Parameters:
  - context: context.Context
  - target: Target
  - limit, offset: int

Returns:
  - []*Comment: The page
  - int: Total comments on target
  - error: Database failures
*/
func (repository *PostgresRepository) ListByTarget(context context.Context, target Target, limit, offset int) ([]*Comment, int, error) {
	column, value := targetColumn(target)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.SocialComment.Table, column)
	if err := repository.pool.QueryRow(context, countQuery, value).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	query := selectCommentQuery + fmt.Sprintf(`
		WHERE c.%s = $1
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $2 OFFSET $3`,
		column,
		schema.SocialComment.CreatedAt, schema.SocialComment.ID,
	)

	rows, err := repository.pool.Query(context, query, value, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0, limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, dberr.Wrap(rows.Err(), "list_comments")
}

// FindByID loads one comment.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	comment, err := scanComment(repository.pool.QueryRow(context, selectCommentQuery+" WHERE c."+schema.SocialComment.ID+" = $1", id))
	if err != nil {
		return nil, dberr.Wrap(err, "Comment")
	}
	return comment, nil
}

/*
Create inserts a comment. The foreign keys on videoid/tweetid reject unknown targets.

Parameters:
  - context: context.Context
  - comment: *Comment (ID, Owner.ID, Content and one target must be set)

Returns:
  - error: NotFound naming the missing target, or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.OwnerID, schema.SocialComment.VideoID, schema.SocialComment.TweetID,
		schema.SocialComment.Content, schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
	)

	now := time.Now()
	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.Owner.ID,
		pointer.NilIfZero(comment.VideoID), pointer.NilIfZero(comment.TweetID),
		comment.Content, now,
	)
	if err != nil {
		if dberr.IsForeignKeyViolation(err, "") {
			notFound := apperr.NotFound(Target{VideoID: comment.VideoID, TweetID: comment.TweetID}.Kind())
			notFound.Cause = err
			return notFound
		}
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", dberr.Wrap(err, "Comment"))
	}

	comment.CreatedAt = now
	comment.UpdatedAt = now
	return nil
}

// UpdateContent rewrites the comment body.
func (repository *PostgresRepository) UpdateContent(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.SocialComment.Table, schema.SocialComment.Content, schema.SocialComment.UpdatedAt,
		schema.SocialComment.ID,
		schema.SocialComment.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	return dberr.Wrap(err, "Comment")
}

// Delete removes a comment; its likes cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.SocialComment.Table, schema.SocialComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}
	return nil
}

/*
ToggleLike flips userID's like on a comment inside one transaction.

Parameters:
  - context: context.Context
  - commentID: string
  - userID: string

Returns:
  - bool: Liked afterwards
  - int: Like count afterwards
  - error: NotFound when the comment vanished, or database errors
*/
func (repository *PostgresRepository) ToggleLike(context context.Context, commentID, userID string) (bool, int, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return false, 0, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	like := schema.SocialLike

	removeQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, like.Table, like.CommentID, like.LikedBy)
	tag, err := transaction.Exec(context, removeQuery, commentID, userID)
	if err != nil {
		return false, 0, dberr.Wrap(err, "Like")
	}

	liked := tag.RowsAffected() == 0
	if liked {
		addQuery := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT DO NOTHING`,
			like.Table, like.ID, like.LikedBy, like.CommentID, like.CreatedAt,
		)
		if _, err := transaction.Exec(context, addQuery, uuid.New(), userID, commentID); err != nil {
			if dberr.IsForeignKeyViolation(err, "") {
				return false, 0, apperr.NotFound("Comment")
			}
			return false, 0, dberr.Wrap(err, "Like")
		}
	}

	var count int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, like.Table, like.CommentID)
	if err := transaction.QueryRow(context, countQuery, commentID).Scan(&count); err != nil {
		return false, 0, dberr.Wrap(err, "Like")
	}

	if err := transaction.Commit(context); err != nil {
		return false, 0, fmt.Errorf("postgres: failed to commit like toggle: %w", err)
	}

	return liked, count, nil
}
