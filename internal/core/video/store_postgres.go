// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on core.video.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a video repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectVideoQuery joins each video with its owner card; callers append WHERE/ORDER clauses.
var selectVideoQuery = fmt.Sprintf(`
	SELECT v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s,
	       o.%s, o.%s, o.%s, o.%s,
	       v.%s, v.%s
	FROM %s v
	JOIN %s o ON o.%s = v.%s`,
	schema.CoreVideo.ID, schema.CoreVideo.Title, schema.CoreVideo.Description, schema.CoreVideo.Duration,
	schema.CoreVideo.VideoURL, schema.CoreVideo.ThumbnailURL, schema.CoreVideo.Views,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Fullname, schema.UserAccount.AvatarURL,
	schema.CoreVideo.CreatedAt, schema.CoreVideo.UpdatedAt,
	schema.CoreVideo.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreVideo.OwnerID,
)

func scanVideo(row pgx.Row) (*Video, error) {
	video := &Video{}
	err := row.Scan(
		&video.ID, &video.Title, &video.Description, &video.Duration,
		&video.VideoURL, &video.ThumbnailURL, &video.Views,
		&video.Owner.ID, &video.Owner.Username, &video.Owner.Fullname, &video.Owner.AvatarURL,
		&video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return video, nil
}

/*
List returns one page of videos, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (owner, liker and title search are combined with AND)
  - limit, offset: int

Returns:
  - []*Video: The page
  - int: Total number of matches
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Video, int, error) {
	var conditions []string
	var args []any

	placeholder := func(value any) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.OwnerID != "" {
		conditions = append(conditions, "v."+schema.CoreVideo.OwnerID+" = "+placeholder(filter.OwnerID))
	}
	if filter.LikedBy != "" {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s l WHERE l.%s = v.%s AND l.%s = %s)",
			schema.SocialLike.Table, schema.SocialLike.VideoID, schema.CoreVideo.ID,
			schema.SocialLike.LikedBy, placeholder(filter.LikedBy),
		))
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		conditions = append(conditions, "v."+schema.CoreVideo.Title+" ILIKE "+placeholder("%"+query+"%"))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT count(*) FROM %s v", schema.CoreVideo.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_videos")
	}

	pageQuery := selectVideoQuery + where + fmt.Sprintf(
		" ORDER BY v.%s DESC, v.%s DESC LIMIT %s OFFSET %s",
		schema.CoreVideo.CreatedAt, schema.CoreVideo.ID, placeholder(limit), placeholder(offset),
	)

	rows, err := repository.pool.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_videos")
	}
	defer rows.Close()

	videos := make([]*Video, 0, limit)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_video")
		}
		videos = append(videos, video)
	}

	return videos, total, dberr.Wrap(rows.Err(), "list_videos")
}

// FindByID loads one video with its owner card.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Video, error) {
	video, err := scanVideo(repository.pool.QueryRow(context, selectVideoQuery+" WHERE v."+schema.CoreVideo.ID+" = $1", id))
	if err != nil {
		return nil, dberr.Wrap(err, "Video")
	}
	return video, nil
}

/*
Create inserts a new row into core.video.

Parameters:
  - context: context.Context
  - video: *Video (ID, Owner.ID and media URLs must be set)

Returns:
  - error: NotFound when the owner vanished, or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $8)`,
		schema.CoreVideo.Table,
		schema.CoreVideo.ID, schema.CoreVideo.OwnerID, schema.CoreVideo.Title, schema.CoreVideo.Description,
		schema.CoreVideo.Duration, schema.CoreVideo.VideoURL, schema.CoreVideo.ThumbnailURL,
		schema.CoreVideo.Views, schema.CoreVideo.CreatedAt, schema.CoreVideo.UpdatedAt,
	)

	now := time.Now()
	_, err := repository.pool.Exec(context, query,
		video.ID, video.Owner.ID, video.Title, video.Description,
		video.Duration, video.VideoURL, video.ThumbnailURL, now,
	)
	if err != nil {
		return fmt.Errorf("postgres_video_repo_create_failed: %w", dberr.Wrap(err, "Owner"))
	}

	video.CreatedAt = now
	video.UpdatedAt = now
	return nil
}

// Update writes the editable columns and refreshes UpdatedAt.
func (repository *PostgresRepository) Update(context context.Context, video *Video) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.CoreVideo.Table,
		schema.CoreVideo.Title, schema.CoreVideo.Description, schema.CoreVideo.Duration, schema.CoreVideo.UpdatedAt,
		schema.CoreVideo.ID,
		schema.CoreVideo.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, video.ID, video.Title, video.Description, video.Duration).Scan(&video.UpdatedAt)
	return dberr.Wrap(err, "Video")
}

// Delete removes a video row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreVideo.Table, schema.CoreVideo.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Video")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video")
	}
	return nil
}

/*
RecordView bumps the view counter and upserts the viewer's history entry atomically.

Parameters:
  - context: context.Context
  - videoID: string
  - userID: string

Returns:
  - int64: The view count after the increment
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) RecordView(context context.Context, videoID, userID string) (int64, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	incrementQuery := fmt.Sprintf(`
		UPDATE %s SET %s = %s + 1
		WHERE %s = $1
		RETURNING %s`,
		schema.CoreVideo.Table, schema.CoreVideo.Views, schema.CoreVideo.Views,
		schema.CoreVideo.ID,
		schema.CoreVideo.Views,
	)

	var views int64
	if err := transaction.QueryRow(context, incrementQuery, videoID).Scan(&views); err != nil {
		return 0, dberr.Wrap(err, "Video")
	}

	// Re-watching moves the entry to the front instead of duplicating it
	historyQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s`,
		schema.UserWatchHistory.Table,
		schema.UserWatchHistory.UserID, schema.UserWatchHistory.VideoID, schema.UserWatchHistory.WatchedAt,
		schema.UserWatchHistory.UserID, schema.UserWatchHistory.VideoID,
		schema.UserWatchHistory.WatchedAt, schema.UserWatchHistory.WatchedAt,
	)

	if _, err := transaction.Exec(context, historyQuery, userID, videoID); err != nil {
		return 0, dberr.Wrap(err, "User")
	}

	if err := transaction.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit view: %w", err)
	}

	return views, nil
}
