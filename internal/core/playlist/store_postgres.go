// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

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

// PostgresRepository implements [Repository] on core.playlist and core.playlistvideo.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a playlist repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectPlaylistQuery = fmt.Sprintf(`
	SELECT p.%s, p.%s, p.%s, o.%s, o.%s, o.%s, o.%s, p.%s, p.%s
	FROM %s p
	JOIN %s o ON o.%s = p.%s`,
	schema.CorePlaylist.ID, schema.CorePlaylist.Name, schema.CorePlaylist.Description,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Fullname, schema.UserAccount.AvatarURL,
	schema.CorePlaylist.CreatedAt, schema.CorePlaylist.UpdatedAt,
	schema.CorePlaylist.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.CorePlaylist.OwnerID,
)

func scanPlaylist(row pgx.Row) (*Playlist, error) {
	playlist := &Playlist{Videos: []VideoSummary{}}
	err := row.Scan(
		&playlist.ID, &playlist.Name, &playlist.Description,
		&playlist.Owner.ID, &playlist.Owner.Username, &playlist.Owner.Fullname, &playlist.Owner.AvatarURL,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

/*
attachVideos loads the video cards of every playlist in one query.

Parameters:
  - context: context.Context
  - playlists: []*Playlist (Videos is filled in place)

Returns:
  - error: Database failures
*/
func (repository *PostgresRepository) attachVideos(context context.Context, playlists ...*Playlist) error {
	if len(playlists) == 0 {
		return nil
	}

	ids := make([]string, 0, len(playlists))
	byID := make(map[string]*Playlist, len(playlists))
	for _, playlist := range playlists {
		ids = append(ids, playlist.ID)
		byID[playlist.ID] = playlist
	}

	member := schema.CorePlaylistVideo
	video := schema.CoreVideo

	query := fmt.Sprintf(`
		SELECT m.%s, v.%s, v.%s, v.%s, v.%s, v.%s, m.%s
		FROM %s m
		JOIN %s v ON v.%s = m.%s
		WHERE m.%s = ANY($1::uuid[])
		ORDER BY m.%s ASC`,
		member.PlaylistID, video.ID, video.Title, video.ThumbnailURL, video.Duration, video.Views, member.AddedAt,
		member.Table,
		video.Table, video.ID, member.VideoID,
		member.PlaylistID,
		member.AddedAt,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "list_playlist_videos")
	}
	defer rows.Close()

	for rows.Next() {
		var playlistID string
		var summary VideoSummary
		if err := rows.Scan(&playlistID, &summary.ID, &summary.Title, &summary.ThumbnailURL, &summary.Duration, &summary.Views, &summary.AddedAt); err != nil {
			return dberr.Wrap(err, "scan_playlist_video")
		}
		if playlist, ok := byID[playlistID]; ok {
			playlist.Videos = append(playlist.Videos, summary)
		}
	}

	return dberr.Wrap(rows.Err(), "list_playlist_videos")
}

// Create inserts a playlist row.
func (repository *PostgresRepository) Create(context context.Context, playlist *Playlist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		schema.CorePlaylist.Table,
		schema.CorePlaylist.ID, schema.CorePlaylist.OwnerID, schema.CorePlaylist.Name,
		schema.CorePlaylist.Description, schema.CorePlaylist.CreatedAt, schema.CorePlaylist.UpdatedAt,
	)

	now := time.Now()
	if _, err := repository.pool.Exec(context, query, playlist.ID, playlist.Owner.ID, playlist.Name, playlist.Description, now); err != nil {
		return fmt.Errorf("postgres_playlist_repo_create_failed: %w", dberr.Wrap(err, "Owner"))
	}

	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	return nil
}

// FindByID loads a playlist with its videos.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Playlist, error) {
	playlist, err := scanPlaylist(repository.pool.QueryRow(context, selectPlaylistQuery+" WHERE p."+schema.CorePlaylist.ID+" = $1", id))
	if err != nil {
		return nil, dberr.Wrap(err, "Playlist")
	}

	if err := repository.attachVideos(context, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// ListByOwner returns the playlists of ownerID, newest first.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]*Playlist, error) {
	query := selectPlaylistQuery + fmt.Sprintf(`
		WHERE p.%s = $1
		ORDER BY p.%s DESC`,
		schema.CorePlaylist.OwnerID,
		schema.CorePlaylist.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_playlists")
	}

	playlists := []*Playlist{}
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			rows.Close()
			return nil, dberr.Wrap(err, "scan_playlist")
		}
		playlists = append(playlists, playlist)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_playlists")
	}

	if err := repository.attachVideos(context, playlists...); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Update writes name and description.
func (repository *PostgresRepository) Update(context context.Context, playlist *Playlist) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.CorePlaylist.Table,
		schema.CorePlaylist.Name, schema.CorePlaylist.Description, schema.CorePlaylist.UpdatedAt,
		schema.CorePlaylist.ID,
		schema.CorePlaylist.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, playlist.ID, playlist.Name, playlist.Description).Scan(&playlist.UpdatedAt)
	return dberr.Wrap(err, "Playlist")
}

// Delete removes a playlist; memberships cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CorePlaylist.Table, schema.CorePlaylist.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist")
	}
	return nil
}

// VideoExists checks core.video for videoID.
func (repository *PostgresRepository) VideoExists(context context.Context, videoID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreVideo.Table, schema.CoreVideo.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, videoID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "Video")
	}
	return exists, nil
}

// AddVideo inserts the membership row, ignoring a duplicate.
func (repository *PostgresRepository) AddVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.CorePlaylistVideo.Table,
		schema.CorePlaylistVideo.PlaylistID, schema.CorePlaylistVideo.VideoID, schema.CorePlaylistVideo.AddedAt,
		schema.CorePlaylistVideo.PlaylistID, schema.CorePlaylistVideo.VideoID,
	)

	if _, err := repository.pool.Exec(context, query, playlistID, videoID); err != nil {
		if dberr.IsForeignKeyViolation(err, "") {
			return apperr.NotFound("Video")
		}
		return dberr.Wrap(err, "Playlist")
	}
	return nil
}

// RemoveVideo deletes the membership row if present.
func (repository *PostgresRepository) RemoveVideo(context context.Context, playlistID, videoID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CorePlaylistVideo.Table, schema.CorePlaylistVideo.PlaylistID, schema.CorePlaylistVideo.VideoID,
	)

	_, err := repository.pool.Exec(context, query, playlistID, videoID)
	return dberr.Wrap(err, "Playlist")
}
