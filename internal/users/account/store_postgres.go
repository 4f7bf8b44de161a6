// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account (Postgres) implements the storage layer for user profiles.

# Schema Table Mapping
  - users.account: Master identity and profile data.
  - users.watchhistory: Per-user list of watched videos.
  - social.subscription: Source of the channel counters.
*/
package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/internal/users/auth"
	"github.com/taibuivan/vidora/pkg/pointer"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity without credentials
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Fullname, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table, schema.UserAccount.ID,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.Fullname,
		&user.AvatarURL, &user.CoverImageURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
Update writes the mutable profile columns of users.account.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Conflict on a taken email, NotFound, or database errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NULLIF($5, ''), %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Fullname, schema.UserAccount.Email, schema.UserAccount.AvatarURL,
		schema.UserAccount.CoverImageURL, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Fullname, user.Email, user.AvatarURL, user.CoverImageURL,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			conflict := apperr.Conflict(MsgEmailTaken)
			conflict.Cause = err
			return conflict
		}
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
FindChannel aggregates the channel page of a user in a single round trip.

Description: Subscriber and subscription counts are correlated subqueries on
social.subscription; IsSubscribed is false when viewerID is empty.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string

Returns:
  - *Channel: Profile with counters
  - error: apperr.NotFound or database failure
*/
func (repository *PostgresAccountRepository) FindChannel(context context.Context, username, viewerID string) (*Channel, error) {
	account := schema.UserAccount
	subscription := schema.SocialSubscription

	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, COALESCE(a.%s, ''),
		       (SELECT count(*) FROM %s s WHERE s.%s = a.%s),
		       (SELECT count(*) FROM %s s WHERE s.%s = a.%s),
		       EXISTS (SELECT 1 FROM %s s WHERE s.%s = a.%s AND s.%s = $2)
		FROM %s a
		WHERE a.%s = $1`,
		account.ID, account.Username, account.Fullname, account.Email, account.AvatarURL, account.CoverImageURL,
		subscription.Table, subscription.ChannelID, account.ID,
		subscription.Table, subscription.SubscriberID, account.ID,
		subscription.Table, subscription.ChannelID, account.ID, subscription.SubscriberID,
		account.Table,
		account.Username,
	)

	channel := &Channel{}
	err := repository.pool.QueryRow(context, query, username, pointer.NilIfZero(viewerID)).Scan(
		&channel.ID, &channel.Username, &channel.Fullname, &channel.Email,
		&channel.AvatarURL, &channel.CoverImageURL,
		&channel.SubscribersCount, &channel.ChannelsSubscribedToCount, &channel.IsSubscribed,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Channel")
	}

	return channel, nil
}

/*
ListWatchHistory joins users.watchhistory with the watched videos and their owners.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int

Returns:
  - []WatchedVideo: Most recent first
  - error: Database failures
*/
func (repository *PostgresAccountRepository) ListWatchHistory(context context.Context, userID string, limit int) ([]WatchedVideo, error) {
	history := schema.UserWatchHistory
	video := schema.CoreVideo
	account := schema.UserAccount

	query := fmt.Sprintf(`
		SELECT v.%s, v.%s, v.%s, v.%s, v.%s, v.%s, v.%s,
		       o.%s, o.%s, o.%s, o.%s,
		       h.%s
		FROM %s h
		JOIN %s v ON v.%s = h.%s
		JOIN %s o ON o.%s = v.%s
		WHERE h.%s = $1
		ORDER BY h.%s DESC
		LIMIT $2`,
		video.ID, video.Title, video.Description, video.Duration, video.VideoURL, video.ThumbnailURL, video.Views,
		account.ID, account.Username, account.Fullname, account.AvatarURL,
		history.WatchedAt,
		history.Table,
		video.Table, video.ID, history.VideoID,
		account.Table, account.ID, video.OwnerID,
		history.UserID,
		history.WatchedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_watch_history")
	}
	defer rows.Close()

	var entries []WatchedVideo
	for rows.Next() {
		var entry WatchedVideo
		if err := rows.Scan(
			&entry.ID, &entry.Title, &entry.Description, &entry.Duration,
			&entry.VideoURL, &entry.ThumbnailURL, &entry.Views,
			&entry.Owner.ID, &entry.Owner.Username, &entry.Owner.Fullname, &entry.Owner.AvatarURL,
			&entry.WatchedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_watch_history")
		}
		entries = append(entries, entry)
	}

	return entries, dberr.Wrap(rows.Err(), "list_watch_history")
}
