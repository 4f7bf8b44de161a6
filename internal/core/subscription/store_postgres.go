// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] on social.subscription.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a subscription repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create inserts a subscription only when the channel account exists.

Description: INSERT ... SELECT FROM users.account yields no row for an unknown
channel, which maps to NotFound("Channel"); the unique index on
(subscriberid, channelid) maps a duplicate to Conflict.

Parameters:
  - context: context.Context
  - subscription: *Subscription (ID, SubscriberID and ChannelID set)

Returns:
  - error: NotFound, Conflict or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, subscription *Subscription) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		SELECT $1, $2, a.%s, NOW()
		FROM %s a
		WHERE a.%s = $3
		RETURNING %s`,
		schema.SocialSubscription.Table,
		schema.SocialSubscription.ID, schema.SocialSubscription.SubscriberID,
		schema.SocialSubscription.ChannelID, schema.SocialSubscription.CreatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.Table,
		schema.UserAccount.ID,
		schema.SocialSubscription.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		subscription.ID, subscription.SubscriberID, subscription.ChannelID,
	).Scan(&subscription.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			conflict := apperr.Conflict(MsgAlreadySubscribed)
			conflict.Cause = err
			return conflict
		}
		return dberr.Wrap(err, "Channel")
	}
	return nil
}

// Delete removes the subscriber→channel edge.
func (repository *PostgresRepository) Delete(context context.Context, subscriberID, channelID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialSubscription.Table, schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID,
	)

	tag, err := repository.pool.Exec(context, query, subscriberID, channelID)
	if err != nil {
		return dberr.Wrap(err, "Subscription")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Subscription")
	}
	return nil
}

// CountSubscribers counts the followers of a channel.
func (repository *PostgresRepository) CountSubscribers(context context.Context, channelID string) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.SocialSubscription.Table, schema.SocialSubscription.ChannelID,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, channelID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_subscribers")
	}
	return count, nil
}

// ListSubscribers joins each follower's owner card.
func (repository *PostgresRepository) ListSubscribers(context context.Context, channelID string) ([]Member, error) {
	return repository.listMembers(context, schema.SocialSubscription.SubscriberID, schema.SocialSubscription.ChannelID, channelID)
}

// ListChannels joins each followed channel's owner card.
func (repository *PostgresRepository) ListChannels(context context.Context, subscriberID string) ([]Member, error) {
	return repository.listMembers(context, schema.SocialSubscription.ChannelID, schema.SocialSubscription.SubscriberID, subscriberID)
}

// listMembers returns the accounts on the joinColumn side of every edge whose filterColumn equals id.
func (repository *PostgresRepository) listMembers(context context.Context, joinColumn, filterColumn, id string) ([]Member, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, s.%s
		FROM %s s
		JOIN %s a ON a.%s = s.%s
		WHERE s.%s = $1
		ORDER BY s.%s DESC`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Fullname, schema.UserAccount.AvatarURL,
		schema.SocialSubscription.CreatedAt,
		schema.SocialSubscription.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, joinColumn,
		filterColumn,
		schema.SocialSubscription.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_subscriptions")
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		var member Member
		if err := rows.Scan(&member.ID, &member.Username, &member.Fullname, &member.AvatarURL, &member.SubscribedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_subscription")
		}
		members = append(members, member)
	}

	return members, dberr.Wrap(rows.Err(), "list_subscriptions")
}
