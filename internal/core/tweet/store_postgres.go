// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

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
)

// PostgresRepository implements [Repository] on core.tweet.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a tweet repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectTweetQuery = fmt.Sprintf(`
	SELECT t.%s, t.%s, o.%s, o.%s, o.%s, o.%s, t.%s, t.%s
	FROM %s t
	JOIN %s o ON o.%s = t.%s`,
	schema.CoreTweet.ID, schema.CoreTweet.Content,
	schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Fullname, schema.UserAccount.AvatarURL,
	schema.CoreTweet.CreatedAt, schema.CoreTweet.UpdatedAt,
	schema.CoreTweet.Table,
	schema.UserAccount.Table, schema.UserAccount.ID, schema.CoreTweet.OwnerID,
)

func scanTweet(row pgx.Row) (*Tweet, error) {
	tweet := &Tweet{}
	err := row.Scan(
		&tweet.ID, &tweet.Content,
		&tweet.Owner.ID, &tweet.Owner.Username, &tweet.Owner.Fullname, &tweet.Owner.AvatarURL,
		&tweet.CreatedAt, &tweet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tweet, nil
}

/*
List returns one page of tweets, newest first.

Parameters:
  - context: context.Context
  - ownerID: string (empty for every author)
  - limit, offset: int

Returns:
  - []*Tweet: The page
  - int: Total matches
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, ownerID string, limit, offset int) ([]*Tweet, int, error) {
	// A NULL owner argument disables the filter
	where := fmt.Sprintf(` WHERE ($1::uuid IS NULL OR t.%s = $1::uuid)`, schema.CoreTweet.OwnerID)
	owner := pointer.NilIfZero(ownerID)

	var total int
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s t`, schema.CoreTweet.Table) + where
	if err := repository.pool.QueryRow(context, countQuery, owner).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tweets")
	}

	query := selectTweetQuery + where + fmt.Sprintf(`
		ORDER BY t.%s DESC, t.%s DESC
		LIMIT $2 OFFSET $3`,
		schema.CoreTweet.CreatedAt, schema.CoreTweet.ID,
	)

	rows, err := repository.pool.Query(context, query, owner, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tweets")
	}
	defer rows.Close()

	tweets := make([]*Tweet, 0, limit)
	for rows.Next() {
		tweet, err := scanTweet(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tweet")
		}
		tweets = append(tweets, tweet)
	}

	return tweets, total, dberr.Wrap(rows.Err(), "list_tweets")
}

// FindByID loads one tweet with its owner card.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Tweet, error) {
	tweet, err := scanTweet(repository.pool.QueryRow(context, selectTweetQuery+" WHERE t."+schema.CoreTweet.ID+" = $1", id))
	if err != nil {
		return nil, dberr.Wrap(err, "Tweet")
	}
	return tweet, nil
}

// Create inserts a tweet; ID and Owner.ID must be set.
func (repository *PostgresRepository) Create(context context.Context, tweet *Tweet) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $4)`,
		schema.CoreTweet.Table,
		schema.CoreTweet.ID, schema.CoreTweet.OwnerID, schema.CoreTweet.Content,
		schema.CoreTweet.CreatedAt, schema.CoreTweet.UpdatedAt,
	)

	now := time.Now()
	if _, err := repository.pool.Exec(context, query, tweet.ID, tweet.Owner.ID, tweet.Content, now); err != nil {
		return fmt.Errorf("postgres_tweet_repo_create_failed: %w", dberr.Wrap(err, "Owner"))
	}

	tweet.CreatedAt = now
	tweet.UpdatedAt = now
	return nil
}

// UpdateContent rewrites the tweet body.
func (repository *PostgresRepository) UpdateContent(context context.Context, tweet *Tweet) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s`,
		schema.CoreTweet.Table, schema.CoreTweet.Content, schema.CoreTweet.UpdatedAt,
		schema.CoreTweet.ID,
		schema.CoreTweet.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, tweet.ID, tweet.Content).Scan(&tweet.UpdatedAt)
	return dberr.Wrap(err, "Tweet")
}

// Delete removes a tweet; its comments and likes cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTweet.Table, schema.CoreTweet.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Tweet")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tweet")
	}
	return nil
}
