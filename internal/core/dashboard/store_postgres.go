// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
)

// PostgresRepository implements [Repository] with a single aggregate query.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a dashboard repository backed by pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ChannelStats counts the channel's videos, subscribers, accumulated views and
the likes received by its videos.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - *Stats: Aggregated counters
  - error: NotFound("Channel") when the account does not exist
*/
func (repository *PostgresRepository) ChannelStats(context context.Context, channelID string) (*Stats, error) {
	account := schema.UserAccount
	video := schema.CoreVideo
	subscription := schema.SocialSubscription
	like := schema.SocialLike

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %[1]s v WHERE v.%[2]s = a.%[3]s),
			(SELECT COUNT(*) FROM %[4]s s WHERE s.%[5]s = a.%[3]s),
			(SELECT COALESCE(SUM(v.%[6]s), 0)::bigint FROM %[1]s v WHERE v.%[2]s = a.%[3]s),
			(SELECT COUNT(*) FROM %[7]s l JOIN %[1]s v ON v.%[8]s = l.%[9]s WHERE v.%[2]s = a.%[3]s)
		FROM %[10]s a
		WHERE a.%[3]s = $1`,
		video.Table, video.OwnerID, account.ID,
		subscription.Table, subscription.ChannelID,
		video.Views,
		like.Table, video.ID, like.VideoID,
		account.Table,
	)

	stats := &Stats{}
	err := repository.pool.QueryRow(context, query, channelID).Scan(
		&stats.TotalVideos, &stats.TotalSubscribers, &stats.TotalViews, &stats.TotalLikes,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Channel")
	}
	return stats, nil
}
