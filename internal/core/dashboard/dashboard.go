// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard serves the creator-facing channel overview.

# Architecture

  - Stats: aggregate counters computed by PostgreSQL and cached in Redis.
  - Video listings reuse the video service filters (owner, liked-by).
*/
package dashboard

import (
	"context"

	"github.com/taibuivan/vidora/internal/core/video"
)

// # Domain Entities

// Stats aggregates a channel's reach.
type Stats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

// # Field Identifiers

const (
	ParamChannelID = "channelId"
	FieldChannelID = "channel ID"
)

// CacheName labels the stats cache in metrics.
const CacheName = "channel_stats"

// # Contracts

// Repository computes channel statistics.
type Repository interface {
	// ChannelStats aggregates counters for channelID; NotFound when the channel does not exist.
	ChannelStats(context context.Context, channelID string) (*Stats, error)
}

// StatsCache stores computed stats for a short time.
type StatsCache interface {
	// Get returns the cached stats and whether they were present.
	Get(context context.Context, channelID string) (*Stats, bool, error)

	// Set stores stats for channelID.
	Set(context context.Context, channelID string, stats *Stats) error
}

// VideoLister is the slice of the video service the dashboard reads from.
type VideoLister interface {
	List(context context.Context, filter video.Filter, limit, offset int) ([]*video.Video, int, error)
}
