// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/metrics"
)

// Service implements the dashboard use cases.
type Service struct {
	repository Repository
	videos     VideoLister
	cache      StatsCache
	logger     *slog.Logger
}

// NewService constructs a dashboard [Service]. cache may be nil to always query PostgreSQL.
func NewService(repository Repository, videos VideoLister, cache StatsCache, logger *slog.Logger) *Service {
	return &Service{repository: repository, videos: videos, cache: cache, logger: logger}
}

/*
Stats returns the channel counters, serving them from the cache when possible.

Description: Cache failures are logged and the counters are computed from the
database instead; a stale entry lives at most one TTL.

Parameters:
  - context: context.Context
  - channelID: string

Returns:
  - *Stats: Channel counters
  - error: NotFound when the channel does not exist
*/
func (service *Service) Stats(context context.Context, channelID string) (*Stats, error) {
	if service.cache != nil {
		stats, found, err := service.cache.Get(context, channelID)
		switch {
		case err != nil:
			metrics.RecordCacheLookup(CacheName, metrics.CacheError)
			service.logger.WarnContext(context, "stats_cache_read_failed",
				slog.String("channel_id", channelID), slog.Any("error", err))
		case found:
			metrics.RecordCacheLookup(CacheName, metrics.CacheHit)
			return stats, nil
		default:
			metrics.RecordCacheLookup(CacheName, metrics.CacheMiss)
		}
	}

	stats, err := service.repository.ChannelStats(context, channelID)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, channelID, stats); err != nil {
			service.logger.WarnContext(context, "stats_cache_write_failed",
				slog.String("channel_id", channelID), slog.Any("error", err))
		}
	}
	return stats, nil
}

// ChannelVideos lists the videos published by channelID, newest first.
func (service *Service) ChannelVideos(context context.Context, channelID string, limit, offset int) ([]*video.Video, int, error) {
	videos, total, err := service.videos.List(context, video.Filter{OwnerID: channelID}, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dashboard_channel_videos_failed: %w", err)
	}
	return videos, total, nil
}

// LikedVideos lists the videos userID has liked.
func (service *Service) LikedVideos(context context.Context, userID string, limit, offset int) ([]*video.Video, int, error) {
	videos, total, err := service.videos.List(context, video.Filter{LikedBy: userID}, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("dashboard_liked_videos_failed: %w", err)
	}
	return videos, total, nil
}
