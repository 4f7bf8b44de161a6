// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vidora/internal/platform/constants"
)

// RedisStatsCache implements [StatsCache] with JSON values under a TTL.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache creates a stats cache whose entries expire after ttl.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl}
}

func statsKey(channelID string) string {
	return constants.RedisPrefixChannelStats + channelID
}

// Get reads the cached stats; a missing key is a miss, not an error.
func (cache *RedisStatsCache) Get(context context.Context, channelID string) (*Stats, bool, error) {
	raw, err := cache.client.Get(context, statsKey(channelID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stats_cache_get_failed: %w", err)
	}

	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("stats_cache_decode_failed: %w", err)
	}
	return &stats, true, nil
}

// Set writes stats with the configured TTL.
func (cache *RedisStatsCache) Set(context context.Context, channelID string, stats *Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, statsKey(channelID), raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("stats_cache_set_failed: %w", err)
	}
	return nil
}
