// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/dashboard"
	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/testkit"
)

const (
	channelID = "0190a1b2-0000-7000-8000-00000000a11c"
	viewerID  = "0190a1b2-0000-7000-8000-000000000b0b"
	unknownID = "0190a1b2-0000-7000-8000-0000000000ff"
)

type countingRepository struct {
	calls int
	stats map[string]dashboard.Stats
}

func (repository *countingRepository) ChannelStats(_ context.Context, id string) (*dashboard.Stats, error) {
	repository.calls++
	stats, ok := repository.stats[id]
	if !ok {
		return nil, apperr.NotFound("Channel")
	}
	return &stats, nil
}

type memoryCache struct {
	entries map[string]dashboard.Stats
	failGet bool
}

func (cache *memoryCache) Get(_ context.Context, id string) (*dashboard.Stats, bool, error) {
	if cache.failGet {
		return nil, false, errors.New("connection refused")
	}
	stats, ok := cache.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &stats, true, nil
}

func (cache *memoryCache) Set(_ context.Context, id string, stats *dashboard.Stats) error {
	cache.entries[id] = *stats
	return nil
}

type recordingLister struct {
	filters []video.Filter
}

func (lister *recordingLister) List(_ context.Context, filter video.Filter, limit, offset int) ([]*video.Video, int, error) {
	lister.filters = append(lister.filters, filter)
	return []*video.Video{{ID: "0190a1b2-0000-7000-8000-0000000000a1", Title: "Clip"}}, 1, nil
}

func newFixture() (*countingRepository, *memoryCache, *recordingLister, http.Handler) {
	repository := &countingRepository{stats: map[string]dashboard.Stats{
		channelID: {TotalVideos: 3, TotalSubscribers: 2, TotalViews: 40, TotalLikes: 5},
	}}
	cache := &memoryCache{entries: map[string]dashboard.Stats{}}
	lister := &recordingLister{}

	service := dashboard.NewService(repository, lister, cache, testkit.Logger())
	router := chi.NewRouter()
	router.Use(testkit.AsCaller)
	router.Route("/dashboard", dashboard.NewHandler(service).RegisterRoutes)
	return repository, cache, lister, router
}

func TestStats_CacheAside(t *testing.T) {
	repository, cache, _, router := newFixture()

	for range 3 {
		recorder, envelope := testkit.Do(t, router, http.MethodGet, "/dashboard/stats/"+channelID, "", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var stats dashboard.Stats
		testkit.DecodeData(t, envelope, &stats)
		assert.Equal(t, dashboard.Stats{TotalVideos: 3, TotalSubscribers: 2, TotalViews: 40, TotalLikes: 5}, stats)
	}

	assert.Equal(t, 1, repository.calls)
	assert.Contains(t, cache.entries, channelID)
}

func TestStats_CacheFailureFallsBack(t *testing.T) {
	repository := &countingRepository{stats: map[string]dashboard.Stats{channelID: {TotalVideos: 1}}}
	cache := &memoryCache{entries: map[string]dashboard.Stats{}, failGet: true}
	service := dashboard.NewService(repository, &recordingLister{}, cache, testkit.Logger())

	for range 2 {
		stats, err := service.Stats(context.Background(), channelID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.TotalVideos)
	}
	assert.Equal(t, 2, repository.calls)
}

func TestStats_WithoutCache(t *testing.T) {
	repository := &countingRepository{stats: map[string]dashboard.Stats{channelID: {TotalViews: 9}}}
	service := dashboard.NewService(repository, &recordingLister{}, nil, testkit.Logger())

	stats, err := service.Stats(context.Background(), channelID)
	require.NoError(t, err)
	assert.EqualValues(t, 9, stats.TotalViews)
}

func TestStats_Errors(t *testing.T) {
	_, _, _, router := newFixture()

	tests := []struct {
		name    string
		path    string
		status  int
		message string
	}{
		{"malformed_id", "/dashboard/stats/not-a-channel", http.StatusBadRequest, "Invalid channel ID"},
		{"unknown_channel", "/dashboard/stats/" + unknownID, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, envelope := testkit.Do(t, router, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.status, recorder.Code)
			assert.False(t, envelope.Success)
			if tt.message != "" {
				assert.Equal(t, tt.message, envelope.Message)
			}
		})
	}
}

func TestVideos_Filters(t *testing.T) {
	_, _, lister, router := newFixture()

	recorder, envelope := testkit.Do(t, router, http.MethodGet, "/dashboard/videos/"+channelID, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, envelope.Meta)

	recorder, _ = testkit.Do(t, router, http.MethodGet, "/dashboard/liked-videos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, _ = testkit.Do(t, router, http.MethodGet, "/dashboard/liked-videos", viewerID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.Len(t, lister.filters, 2)
	assert.Equal(t, video.Filter{OwnerID: channelID}, lister.filters[0])
	assert.Equal(t, video.Filter{LikedBy: viewerID}, lister.filters[1])
}
