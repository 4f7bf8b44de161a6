// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// memoryVideos is an in-memory [video.Repository].
type memoryVideos struct {
	mu      sync.Mutex
	videos  map[string]video.Video
	owners  map[string]auth.Summary
	likes   map[string]map[string]bool // videoID -> userIDs
	history map[string][]string        // userID -> videoIDs, most recent first
	clock   time.Time
}

func newMemoryVideos(owners ...auth.Summary) *memoryVideos {
	repository := &memoryVideos{
		videos:  map[string]video.Video{},
		owners:  map[string]auth.Summary{},
		likes:   map[string]map[string]bool{},
		history: map[string][]string{},
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, owner := range owners {
		repository.owners[owner.ID] = owner
	}
	return repository
}

func (m *memoryVideos) List(_ context.Context, filter video.Filter, limit, offset int) ([]*video.Video, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []*video.Video
	for _, stored := range m.videos {
		if filter.OwnerID != "" && stored.Owner.ID != filter.OwnerID {
			continue
		}
		if filter.LikedBy != "" && !m.likes[stored.ID][filter.LikedBy] {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(filter.Query)) {
			continue
		}
		copied := stored
		matches = append(matches, &copied)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	total := len(matches)
	if offset >= total {
		return []*video.Video{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (m *memoryVideos) FindByID(_ context.Context, id string) (*video.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.videos[id]
	if !ok {
		return nil, apperr.NotFound("Video")
	}
	return &stored, nil
}

func (m *memoryVideos) Create(_ context.Context, created *video.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	owner, ok := m.owners[created.Owner.ID]
	if !ok {
		return apperr.NotFound("Owner")
	}
	// Distinct timestamps keep newest-first ordering deterministic
	m.clock = m.clock.Add(time.Second)
	created.Owner = owner
	created.CreatedAt, created.UpdatedAt = m.clock, m.clock
	m.videos[created.ID] = *created
	return nil
}

func (m *memoryVideos) Update(_ context.Context, updated *video.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[updated.ID]; !ok {
		return apperr.NotFound("Video")
	}
	m.videos[updated.ID] = *updated
	return nil
}

func (m *memoryVideos) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[id]; !ok {
		return apperr.NotFound("Video")
	}
	delete(m.videos, id)
	return nil
}

func (m *memoryVideos) RecordView(_ context.Context, videoID, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.videos[videoID]
	if !ok {
		return 0, apperr.NotFound("Video")
	}
	stored.Views++
	m.videos[videoID] = stored

	history := []string{videoID}
	for _, id := range m.history[userID] {
		if id != videoID {
			history = append(history, id)
		}
	}
	m.history[userID] = history
	return stored.Views, nil
}

func (m *memoryVideos) like(videoID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likes[videoID] == nil {
		m.likes[videoID] = map[string]bool{}
	}
	m.likes[videoID][userID] = true
}
