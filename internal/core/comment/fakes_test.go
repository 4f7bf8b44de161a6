// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/vidora/internal/core/comment"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// memoryComments is an in-memory [comment.Repository].
type memoryComments struct {
	mu       sync.Mutex
	comments map[string]comment.Comment
	owners   map[string]auth.Summary
	targets  map[string]bool            // existing video and tweet IDs
	likes    map[string]map[string]bool // commentID -> userIDs
	clock    time.Time
}

func newMemoryComments(owners []auth.Summary, targets ...string) *memoryComments {
	repository := &memoryComments{
		comments: map[string]comment.Comment{},
		owners:   map[string]auth.Summary{},
		targets:  map[string]bool{},
		likes:    map[string]map[string]bool{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, owner := range owners {
		repository.owners[owner.ID] = owner
	}
	for _, target := range targets {
		repository.targets[target] = true
	}
	return repository
}

func (m *memoryComments) hydrate(stored comment.Comment) *comment.Comment {
	stored.LikesCount = len(m.likes[stored.ID])
	return &stored
}

func (m *memoryComments) ListByTarget(_ context.Context, target comment.Target, limit, offset int) ([]*comment.Comment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []*comment.Comment
	for _, stored := range m.comments {
		if (target.VideoID != "" && stored.VideoID == target.VideoID) || (target.TweetID != "" && stored.TweetID == target.TweetID) {
			matches = append(matches, m.hydrate(stored))
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })

	total := len(matches)
	if offset >= total {
		return []*comment.Comment{}, total, nil
	}
	end := min(offset+limit, total)
	return matches[offset:end], total, nil
}

func (m *memoryComments) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return m.hydrate(stored), nil
}

func (m *memoryComments) Create(_ context.Context, created *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target := comment.Target{VideoID: created.VideoID, TweetID: created.TweetID}
	if !m.targets[created.VideoID+created.TweetID] {
		return apperr.NotFound(target.Kind())
	}
	m.clock = m.clock.Add(time.Second)
	created.Owner = m.owners[created.Owner.ID]
	created.CreatedAt, created.UpdatedAt = m.clock, m.clock
	m.comments[created.ID] = *created
	return nil
}

func (m *memoryComments) UpdateContent(_ context.Context, updated *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.comments[updated.ID]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Content = updated.Content
	m.comments[updated.ID] = stored
	return nil
}

func (m *memoryComments) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(m.comments, id)
	delete(m.likes, id)
	return nil
}

func (m *memoryComments) ToggleLike(_ context.Context, commentID, userID string) (bool, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likes[commentID] == nil {
		m.likes[commentID] = map[string]bool{}
	}
	liked := !m.likes[commentID][userID]
	if liked {
		m.likes[commentID][userID] = true
	} else {
		delete(m.likes[commentID], userID)
	}
	return liked, len(m.likes[commentID]), nil
}
