// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/comment"
	"github.com/taibuivan/vidora/internal/platform/testkit"
	"github.com/taibuivan/vidora/internal/users/auth"
)

var (
	alice = auth.Summary{ID: "0190a1b2-0000-7000-8000-00000000a11c", Username: "alice"}
	bob   = auth.Summary{ID: "0190a1b2-0000-7000-8000-000000000b0b", Username: "bob"}

	videoID = "0190a1b2-0000-7000-8000-0000000000a1"
	tweetID = "0190a1b2-0000-7000-8000-0000000000b1"
)

func newTestService(t *testing.T) (*comment.Service, *memoryComments) {
	t.Helper()
	repository := newMemoryComments([]auth.Summary{alice, bob}, videoID, tweetID)
	return comment.NewService(repository, testkit.Logger()), repository
}

func TestCreate_TargetRules(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		target  comment.Target
		status  int
		message string
	}{
		{"no_target", comment.Target{}, http.StatusBadRequest, "Validation failed"},
		{"two_targets", comment.Target{VideoID: videoID, TweetID: tweetID}, http.StatusBadRequest, "Validation failed"},
		{"unknown_video", comment.Target{VideoID: "0190a1b2-0000-7000-8000-0000000000ff"}, http.StatusNotFound, "Video not found"},
		{"unknown_tweet", comment.Target{TweetID: "0190a1b2-0000-7000-8000-0000000000ff"}, http.StatusNotFound, "Tweet not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, alice.ID, tt.target, "hello")
			status, message := testkit.StatusOf(t, err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}

	created, err := service.Create(ctx, alice.ID, comment.Target{TweetID: tweetID}, "  nice tweet  ")
	require.NoError(t, err)
	assert.Equal(t, "nice tweet", created.Content)
	assert.Equal(t, tweetID, created.TweetID)
	assert.Empty(t, created.VideoID)
	assert.Equal(t, alice, created.Owner)
}

func TestList_NewestFirstWithLikes(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	target := comment.Target{VideoID: videoID}

	first, err := service.Create(ctx, alice.ID, target, "first")
	require.NoError(t, err)
	_, err = service.Create(ctx, bob.ID, target, "second")
	require.NoError(t, err)
	_, err = service.Create(ctx, bob.ID, comment.Target{TweetID: tweetID}, "elsewhere")
	require.NoError(t, err)

	_, err = service.ToggleLike(ctx, first.ID, bob.ID)
	require.NoError(t, err)

	comments, total, err := service.List(ctx, target, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
	assert.Equal(t, 1, comments[1].LikesCount)

	_, _, err = service.List(ctx, comment.Target{}, 10, 0)
	status, _ := testkit.StatusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestToggleLike_FlipsState(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice.ID, comment.Target{VideoID: videoID}, "like me")
	require.NoError(t, err)

	state, err := service.ToggleLike(ctx, created.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.LikeState{Liked: true, LikesCount: 1}, *state)

	state, err = service.ToggleLike(ctx, created.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.LikeState{Liked: true, LikesCount: 2}, *state)

	state, err = service.ToggleLike(ctx, created.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.LikeState{Liked: false, LikesCount: 1}, *state)

	_, err = service.ToggleLike(ctx, "0190a1b2-0000-7000-8000-0000000000ff", bob.ID)
	status, _ := testkit.StatusOf(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}
