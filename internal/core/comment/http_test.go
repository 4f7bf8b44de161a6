// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/comment"
	"github.com/taibuivan/vidora/internal/platform/testkit"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	service, _ := newTestService(t)
	router := chi.NewRouter()
	router.Use(testkit.AsCaller)
	router.Route("/comments", comment.NewHandler(service).RegisterRoutes)
	return router
}

/*
TestHandler_OnlyAuthorMayEdit walks a comment through a foreign edit attempt,
the author's edit and the author's delete.
*/
func TestHandler_OnlyAuthorMayEdit(t *testing.T) {
	router := newTestRouter(t)

	recorder, envelope := testkit.Do(t, router, http.MethodPost, "/comments", alice.ID, map[string]string{
		"content": "First!", "video": videoID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created comment.Comment
	testkit.DecodeData(t, envelope, &created)
	path := "/comments/" + created.ID

	recorder, envelope = testkit.Do(t, router, http.MethodPut, path, bob.ID, map[string]string{"content": "hijacked"})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "not authorized", envelope.Message)

	recorder, envelope = testkit.Do(t, router, http.MethodPut, path, alice.ID, map[string]string{"content": "edited"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var updated comment.Comment
	testkit.DecodeData(t, envelope, &updated)
	assert.Equal(t, "edited", updated.Content)

	recorder, _ = testkit.Do(t, router, http.MethodDelete, path, bob.ID, nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder, _ = testkit.Do(t, router, http.MethodDelete, path, alice.ID, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = testkit.Do(t, router, http.MethodPut, path, alice.ID, map[string]string{"content": "ghost"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_ListAndLike(t *testing.T) {
	router := newTestRouter(t)

	recorder, envelope := testkit.Do(t, router, http.MethodPost, "/comments", bob.ID, map[string]string{
		"content": "on a tweet", "tweet": tweetID,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created comment.Comment
	testkit.DecodeData(t, envelope, &created)

	recorder, envelope = testkit.Do(t, router, http.MethodPost, "/comments/"+created.ID+"/like", alice.ID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var state comment.LikeState
	testkit.DecodeData(t, envelope, &state)
	assert.Equal(t, comment.LikeState{Liked: true, LikesCount: 1}, state)

	recorder, envelope = testkit.Do(t, router, http.MethodGet, "/comments?tweet="+tweetID, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var comments []comment.Comment
	testkit.DecodeData(t, envelope, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].LikesCount)
	assert.Equal(t, bob.ID, comments[0].Owner.ID)

	tests := []struct {
		name     string
		method   string
		path     string
		callerID string
		body     any
		want     int
	}{
		{"list_without_target", http.MethodGet, "/comments", "", nil, http.StatusBadRequest},
		{"list_both_targets", http.MethodGet, "/comments?video=" + videoID + "&tweet=" + tweetID, "", nil, http.StatusBadRequest},
		{"list_bad_id", http.MethodGet, "/comments?video=nope", "", nil, http.StatusBadRequest},
		{"create_anonymous", http.MethodPost, "/comments", "", map[string]string{"content": "x", "video": videoID}, http.StatusUnauthorized},
		{"create_blank", http.MethodPost, "/comments", alice.ID, map[string]string{"content": "  ", "video": videoID}, http.StatusBadRequest},
		{"like_anonymous", http.MethodPost, "/comments/" + created.ID + "/like", "", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, _ := testkit.Do(t, router, tt.method, tt.path, tt.callerID, tt.body)
			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
		})
	}
}
