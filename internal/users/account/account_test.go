// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/testkit"
	"github.com/taibuivan/vidora/internal/users/account"
	"github.com/taibuivan/vidora/internal/users/auth"
)

const (
	aliceID = "0190a1b2-0000-7000-8000-00000000a11c"
	bobID   = "0190a1b2-0000-7000-8000-000000000b0b"
)

type memoryAccounts struct {
	mu            sync.Mutex
	users         map[string]auth.User
	subscriptions map[string][]string // channel -> subscribers
	history       map[string][]account.WatchedVideo
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{
		users: map[string]auth.User{
			aliceID: {ID: aliceID, Username: "alice", Email: "alice@example.com", Fullname: "Alice"},
			bobID:   {ID: bobID, Username: "bob", Email: "bob@example.com", Fullname: "Bob"},
		},
		subscriptions: map[string][]string{aliceID: {bobID}},
		history:       map[string][]account.WatchedVideo{},
	}
}

func (m *memoryAccounts) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (m *memoryAccounts) Update(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, other := range m.users {
		if id != user.ID && other.Email == user.Email {
			return apperr.Conflict(account.MsgEmailTaken)
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryAccounts) FindChannel(_ context.Context, username, viewerID string) (*account.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username != username {
			continue
		}
		channel := &account.Channel{
			ID: user.ID, Username: user.Username, Fullname: user.Fullname, Email: user.Email,
			SubscribersCount: len(m.subscriptions[user.ID]),
		}
		for _, subscribers := range m.subscriptions {
			for _, subscriber := range subscribers {
				if subscriber == user.ID {
					channel.ChannelsSubscribedToCount++
				}
			}
		}
		for _, subscriber := range m.subscriptions[user.ID] {
			if viewerID != "" && subscriber == viewerID {
				channel.IsSubscribed = true
			}
		}
		return channel, nil
	}
	return nil, apperr.NotFound("Channel")
}

func (m *memoryAccounts) ListWatchHistory(_ context.Context, userID string, limit int) ([]account.WatchedVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := m.history[userID]
	return history[:min(limit, len(history))], nil
}

func newTestRouter(t *testing.T) (http.Handler, *memoryAccounts, *testkit.MemoryMedia) {
	t.Helper()
	repository := newMemoryAccounts()
	media := &testkit.MemoryMedia{}
	service := account.NewService(repository, media, testkit.Logger())

	router := chi.NewRouter()
	router.Use(testkit.AsCaller)
	router.Route("/users", account.NewHandler(service).RegisterRoutes)
	return router, repository, media
}

func TestHandler_Me(t *testing.T) {
	router, _, _ := newTestRouter(t)

	recorder, _ := testkit.Do(t, router, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder, envelope := testkit.Do(t, router, http.MethodGet, "/users/me", aliceID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotContains(t, string(envelope.Data), "password")

	var me auth.User
	testkit.DecodeData(t, envelope, &me)
	assert.Equal(t, "alice", me.Username)
}

func TestHandler_UpdateMe(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"fullname_only", map[string]string{"fullname": "Alice Liddell"}, http.StatusOK},
		{"email_normalised", map[string]string{"email": "  Alice@Wonder.land "}, http.StatusOK},
		{"empty_body", map[string]string{}, http.StatusBadRequest},
		{"malformed_email", map[string]string{"email": "nope"}, http.StatusBadRequest},
		{"email_taken", map[string]string{"email": "bob@example.com"}, http.StatusConflict},
		{"invalid_json", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, repository, _ := newTestRouter(t)
			recorder, _ := testkit.Do(t, router, http.MethodPatch, "/users/me", aliceID, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())

			if tt.name == "email_normalised" {
				assert.Equal(t, "alice@wonder.land", repository.users[aliceID].Email)
			}
		})
	}
}

func imageRequest(t *testing.T, path, field string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if content != nil {
		part, err := writer.CreateFormFile(field, "picture.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPatch, path, body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	request.Header.Set(testkit.HeaderTestUser, aliceID)
	return request
}

func TestHandler_ReplaceImages(t *testing.T) {
	router, repository, media := newTestRouter(t)

	recorder, _ := testkit.Serve(t, router, imageRequest(t, "/users/me/avatar", "avatar", testkit.PNG))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.True(t, strings.HasPrefix(repository.users[aliceID].AvatarURL, "https://media.test/"))

	recorder, _ = testkit.Serve(t, router, imageRequest(t, "/users/me/cover", "coverImage", testkit.PNG))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.NotEmpty(t, repository.users[aliceID].CoverImageURL)
	assert.Len(t, media.Saved, 2)

	recorder, _ = testkit.Serve(t, router, imageRequest(t, "/users/me/avatar", "avatar", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, _ = testkit.Serve(t, router, imageRequest(t, "/users/me/avatar", "avatar", []byte("plain text, not an image")))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Channel(t *testing.T) {
	router, _, _ := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		callerID   string
		status     int
		subscribed bool
	}{
		{"anonymous", "/users/c/alice", "", http.StatusOK, false},
		{"subscriber", "/users/c/ALICE", bobID, http.StatusOK, true},
		{"owner", "/users/c/alice", aliceID, http.StatusOK, false},
		{"unknown", "/users/c/carol", "", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, envelope := testkit.Do(t, router, http.MethodGet, tt.path, tt.callerID, nil)
			require.Equal(t, tt.status, recorder.Code)
			if tt.status != http.StatusOK {
				return
			}

			var channel account.Channel
			testkit.DecodeData(t, envelope, &channel)
			assert.Equal(t, 1, channel.SubscribersCount)
			assert.Equal(t, tt.subscribed, channel.IsSubscribed)
		})
	}
}

func TestHandler_WatchHistory(t *testing.T) {
	router, repository, _ := newTestRouter(t)
	repository.history[aliceID] = []account.WatchedVideo{
		{ID: "0190a1b2-0000-7000-8000-0000000000a2", Title: "Newest", WatchedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "0190a1b2-0000-7000-8000-0000000000a1", Title: "Oldest", WatchedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	recorder, envelope := testkit.Do(t, router, http.MethodGet, "/users/history", aliceID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var history []account.WatchedVideo
	testkit.DecodeData(t, envelope, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "Newest", history[0].Title)

	recorder, envelope = testkit.Do(t, router, http.MethodGet, "/users/history", bobID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, string(envelope.Data))
}
