// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/subscription"
	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/testkit"
	"github.com/taibuivan/vidora/internal/users/auth"
)

var (
	alice = auth.Summary{ID: "0190a1b2-0000-7000-8000-00000000a11c", Username: "alice"}
	bob   = auth.Summary{ID: "0190a1b2-0000-7000-8000-000000000b0b", Username: "bob"}
	carol = auth.Summary{ID: "0190a1b2-0000-7000-8000-000000000ca1", Username: "carol"}

	missingID = "0190a1b2-0000-7000-8000-0000000000ff"
)

type memorySubscriptions struct {
	mu      sync.Mutex
	edges   []subscription.Subscription
	members map[string]auth.Summary
	clock   time.Time
}

func (m *memorySubscriptions) Create(_ context.Context, created *subscription.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[created.ChannelID]; !ok {
		return apperr.NotFound("Channel")
	}
	for _, edge := range m.edges {
		if edge.SubscriberID == created.SubscriberID && edge.ChannelID == created.ChannelID {
			return apperr.Conflict(subscription.MsgAlreadySubscribed)
		}
	}
	m.clock = m.clock.Add(time.Second)
	created.CreatedAt = m.clock
	m.edges = append(m.edges, *created)
	return nil
}

func (m *memorySubscriptions) Delete(_ context.Context, subscriberID, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, edge := range m.edges {
		if edge.SubscriberID == subscriberID && edge.ChannelID == channelID {
			m.edges = append(m.edges[:i], m.edges[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Subscription")
}

func (m *memorySubscriptions) CountSubscribers(_ context.Context, channelID string) (int, error) {
	members, _ := m.ListSubscribers(context.Background(), channelID)
	return len(members), nil
}

func (m *memorySubscriptions) list(match func(subscription.Subscription) (string, bool)) []subscription.Member {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := []subscription.Member{}
	for i := len(m.edges) - 1; i >= 0; i-- {
		if id, ok := match(m.edges[i]); ok {
			members = append(members, subscription.Member{Summary: m.members[id], SubscribedAt: m.edges[i].CreatedAt})
		}
	}
	return members
}

func (m *memorySubscriptions) ListSubscribers(_ context.Context, channelID string) ([]subscription.Member, error) {
	return m.list(func(edge subscription.Subscription) (string, bool) {
		return edge.SubscriberID, edge.ChannelID == channelID
	}), nil
}

func (m *memorySubscriptions) ListChannels(_ context.Context, subscriberID string) ([]subscription.Member, error) {
	return m.list(func(edge subscription.Subscription) (string, bool) {
		return edge.ChannelID, edge.SubscriberID == subscriberID
	}), nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repository := &memorySubscriptions{
		members: map[string]auth.Summary{alice.ID: alice, bob.ID: bob, carol.ID: carol},
	}
	router := chi.NewRouter()
	router.Use(testkit.AsCaller)
	router.Route("/subscriptions", subscription.NewHandler(subscription.NewService(repository, testkit.Logger())).RegisterRoutes)
	return router
}

func TestHandler_SubscribeRules(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		callerID string
		channel  string
		want     int
		message  string
	}{
		{"subscribe", http.MethodPost, bob.ID, alice.ID, http.StatusCreated, subscription.MsgSubscribed},
		{"duplicate", http.MethodPost, bob.ID, alice.ID, http.StatusConflict, subscription.MsgAlreadySubscribed},
		{"self", http.MethodPost, alice.ID, alice.ID, http.StatusBadRequest, subscription.MsgSelfSubscription},
		{"unknown_channel", http.MethodPost, alice.ID, missingID, http.StatusNotFound, "Channel not found"},
		{"anonymous", http.MethodPost, "", alice.ID, http.StatusUnauthorized, ""},
		{"unsubscribe", http.MethodDelete, bob.ID, alice.ID, http.StatusOK, subscription.MsgUnsubscribed},
		{"unsubscribe_again", http.MethodDelete, bob.ID, alice.ID, http.StatusNotFound, "Subscription not found"},
	}

	// Steps share state and run in order
	for _, tt := range tests {
		recorder, envelope := testkit.Do(t, router, tt.method, "/subscriptions/"+tt.channel, tt.callerID, nil)
		assert.Equal(t, tt.want, recorder.Code, "%s: %s", tt.name, recorder.Body.String())
		if tt.message != "" {
			assert.Equal(t, tt.message, envelope.Message, tt.name)
		}
	}
}

func TestHandler_Listings(t *testing.T) {
	router := newTestRouter(t)

	for _, follower := range []string{bob.ID, carol.ID} {
		recorder, _ := testkit.Do(t, router, http.MethodPost, "/subscriptions/"+alice.ID, follower, nil)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}
	recorder, _ := testkit.Do(t, router, http.MethodPost, "/subscriptions/"+carol.ID, bob.ID, nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, envelope := testkit.Do(t, router, http.MethodGet, "/subscriptions/"+alice.ID+"/count", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var count subscription.Count
	testkit.DecodeData(t, envelope, &count)
	assert.Equal(t, 2, count.Count)

	recorder, envelope = testkit.Do(t, router, http.MethodGet, "/subscriptions/"+alice.ID+"/subscribers", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var subscribers []subscription.Member
	testkit.DecodeData(t, envelope, &subscribers)
	require.Len(t, subscribers, 2)
	assert.Equal(t, "carol", subscribers[0].Username)
	assert.Equal(t, "bob", subscribers[1].Username)

	recorder, envelope = testkit.Do(t, router, http.MethodGet, "/subscriptions/user/"+bob.ID+"/channels", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var channels []subscription.Member
	testkit.DecodeData(t, envelope, &channels)
	require.Len(t, channels, 2)
	assert.Equal(t, carol.ID, channels[0].ID)
	assert.Equal(t, alice.ID, channels[1].ID)

	recorder, _ = testkit.Do(t, router, http.MethodGet, "/subscriptions/nope/count", "", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
