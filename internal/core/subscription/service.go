// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ownership"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Service implements the subscription use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a subscription [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Subscribe makes subscriberID follow channelID.

Returns:
  - *Subscription
  - error: BadRequest (self), NotFound (channel) or Conflict (duplicate)
*/
func (service *Service) Subscribe(context context.Context, subscriberID, channelID string) (*Subscription, error) {
	if ownership.SameID(subscriberID, channelID) {
		return nil, apperr.BadRequest(MsgSelfSubscription)
	}

	subscription := &Subscription{ID: uuid.New(), SubscriberID: subscriberID, ChannelID: channelID}
	if err := service.repository.Create(context, subscription); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "channel_subscribed",
		slog.String("subscriber_id", subscriberID),
		slog.String("channel_id", channelID),
	)
	return subscription, nil
}

// Unsubscribe removes the follow edge, failing with NotFound when absent.
func (service *Service) Unsubscribe(context context.Context, subscriberID, channelID string) error {
	return service.repository.Delete(context, subscriberID, channelID)
}

// Count returns the subscriber count of channelID.
func (service *Service) Count(context context.Context, channelID string) (*Count, error) {
	count, err := service.repository.CountSubscribers(context, channelID)
	if err != nil {
		return nil, fmt.Errorf("subscription_service_count_failed: %w", err)
	}
	return &Count{Count: count}, nil
}

// Subscribers lists the followers of channelID.
func (service *Service) Subscribers(context context.Context, channelID string) ([]Member, error) {
	return service.repository.ListSubscribers(context, channelID)
}

// Channels lists the channels userID follows.
func (service *Service) Channels(context context.Context, userID string) ([]Member, error) {
	return service.repository.ListChannels(context, userID)
}
