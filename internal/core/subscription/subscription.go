// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package subscription manages the follower graph between members and channels.

A channel is simply a member's account: subscribing to a channel means
following the member who owns it.
*/
package subscription

import (
	"context"
	"time"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// Subscription links a subscriber to a channel.
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Member is one side of a subscription as shown in listings.
type Member struct {
	auth.Summary
	SubscribedAt time.Time `json:"subscribedAt"`
}

// Count is the subscriber count of a channel.
type Count struct {
	Count int `json:"count"`
}

const (
	FieldChannelID = "channelId"
	FieldUserID    = "userId"

	MsgSubscribed        = "Subscribed successfully"
	MsgUnsubscribed      = "Unsubscribed successfully"
	MsgSelfSubscription  = "You cannot subscribe to yourself"
	MsgAlreadySubscribed = "Already subscribed to this channel"
)

// Repository defines the persistence contract for subscriptions.
type Repository interface {
	// Create stores the subscription. An unknown channel yields NotFound("Channel"),
	// a duplicate yields Conflict.
	Create(context context.Context, subscription *Subscription) error

	// Delete removes the subscription, failing with NotFound("Subscription") when absent.
	Delete(context context.Context, subscriberID, channelID string) error

	// CountSubscribers returns how many members follow channelID.
	CountSubscribers(context context.Context, channelID string) (int, error)

	// ListSubscribers returns the members following channelID, most recent first.
	ListSubscribers(context context.Context, channelID string) ([]Member, error)

	// ListChannels returns the channels subscriberID follows, most recent first.
	ListChannels(context context.Context, subscriberID string) ([]Member, error)
}
