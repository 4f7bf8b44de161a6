// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// SocialSubscriptionTable represents the 'social.subscription' table
type SocialSubscriptionTable struct {
	Table        string
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    string
}

// SocialSubscription is the schema definition for social.subscription
var SocialSubscription = SocialSubscriptionTable{
	Table:        constants.SchemaSocial + ".subscription",
	ID:           "id",
	SubscriberID: "subscriberid",
	ChannelID:    "channelid",
	CreatedAt:    "createdat",
}
