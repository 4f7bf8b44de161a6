// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// CoreTweetTable represents the 'core.tweet' table
type CoreTweetTable struct {
	Table     string
	ID        string
	OwnerID   string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// CoreTweet is the schema definition for core.tweet
var CoreTweet = CoreTweetTable{
	Table:     constants.SchemaCore + ".tweet",
	ID:        "id",
	OwnerID:   "ownerid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
