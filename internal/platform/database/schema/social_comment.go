// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	OwnerID   string
	VideoID   string
	TweetID   string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     constants.SchemaSocial + ".comment",
	ID:        "id",
	OwnerID:   "ownerid",
	VideoID:   "videoid",
	TweetID:   "tweetid",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
