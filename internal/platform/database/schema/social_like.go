// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// SocialLikeTable represents the 'social.like' table
type SocialLikeTable struct {
	Table     string
	ID        string
	LikedBy   string
	VideoID   string
	CommentID string
	TweetID   string
	CreatedAt string
}

// SocialLike is the schema definition for social.like
var SocialLike = SocialLikeTable{
	Table:     constants.SchemaSocial + ".like",
	ID:        "id",
	LikedBy:   "likedby",
	VideoID:   "videoid",
	CommentID: "commentid",
	TweetID:   "tweetid",
	CreatedAt: "createdat",
}
