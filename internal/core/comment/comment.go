// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment manages comments attached to a video or a tweet, and the
per-comment like toggle.
*/
package comment

import (
	"time"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// Comment is a remark left under a video or a tweet.
type Comment struct {
	ID         string       `json:"id"`
	Content    string       `json:"content"`
	VideoID    string       `json:"video,omitempty"`
	TweetID    string       `json:"tweet,omitempty"`
	Owner      auth.Summary `json:"owner"`
	LikesCount int          `json:"likesCount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// OwnerID returns the author's ID.
func (comment *Comment) OwnerID() string {
	return comment.Owner.ID
}

// Target identifies what a comment is attached to. Exactly one field is set.
type Target struct {
	VideoID string
	TweetID string
}

// Kind names the target resource for error messages.
func (target Target) Kind() string {
	if target.TweetID != "" {
		return "Tweet"
	}
	return "Video"
}

// LikeState is the outcome of a like toggle.
type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

// # Field Identifiers

const (
	FieldContent = "content"
	FieldVideo   = "video"
	FieldTweet   = "tweet"
	FieldTarget  = "target"
	FieldID      = "id"
)

// MaxContentLength bounds a comment body.
const MaxContentLength = 2000

// # Client Messages

const (
	MsgCommentAdded   = "Comment added successfully"
	MsgCommentUpdated = "Comment updated successfully"
	MsgCommentDeleted = "Comment deleted successfully"
)
