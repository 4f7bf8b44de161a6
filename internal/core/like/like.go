// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package like records which members like a video, a comment or a tweet.

A like always points at exactly one target, and a member likes a given
target at most once.
*/
package like

import (
	"context"
	"time"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Domain Entities

// Like is one member's like on one target.
type Like struct {
	ID        string       `json:"id"`
	LikedBy   auth.Summary `json:"likedBy"`
	VideoID   string       `json:"video,omitempty"`
	CommentID string       `json:"comment,omitempty"`
	TweetID   string       `json:"tweet,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Target identifies the liked resource. Exactly one field is set.
type Target struct {
	VideoID   string `json:"videoId"`
	CommentID string `json:"commentId"`
	TweetID   string `json:"tweetId"`
}

// Kind names the target resource for messages.
func (target Target) Kind() string {
	switch {
	case target.CommentID != "":
		return "Comment"
	case target.TweetID != "":
		return "Tweet"
	default:
		return "Video"
	}
}

// # Field Identifiers

const (
	FieldVideoID   = "videoId"
	FieldCommentID = "commentId"
	FieldTweetID   = "tweetId"
	FieldTarget    = "target"
)

// # Client Messages

const (
	MsgLiked        = "Liked successfully"
	MsgUnliked      = "Unliked successfully"
	MsgAlreadyLiked = "You have already liked this item"
)

// # Repository Contracts

// Repository defines the persistence contract for likes.
type Repository interface {
	/*
		Create stores a like and returns it with the liker's owner card.

		Returns:
		  - *Like: The stored like
		  - error: Conflict when already liked, NotFound when the target is missing
	*/
	Create(context context.Context, id, userID string, target Target) (*Like, error)

	// Delete removes userID's like on target, failing with NotFound("Like") when absent.
	Delete(context context.Context, userID string, target Target) error

	// ListByTarget returns the likes on target, most recent first.
	ListByTarget(context context.Context, target Target) ([]*Like, error)
}
