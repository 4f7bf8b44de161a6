// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tweet manages short text posts published on a channel.
package tweet

import (
	"context"
	"time"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// Tweet is a short text post.
type Tweet struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Owner     auth.Summary `json:"owner"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// OwnerID returns the author's ID.
func (tweet *Tweet) OwnerID() string {
	return tweet.Owner.ID
}

const (
	FieldContent = "content"
	FieldID      = "id"
	FieldUserID  = "userId"

	MaxContentLength = 280

	MsgTweetCreated = "Tweet created successfully"
	MsgTweetUpdated = "Tweet updated successfully"
	MsgTweetDeleted = "Tweet deleted successfully"
)

// Repository defines the persistence contract for tweets.
type Repository interface {
	// List returns one page of tweets newest first; ownerID narrows to one author when set.
	List(context context.Context, ownerID string, limit, offset int) ([]*Tweet, int, error)
	FindByID(context context.Context, id string) (*Tweet, error)
	Create(context context.Context, tweet *Tweet) error
	UpdateContent(context context.Context, tweet *Tweet) error
	Delete(context context.Context, id string) error
}
