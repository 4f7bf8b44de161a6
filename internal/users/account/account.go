// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user profile management and the public channel view.

It lets members read and update their own identity data (display name, email,
avatar, cover image), exposes a channel page with subscription counters, and
lists the caller's watch history.

# Architecture

  - Entities: Channel, WatchedVideo (read models).
  - Domain: This package depends on the auth package for the User entity.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Domain Entities

// Channel is the public profile of a member together with subscription counters.
type Channel struct {
	ID                        string `json:"id"`
	Username                  string `json:"username"`
	Fullname                  string `json:"fullname"`
	Email                     string `json:"email"`
	AvatarURL                 string `json:"avatar"`
	CoverImageURL             string `json:"coverImage"`
	SubscribersCount          int    `json:"subscribersCount"`
	ChannelsSubscribedToCount int    `json:"channelsSubscribedToCount"`
	IsSubscribed              bool   `json:"isSubscribed"` // false for anonymous viewers
}

// WatchedVideo is one entry of a member's watch history.
type WatchedVideo struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     float64      `json:"duration"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Views        int64        `json:"views"`
	Owner        auth.Summary `json:"owner"`
	WatchedAt    time.Time    `json:"watchedAt"`
}

// # Field Identifiers

const (
	FieldFullname   = "fullname"
	FieldEmail      = "email"
	FieldAvatar     = "avatar"
	FieldCoverImage = "coverImage"
	FieldUsername   = "username"
)

// # Client Messages

const (
	MsgProfileUpdated  = "Account updated successfully"
	MsgAvatarUpdated   = "Avatar updated successfully"
	MsgCoverUpdated    = "Cover image updated successfully"
	MsgEmailTaken      = "Email is already registered"
	MsgNothingToUpdate = "fullname or email is required"
)

// # Limits

// MaxWatchHistoryItems caps the history listing.
const MaxWatchHistoryItems = 200

// # Repository Contracts

// AccountRepository defines the persistence contract for user profiles.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		Update writes the mutable profile fields (fullname, email, avatar, cover).

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Conflict when the email is taken, or storage failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		FindChannel loads the channel of username as seen by viewerID.

		Parameters:
		  - context: context.Context
		  - username: string (lower-cased)
		  - viewerID: string (empty for anonymous viewers)

		Returns:
		  - *Channel: Profile with counters
		  - error: apperr.NotFound or storage failures
	*/
	FindChannel(context context.Context, username, viewerID string) (*Channel, error)

	/*
		ListWatchHistory returns the videos watched by userID, most recent first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int

		Returns:
		  - []WatchedVideo: History entries with owner summaries
		  - error: Retrieval errors
	*/
	ListWatchHistory(context context.Context, userID string, limit int) ([]WatchedVideo, error)
}
