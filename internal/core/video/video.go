// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package video manages uploaded videos: publishing, discovery, playback
accounting and owner-only edits.

# Architecture

  - Entity: Video, carrying the owner card of its uploader.
  - Playback: reading a video as an authenticated caller bumps its view count
    and moves it to the front of the caller's watch history.
*/
package video

import (
	"time"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Domain Entities

// Video is a published clip together with its uploader's owner card.
type Video struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     float64      `json:"duration"`
	VideoURL     string       `json:"videoFile"`
	ThumbnailURL string       `json:"thumbnail"`
	Views        int64        `json:"views"`
	Owner        auth.Summary `json:"owner"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// OwnerID returns the uploader's ID.
func (video *Video) OwnerID() string {
	return video.Owner.ID
}

// Filter narrows a video listing.
type Filter struct {
	OwnerID string // uploader
	LikedBy string // videos liked by this user
	Query   string // case-insensitive title search
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDuration    = "duration"
	FieldVideoFile   = "videoFile"
	FieldThumbnail   = "thumbnail"
	FieldOwner       = "owner"
	FieldID          = "id"
)

// # Limits

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000

	// MaxUploadBodySize covers one video, one thumbnail and the text fields.
	MaxUploadBodySize = constants.MaxVideoSize + constants.MaxImageSize + 1<<20
)

// # Client Messages

const (
	MsgVideoUploaded   = "Video uploaded successfully"
	MsgVideoUpdated    = "Video updated successfully"
	MsgVideoDeleted    = "Video deleted successfully"
	MsgNothingToUpdate = "title, description or duration is required"
	MsgInvalidDuration = "duration must be a non-negative number of seconds"
)
