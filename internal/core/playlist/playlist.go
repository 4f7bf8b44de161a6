// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package playlist manages named, owner-curated lists of videos.

# Architecture

  - Entity: Playlist with its ordered video summaries (oldest addition first).
  - Membership is a set: adding a video twice keeps a single entry.
*/
package playlist

import (
	"context"
	"time"

	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Domain Entities

// Playlist is a named collection of videos curated by its owner.
type Playlist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       auth.Summary   `json:"owner"`
	Videos      []VideoSummary `json:"videos"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// OwnerID returns the curator's ID.
func (playlist *Playlist) OwnerID() string {
	return playlist.Owner.ID
}

// VideoSummary is the compact video card shown inside a playlist.
type VideoSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	AddedAt      time.Time `json:"addedAt"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldID          = "id"
	FieldVideoID     = "videoId"
	FieldUserID      = "userId"
)

// # Limits

const (
	MaxNameLength        = 150
	MaxDescriptionLength = 2000
)

// # Client Messages

const (
	MsgPlaylistCreated = "Playlist created successfully"
	MsgPlaylistUpdated = "Playlist updated successfully"
	MsgPlaylistDeleted = "Playlist deleted successfully"
	MsgVideoAdded      = "Video added to playlist successfully"
	MsgVideoRemoved    = "Video removed from playlist successfully"
	MsgNothingToUpdate = "name or description is required"
)

// # Repository Contracts

// Repository defines the persistence contract for playlists.
type Repository interface {
	// Create inserts playlist; ID and Owner.ID must be set.
	Create(context context.Context, playlist *Playlist) error

	// FindByID loads a playlist with its owner card and videos.
	FindByID(context context.Context, id string) (*Playlist, error)

	// ListByOwner returns every playlist of ownerID, newest first, with videos.
	ListByOwner(context context.Context, ownerID string) ([]*Playlist, error)

	// Update writes name and description.
	Update(context context.Context, playlist *Playlist) error

	// Delete removes the playlist and its memberships.
	Delete(context context.Context, id string) error

	// VideoExists reports whether videoID names a stored video.
	VideoExists(context context.Context, videoID string) (bool, error)

	// AddVideo appends videoID; adding a present video is a no-op.
	AddVideo(context context.Context, playlistID, videoID string) error

	// RemoveVideo drops videoID; removing an absent video is a no-op.
	RemoveVideo(context context.Context, playlistID, videoID string) error
}
