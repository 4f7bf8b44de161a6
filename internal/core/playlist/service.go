// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ownership"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Service implements the playlist use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a playlist [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Create stores a new, empty playlist owned by ownerID.
func (service *Service) Create(context context.Context, ownerID, name, description string) (*Playlist, error) {
	playlist := &Playlist{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	playlist.Owner.ID = ownerID

	if err := service.repository.Create(context, playlist); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "playlist_created", slog.String("playlist_id", playlist.ID))
	return service.repository.FindByID(context, playlist.ID)
}

// Get loads a playlist with its videos.
func (service *Service) Get(context context.Context, id string) (*Playlist, error) {
	return service.repository.FindByID(context, id)
}

// ListByUser returns the playlists curated by userID.
func (service *Service) ListByUser(context context.Context, userID string) ([]*Playlist, error) {
	playlists, err := service.repository.ListByOwner(context, userID)
	if err != nil {
		return nil, fmt.Errorf("playlist_service_list_failed: %w", err)
	}
	return playlists, nil
}

// UpdateInput holds the optional fields of a partial edit.
type UpdateInput struct {
	Name        *string
	Description *string
}

// Update applies a partial edit to a playlist owned by callerID.
func (service *Service) Update(context context.Context, id, callerID string, input UpdateInput) (*Playlist, error) {
	playlist, err := service.owned(context, id, callerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		playlist.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		playlist.Description = strings.TrimSpace(*input.Description)
	}

	if err := service.repository.Update(context, playlist); err != nil {
		return nil, fmt.Errorf("playlist_service_update_failed: %w", err)
	}
	return playlist, nil
}

// Delete removes a playlist owned by callerID.
func (service *Service) Delete(context context.Context, id, callerID string) error {
	if _, err := service.owned(context, id, callerID); err != nil {
		return err
	}
	return service.repository.Delete(context, id)
}

/*
AddVideo puts videoID into a playlist owned by callerID.

Description: Adding a video that is already present succeeds without creating
a second entry.

Returns:
  - *Playlist: The playlist after the change
  - error: NotFound (playlist or video), Forbidden or storage failures
*/
func (service *Service) AddVideo(context context.Context, id, callerID, videoID string) (*Playlist, error) {
	if _, err := service.owned(context, id, callerID); err != nil {
		return nil, err
	}

	exists, err := service.repository.VideoExists(context, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Video")
	}

	if err := service.repository.AddVideo(context, id, videoID); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, id)
}

// RemoveVideo takes videoID out of a playlist owned by callerID.
func (service *Service) RemoveVideo(context context.Context, id, callerID, videoID string) (*Playlist, error) {
	if _, err := service.owned(context, id, callerID); err != nil {
		return nil, err
	}

	if err := service.repository.RemoveVideo(context, id, videoID); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, id)
}

// owned loads a playlist and asserts callerID curates it.
func (service *Service) owned(context context.Context, id, callerID string) (*Playlist, error) {
	playlist, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if err := ownership.Assert(playlist, callerID); err != nil {
		return nil, err
	}
	return playlist, nil
}
