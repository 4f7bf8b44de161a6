// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/ownership"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Service implements the video use cases.
type Service struct {
	repository Repository
	mediaStore storage.MediaStore
	logger     *slog.Logger
}

// NewService constructs a video [Service].
func NewService(repository Repository, media storage.MediaStore, logger *slog.Logger) *Service {
	return &Service{repository: repository, mediaStore: media, logger: logger}
}

// UploadInput carries a validated upload form.
type UploadInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *storage.Upload
	Thumbnail   *storage.Upload
}

/*
Upload stores the media files and publishes a new video owned by ownerID.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: UploadInput

Returns:
  - *Video: The created video with its owner card
  - error: Media host or storage failures
*/
func (service *Service) Upload(context context.Context, ownerID string, input UploadInput) (*Video, error) {
	videoURL, err := storage.Store(context, service.mediaStore, constants.FolderVideos, input.VideoFile)
	if err != nil {
		return nil, err
	}

	thumbnailURL, err := storage.Store(context, service.mediaStore, constants.FolderThumbnails, input.Thumbnail)
	if err != nil {
		return nil, err
	}

	video := &Video{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Duration:     input.Duration,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
	}
	video.Owner.ID = ownerID

	if err := service.repository.Create(context, video); err != nil {
		return nil, fmt.Errorf("video_service_upload_failed: %w", err)
	}

	service.logger.InfoContext(context, "video_uploaded",
		slog.String("video_id", video.ID),
		slog.String("owner_id", ownerID),
	)

	// Reload for the owner card
	return service.repository.FindByID(context, video.ID)
}

// List returns one page of videos matching filter.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Video, int, error) {
	videos, total, err := service.repository.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("video_service_list_failed: %w", err)
	}
	return videos, total, nil
}

/*
Get loads a video. When viewerID is set the playback is counted and the video
is recorded in the viewer's watch history.

Parameters:
  - context: context.Context
  - id: string
  - viewerID: string (empty for anonymous callers)

Returns:
  - *Video
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id, viewerID string) (*Video, error) {
	video, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if viewerID == "" {
		return video, nil
	}

	views, err := service.repository.RecordView(context, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("video_service_record_view_failed: %w", err)
	}
	video.Views = views

	return video, nil
}

// UpdateInput holds the optional fields of a partial edit.
type UpdateInput struct {
	Title       *string
	Description *string
	Duration    *float64
}

/*
Update applies a partial edit. Only the owner may edit a video.

Returns:
  - *Video: The updated video
  - error: NotFound, Forbidden or storage failures
*/
func (service *Service) Update(context context.Context, id, callerID string, input UpdateInput) (*Video, error) {
	video, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := ownership.Assert(video, callerID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		video.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		video.Description = strings.TrimSpace(*input.Description)
	}
	if input.Duration != nil {
		video.Duration = *input.Duration
	}

	if err := service.repository.Update(context, video); err != nil {
		return nil, fmt.Errorf("video_service_update_failed: %w", err)
	}

	return video, nil
}

// Delete removes a video owned by callerID.
func (service *Service) Delete(context context.Context, id, callerID string) error {
	video, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := ownership.Assert(video, callerID); err != nil {
		return err
	}

	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("video_service_delete_failed: %w", err)
	}

	service.logger.InfoContext(context, "video_deleted", slog.String("video_id", id))
	return nil
}
