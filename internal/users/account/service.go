// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles and channels.
type Service struct {
	accountRepository AccountRepository
	mediaStore        storage.MediaStore
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, media storage.MediaStore, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		mediaStore:        media,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the private profile of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	Fullname *string
	Email    *string
}

/*
UpdateProfile applies a partial set of changes to a user's account details.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict (email taken) or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Fullname != nil {
		user.Fullname = strings.TrimSpace(*input.Fullname)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

/*
UpdateAvatar uploads a new avatar and points the profile at it.

Parameters:
  - context: context.Context
  - userID: string
  - upload: *storage.Upload

Returns:
  - *auth.User: The updated profile
  - error: Upload or storage failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID string, upload *storage.Upload) (*auth.User, error) {
	return service.replaceImage(context, userID, constants.FolderAvatars, upload, func(user *auth.User, url string) {
		user.AvatarURL = url
	})
}

/*
UpdateCoverImage uploads a new cover image and points the profile at it.

Parameters:
  - context: context.Context
  - userID: string
  - upload: *storage.Upload

Returns:
  - *auth.User: The updated profile
  - error: Upload or storage failures
*/
func (service *Service) UpdateCoverImage(context context.Context, userID string, upload *storage.Upload) (*auth.User, error) {
	return service.replaceImage(context, userID, constants.FolderCovers, upload, func(user *auth.User, url string) {
		user.CoverImageURL = url
	})
}

func (service *Service) replaceImage(context context.Context, userID, folder string, upload *storage.Upload, apply func(*auth.User, string)) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	url, err := storage.Store(context, service.mediaStore, folder, upload)
	if err != nil {
		return nil, err
	}

	apply(user, url)
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_image_update_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_image_updated",
		slog.String("user_id", userID),
		slog.String("folder", folder),
	)

	return user, nil
}

// # Channel & History

/*
GetChannel retrieves the public channel page of username.

Parameters:
  - context: context.Context
  - username: string (case-insensitive)
  - viewerID: string (empty for anonymous viewers)

Returns:
  - *Channel: Profile with subscriber counters
  - error: BadRequest (blank username), NotFound or storage failures
*/
func (service *Service) GetChannel(context context.Context, username, viewerID string) (*Channel, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperr.BadRequest("Username is missing")
	}
	return service.accountRepository.FindChannel(context, username, viewerID)
}

/*
WatchHistory lists the caller's watched videos, most recent first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []WatchedVideo: History entries
  - error: Retrieval errors
*/
func (service *Service) WatchHistory(context context.Context, userID string) ([]WatchedVideo, error) {
	history, err := service.accountRepository.ListWatchHistory(context, userID, MaxWatchHistoryItems)
	if err != nil {
		return nil, fmt.Errorf("account_service_watch_history_failed: %w", err)
	}
	if history == nil {
		history = []WatchedVideo{}
	}
	return history, nil
}
