// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/ownership"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Service implements the tweet use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a tweet [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// List returns one page of tweets newest first, optionally narrowed to ownerID.
func (service *Service) List(context context.Context, ownerID string, limit, offset int) ([]*Tweet, int, error) {
	tweets, total, err := service.repository.List(context, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("tweet_service_list_failed: %w", err)
	}
	return tweets, total, nil
}

// Create publishes a tweet by ownerID.
func (service *Service) Create(context context.Context, ownerID, content string) (*Tweet, error) {
	tweet := &Tweet{ID: uuid.New(), Content: strings.TrimSpace(content)}
	tweet.Owner.ID = ownerID

	if err := service.repository.Create(context, tweet); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "tweet_created", slog.String("tweet_id", tweet.ID))
	return service.repository.FindByID(context, tweet.ID)
}

// Update rewrites a tweet owned by callerID.
func (service *Service) Update(context context.Context, id, callerID, content string) (*Tweet, error) {
	tweet, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := ownership.Assert(tweet, callerID); err != nil {
		return nil, err
	}

	tweet.Content = strings.TrimSpace(content)
	if err := service.repository.UpdateContent(context, tweet); err != nil {
		return nil, fmt.Errorf("tweet_service_update_failed: %w", err)
	}
	return tweet, nil
}

// Delete removes a tweet owned by callerID.
func (service *Service) Delete(context context.Context, id, callerID string) error {
	tweet, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := ownership.Assert(tweet, callerID); err != nil {
		return err
	}

	return service.repository.Delete(context, id)
}
