// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/ownership"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Service implements the comment use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a comment [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func validateTarget(target Target) error {
	return (&validate.Validator{}).ExactlyOne(FieldTarget, target.VideoID, target.TweetID).Err()
}

// List returns one page of comments on target, newest first.
func (service *Service) List(context context.Context, target Target, limit, offset int) ([]*Comment, int, error) {
	if err := validateTarget(target); err != nil {
		return nil, 0, err
	}

	comments, total, err := service.repository.ListByTarget(context, target, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("comment_service_list_failed: %w", err)
	}
	return comments, total, nil
}

/*
Create attaches a new comment by ownerID to target.

Parameters:
  - context: context.Context
  - ownerID: string
  - target: Target (exactly one of video or tweet)
  - content: string

Returns:
  - *Comment: The stored comment with its owner card
  - error: Validation, NotFound (target) or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, target Target, content string) (*Comment, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:      uuid.New(),
		Content: strings.TrimSpace(content),
		VideoID: target.VideoID,
		TweetID: target.TweetID,
	}
	comment.Owner.ID = ownerID

	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("target", target.Kind()),
	)

	return service.repository.FindByID(context, comment.ID)
}

// Update rewrites the content of a comment owned by callerID.
func (service *Service) Update(context context.Context, id, callerID, content string) (*Comment, error) {
	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := ownership.Assert(comment, callerID); err != nil {
		return nil, err
	}

	comment.Content = strings.TrimSpace(content)
	if err := service.repository.UpdateContent(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	return comment, nil
}

// Delete removes a comment owned by callerID.
func (service *Service) Delete(context context.Context, id, callerID string) error {
	comment, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := ownership.Assert(comment, callerID); err != nil {
		return err
	}

	return service.repository.Delete(context, id)
}

/*
ToggleLike likes the comment for userID, or unlikes it when already liked.

Returns:
  - *LikeState: Liked flag and like count afterwards
  - error: NotFound or storage failures
*/
func (service *Service) ToggleLike(context context.Context, id, userID string) (*LikeState, error) {
	if _, err := service.repository.FindByID(context, id); err != nil {
		return nil, err
	}

	liked, count, err := service.repository.ToggleLike(context, id, userID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_toggle_like_failed: %w", err)
	}

	return &LikeState{Liked: liked, LikesCount: count}, nil
}
