// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// Service implements the like use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a like [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

func validateTarget(target Target) error {
	return (&validate.Validator{}).ExactlyOne(FieldTarget, target.VideoID, target.CommentID, target.TweetID).Err()
}

/*
Like records userID's like on target.

Returns:
  - *Like: The stored like
  - error: Validation (zero or several targets), Conflict (already liked) or NotFound (target)
*/
func (service *Service) Like(context context.Context, userID string, target Target) (*Like, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	like, err := service.repository.Create(context, uuid.New(), userID, target)
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "like_created",
		slog.String("user_id", userID),
		slog.String("target", target.Kind()),
	)
	return like, nil
}

// Unlike removes userID's like on target, failing with NotFound when there is none.
func (service *Service) Unlike(context context.Context, userID string, target Target) error {
	if err := validateTarget(target); err != nil {
		return err
	}
	return service.repository.Delete(context, userID, target)
}

// Likers lists the likes on target with each liker's owner card.
func (service *Service) Likers(context context.Context, target Target) ([]*Like, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	return service.repository.ListByTarget(context, target)
}
