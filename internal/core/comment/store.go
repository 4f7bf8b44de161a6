// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the persistence contract for comments.
type Repository interface {
	// ListByTarget returns one page of comments on target, newest first, with the total count.
	ListByTarget(context context.Context, target Target, limit, offset int) ([]*Comment, int, error)

	// FindByID loads a comment with its owner card and like count.
	FindByID(context context.Context, id string) (*Comment, error)

	// Create inserts comment. A missing target yields apperr.NotFound naming it.
	Create(context context.Context, comment *Comment) error

	// UpdateContent rewrites the body and refreshes UpdatedAt.
	UpdateContent(context context.Context, comment *Comment) error

	// Delete removes the comment and its likes.
	Delete(context context.Context, id string) error

	/*
		ToggleLike adds userID's like on the comment, or removes it when present.

		Returns:
		  - bool: Whether the caller likes the comment afterwards
		  - int: Like count afterwards
		  - error: Storage failures
	*/
	ToggleLike(context context.Context, commentID, userID string) (bool, int, error)
}
