// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import "context"

// Repository defines the persistence contract for videos.
type Repository interface {
	// List returns one page of videos matching filter, newest first, and the total match count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Video, int, error)

	// FindByID loads a video with its owner card. Missing videos yield apperr.NotFound.
	FindByID(context context.Context, id string) (*Video, error)

	// Create inserts video; ID and Owner.ID must be set.
	Create(context context.Context, video *Video) error

	// Update writes title, description and duration.
	Update(context context.Context, video *Video) error

	// Delete removes the video; likes, comments and history rows cascade.
	Delete(context context.Context, id string) error

	/*
		RecordView counts one playback by userID.

		Description: Increments the view counter and upserts the watch history
		entry so the video moves to the front of the viewer's history.

		Returns:
		  - int64: The new view count
		  - error: apperr.NotFound or storage failures
	*/
	RecordView(context context.Context, videoID, userID string) (int64, error)
}
