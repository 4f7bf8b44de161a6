// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ownership implements the single authorization rule of the platform:
only the creator of an owned resource may mutate or delete it.

Videos, comments, tweets and playlists all satisfy [Resource], and every
mutating service method calls [Assert] before touching storage. There are no
roles and no administrative override.
*/
package ownership

import (
	"github.com/google/uuid"

	"github.com/taibuivan/vidora/internal/platform/apperr"
)

// ErrNotOwner is returned when the caller does not own the resource.
var ErrNotOwner = apperr.Forbidden("not authorized")

// Resource is any entity with an immutable owner.
type Resource interface {
	OwnerID() string
}

/*
Assert fails with [ErrNotOwner] unless identityID owns resource.

Parameters:
  - resource: Resource
  - identityID: string (the authenticated caller)

Returns:
  - error: nil on match, Forbidden otherwise
*/
func Assert(resource Resource, identityID string) error {
	if resource == nil || !SameID(resource.OwnerID(), identityID) {
		return ErrNotOwner
	}
	return nil
}

// SameID is the canonical identifier comparison used across the codebase.
//
// Both values are parsed as UUIDs and compared by value, so casing and
// formatting differences never decide an authorization outcome. Unparseable
// values are never equal to anything.
func SameID(left, right string) bool {
	leftID, err := uuid.Parse(left)
	if err != nil {
		return false
	}
	rightID, err := uuid.Parse(right)
	if err != nil {
		return false
	}
	return leftID == rightID
}
