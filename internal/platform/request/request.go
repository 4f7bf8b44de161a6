// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ID retrieves a named URL parameter and checks that it is a UUID.

Returns:
  - string: The canonical lower-case identifier
  - error: apperr.BadRequest when the parameter is not a valid identifier
*/
func ID(request *http.Request, name string) (string, error) {
	return ParseID(chi.URLParam(request, name), name)
}

// ParseID canonicalises a raw identifier or fails with a BadRequest naming field.
func ParseID(raw, field string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", apperr.BadRequest("Invalid " + field)
	}
	return parsed.String(), nil
}

/*
Identity extracts the resolved caller from the request context.

Returns nil if the request is anonymous.
*/
func Identity(request *http.Request) *sec.Identity {
	return ctxutil.GetIdentity(request.Context())
}

/*
RequiredIdentity ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Identity: The authenticated caller
  - error: the recorded rejection reason, or apperr.Unauthorized("missing credentials")
*/
func RequiredIdentity(request *http.Request) (*sec.Identity, error) {

	// Get the resolved caller
	identity := ctxutil.GetIdentity(request.Context())

	// If the caller is not authenticated, surface why
	if identity == nil {
		if reason := ctxutil.GetAuthFailure(request.Context()); reason != nil {
			return nil, reason
		}
		return nil, apperr.Unauthorized("missing credentials")
	}

	return identity, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get the caller
	identity, err := RequiredIdentity(request)

	// If the caller is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return identity.ID, nil
}

// CallerID returns the caller's ID, or an empty string for anonymous requests.
func CallerID(request *http.Request) string {
	if identity := Identity(request); identity != nil {
		return identity.ID
	}
	return ""
}
