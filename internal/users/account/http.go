// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes mounts the profile endpoints next to the auth endpoints under /users.
func (handler *Handler) RegisterRoutes(router chi.Router) {

	// Public channel discovery
	router.Get("/c/{username}", handler.getChannel)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// Account Management
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
		r.Patch("/me/avatar", handler.updateAvatar)
		r.Patch("/me/cover", handler.updateCover)

		// History
		r.Get("/history", handler.watchHistory)
	})
}

// # User Profile Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the profile of the authenticated user.

Response:
  - 200: User: Public projection of the caller
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateMeRequest defines the expected JSON payload for profile updates.
type updateMeRequest struct {
	Fullname *string `json:"fullname"`
	Email    *string `json:"email"`
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the authenticated user's details.

Request:
  - body: updateMeRequest (Partial JSON)

Response:
  - 200: User: The updated profile
  - 400: Validation failure
  - 409: Email already registered
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom(FieldFullname, input.Fullname == nil && input.Email == nil, MsgNothingToUpdate)
	if input.Fullname != nil {
		v.Required(FieldFullname, *input.Fullname).MaxLen(FieldFullname, *input.Fullname, auth.MaxFullnameLength)
	}
	if input.Email != nil {
		v.Required(FieldEmail, *input.Email).Email(FieldEmail, *input.Email)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Fullname: input.Fullname,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgProfileUpdated, user)
}

/*
PATCH /api/v1/users/me/avatar.

Request:
  - body: multipart (avatar)

Response:
  - 200: User: The updated profile
  - 400: Missing or invalid image
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	handler.replaceImage(writer, request, FieldAvatar, MsgAvatarUpdated, handler.accountService.UpdateAvatar)
}

/*
PATCH /api/v1/users/me/cover.

Request:
  - body: multipart (coverImage)

Response:
  - 200: User: The updated profile
  - 400: Missing or invalid image
*/
func (handler *Handler) updateCover(writer http.ResponseWriter, request *http.Request) {
	handler.replaceImage(writer, request, FieldCoverImage, MsgCoverUpdated, handler.accountService.UpdateCoverImage)
}

func (handler *Handler) replaceImage(
	writer http.ResponseWriter,
	request *http.Request,
	field, message string,
	update func(context.Context, string, *storage.Upload) (*auth.User, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := storage.ParseMultipart(writer, request, auth.MaxProfileImageBodySize); err != nil {
		respond.Error(writer, request, err)
		return
	}

	upload, err := storage.RequiredFile(request, field, storage.KindImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer upload.Close()

	user, err := update(request.Context(), userID, upload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, message, user)
}

// # Channel & History Endpoints

/*
GET /api/v1/users/c/{username}.

Description: Public channel page. isSubscribed reflects the caller when authenticated.

Response:
  - 200: Channel
  - 404: Channel not found
*/
func (handler *Handler) getChannel(writer http.ResponseWriter, request *http.Request) {
	channel, err := handler.accountService.GetChannel(
		request.Context(),
		requestutil.Param(request, FieldUsername),
		requestutil.CallerID(request),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channel)
}

/*
GET /api/v1/users/history.

Response:
  - 200: []WatchedVideo: Most recent first
  - 401: Authentication required
*/
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	history, err := handler.accountService.WatchHistory(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, history)
}
