// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package playlist

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

// Handler exposes playlists over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a playlist [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the playlist endpoints; every route requires a session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.createPlaylist)
	router.Get("/user/{userId}", handler.listUserPlaylists)
	router.Get("/{id}", handler.getPlaylist)
	router.Put("/{id}", handler.updatePlaylist)
	router.Delete("/{id}", handler.deletePlaylist)

	router.Post("/{id}/videos/{videoId}", handler.addVideo)
	router.Delete("/{id}/videos/{videoId}", handler.removeVideo)
}

// # Playlist Endpoints

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

/*
POST /api/v1/playlists.

Response:
  - 201: Playlist
  - 400: Missing name or description
*/
func (handler *Handler) createPlaylist(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createPlaylistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	name, description := strings.TrimSpace(input.Name), strings.TrimSpace(input.Description)
	v := &validate.Validator{}
	v.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	v.Required(FieldDescription, description).MaxLen(FieldDescription, description, MaxDescriptionLength)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Create(request.Context(), ownerID, name, description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Success: true, Message: MsgPlaylistCreated, Data: playlist})
}

func (handler *Handler) listUserPlaylists(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlists, err := handler.service.ListByUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlists)
}

func (handler *Handler) getPlaylist(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Get(request.Context(), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlist)
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

/*
PUT /api/v1/playlists/{id}.

Request:
  - body: updatePlaylistRequest (at least one field)

Response:
  - 200: Playlist
  - 403: Caller is not the owner
  - 404: Playlist not found
*/
func (handler *Handler) updatePlaylist(writer http.ResponseWriter, request *http.Request) {
	callerID, playlistID, ok := handler.ownerRoute(writer, request)
	if !ok {
		return
	}

	var input updatePlaylistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom(FieldName, input.Name == nil && input.Description == nil, MsgNothingToUpdate)
	if input.Name != nil {
		v.Required(FieldName, strings.TrimSpace(*input.Name)).MaxLen(FieldName, *input.Name, MaxNameLength)
	}
	if input.Description != nil {
		v.Required(FieldDescription, strings.TrimSpace(*input.Description)).MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.Update(request.Context(), playlistID, callerID, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgPlaylistUpdated, playlist)
}

func (handler *Handler) deletePlaylist(writer http.ResponseWriter, request *http.Request) {
	callerID, playlistID, ok := handler.ownerRoute(writer, request)
	if !ok {
		return
	}

	if err := handler.service.Delete(request.Context(), playlistID, callerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgPlaylistDeleted, struct{}{})
}

// # Membership Endpoints

/*
POST /api/v1/playlists/{id}/videos/{videoId}.

Response:
  - 200: Playlist after the addition (idempotent)
  - 403: Caller is not the owner
  - 404: Playlist or video not found
*/
func (handler *Handler) addVideo(writer http.ResponseWriter, request *http.Request) {
	callerID, playlistID, ok := handler.ownerRoute(writer, request)
	if !ok {
		return
	}

	videoID, err := requestutil.ID(request, FieldVideoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.AddVideo(request.Context(), playlistID, callerID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgVideoAdded, playlist)
}

// DELETE /api/v1/playlists/{id}/videos/{videoId}: owner only.
func (handler *Handler) removeVideo(writer http.ResponseWriter, request *http.Request) {
	callerID, playlistID, ok := handler.ownerRoute(writer, request)
	if !ok {
		return
	}

	videoID, err := requestutil.ID(request, FieldVideoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlist, err := handler.service.RemoveVideo(request.Context(), playlistID, callerID, videoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgVideoRemoved, playlist)
}

// ownerRoute extracts the caller and the {id} parameter, writing the error response on failure.
func (handler *Handler) ownerRoute(writer http.ResponseWriter, request *http.Request) (string, string, bool) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	playlistID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return "", "", false
	}

	return callerID, playlistID, true
}
