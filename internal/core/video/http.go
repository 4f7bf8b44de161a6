// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// Handler exposes videos over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a video [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the video endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listVideos)
	router.Get("/{id}", handler.getVideo)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/upload", handler.uploadVideo)
		r.Patch("/{id}", handler.updateVideo)
		r.Delete("/{id}", handler.deleteVideo)
	})
}

/*
GET /api/v1/videos.

Request:
  - query: page, limit, owner (user ID), q (title search)

Response:
  - 200: []Video with pagination meta
  - 400: Malformed owner ID
*/
func (handler *Handler) listVideos(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{Query: request.URL.Query().Get("q")}
	if owner := request.URL.Query().Get(FieldOwner); owner != "" {
		ownerID, err := requestutil.ParseID(owner, FieldOwner)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		filter.OwnerID = ownerID
	}

	videos, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/videos/{id}.

Description: Authenticated reads count as a view and land in the caller's history.

Response:
  - 200: Video
  - 400: Malformed ID
  - 404: Video not found
*/
func (handler *Handler) getVideo(writer http.ResponseWriter, request *http.Request) {
	videoID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Get(request.Context(), videoID, requestutil.CallerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

/*
POST /api/v1/videos/upload.

Request:
  - body: multipart (title, description, duration, videoFile, thumbnail)

Response:
  - 201: Video
  - 400: Missing field, bad duration or unsupported media
  - 413: Body too large
*/
func (handler *Handler) uploadVideo(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := storage.ParseMultipart(writer, request, MaxUploadBodySize); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title := strings.TrimSpace(request.FormValue(FieldTitle))
	description := strings.TrimSpace(request.FormValue(FieldDescription))
	rawDuration := strings.TrimSpace(request.FormValue(FieldDuration))

	v := &validate.Validator{}
	v.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
	v.Required(FieldDescription, description).MaxLen(FieldDescription, description, MaxDescriptionLength)
	v.Required(FieldDuration, rawDuration)

	duration, durationErr := parseDuration(rawDuration)
	v.Custom(FieldDuration, rawDuration != "" && durationErr != nil, MsgInvalidDuration)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoFile, err := storage.RequiredFile(request, FieldVideoFile, storage.KindVideo)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer videoFile.Close()

	thumbnail, err := storage.RequiredFile(request, FieldThumbnail, storage.KindImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer thumbnail.Close()

	video, err := handler.service.Upload(request.Context(), ownerID, UploadInput{
		Title:       title,
		Description: description,
		Duration:    duration,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Success: true, Message: MsgVideoUploaded, Data: video})
}

type updateVideoRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Duration    *float64 `json:"duration"`
}

/*
PATCH /api/v1/videos/{id}.

Request:
  - body: updateVideoRequest (Partial JSON)

Response:
  - 200: Video
  - 403: Caller is not the owner
  - 404: Video not found
*/
func (handler *Handler) updateVideo(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateVideoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Custom(FieldTitle, input.Title == nil && input.Description == nil && input.Duration == nil, MsgNothingToUpdate)
	if input.Title != nil {
		v.Required(FieldTitle, strings.TrimSpace(*input.Title)).MaxLen(FieldTitle, *input.Title, MaxTitleLength)
	}
	if input.Description != nil {
		v.Required(FieldDescription, strings.TrimSpace(*input.Description)).MaxLen(FieldDescription, *input.Description, MaxDescriptionLength)
	}
	if input.Duration != nil {
		v.Custom(FieldDuration, !validDuration(*input.Duration), MsgInvalidDuration)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video, err := handler.service.Update(request.Context(), videoID, callerID, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		Duration:    input.Duration,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgVideoUpdated, video)
}

/*
DELETE /api/v1/videos/{id}.

Response:
  - 200: Deletion acknowledged
  - 403: Caller is not the owner
  - 404: Video not found
*/
func (handler *Handler) deleteVideo(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	videoID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), videoID, callerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgVideoDeleted, struct{}{})
}

// parseDuration reads a duration in seconds from a form value.
func parseDuration(raw string) (float64, error) {
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if !validDuration(duration) {
		return 0, strconv.ErrRange
	}
	return duration, nil
}

func validDuration(duration float64) bool {
	return duration >= 0 && !math.IsInf(duration, 0) && !math.IsNaN(duration)
}
