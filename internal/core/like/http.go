// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
)

// Handler exposes likes over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a like [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the like endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/likes", handler.listLikes)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/like", handler.like)
		r.Post("/unlike", handler.unlike)
	})
}

// canonical validates every present identifier of target.
func canonical(target Target) (Target, error) {
	fields := []struct {
		value *string
		name  string
	}{
		{&target.VideoID, FieldVideoID},
		{&target.CommentID, FieldCommentID},
		{&target.TweetID, FieldTweetID},
	}

	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = ""
			continue
		}
		parsed, err := requestutil.ParseID(*field.value, field.name)
		if err != nil {
			return Target{}, err
		}
		*field.value = parsed
	}
	return target, nil
}

func decodeTarget(request *http.Request) (Target, error) {
	var target Target
	if err := requestutil.DecodeJSON(request, &target); err != nil {
		return Target{}, err
	}
	return canonical(target)
}

/*
POST /api/v1/likes/like.

Request:
  - body: {videoId | commentId | tweetId}

Response:
  - 201: Like
  - 400: Zero or several targets
  - 404: Target not found
  - 409: Already liked
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	target, err := decodeTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	like, err := handler.service.Like(request.Context(), userID, target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Success: true, Message: MsgLiked, Data: like})
}

/*
POST /api/v1/likes/unlike.

Response:
  - 200: Unlike acknowledged
  - 404: Like not found
*/
func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	target, err := decodeTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unlike(request.Context(), userID, target); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgUnliked, struct{}{})
}

// GET /api/v1/likes/likes?videoId= | commentId= | tweetId=.
func (handler *Handler) listLikes(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	target, err := canonical(Target{
		VideoID:   query.Get(FieldVideoID),
		CommentID: query.Get(FieldCommentID),
		TweetID:   query.Get(FieldTweetID),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.service.Likers(request.Context(), target)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, likes)
}
