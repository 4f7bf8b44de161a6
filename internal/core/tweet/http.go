// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tweet

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/validate"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// Handler exposes tweets over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a tweet [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the tweet endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listTweets)
	router.Get("/user/{userId}", handler.listUserTweets)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", handler.createTweet)
		r.Put("/{id}", handler.updateTweet)
		r.Delete("/{id}", handler.deleteTweet)
	})
}

type tweetRequest struct {
	Content string `json:"content"`
}

func (input tweetRequest) validate() error {
	v := &validate.Validator{}
	v.Required(FieldContent, strings.TrimSpace(input.Content)).MaxLen(FieldContent, strings.TrimSpace(input.Content), MaxContentLength)
	return v.Err()
}

// GET /api/v1/tweets: every tweet, newest first.
func (handler *Handler) listTweets(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, "")
}

// GET /api/v1/tweets/user/{userId}: one author's tweets, newest first.
func (handler *Handler) listUserTweets(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.list(writer, request, userID)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, ownerID string) {
	paginationParams := pagination.FromRequest(request)

	tweets, total, err := handler.service.List(request.Context(), ownerID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, tweets, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/tweets.

Response:
  - 201: Tweet
  - 400: Blank or oversized content
*/
func (handler *Handler) createTweet(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tweetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweet, err := handler.service.Create(request.Context(), ownerID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Success: true, Message: MsgTweetCreated, Data: tweet})
}

/*
PUT /api/v1/tweets/{id}.

Response:
  - 200: Tweet
  - 403: Caller is not the author
  - 404: Tweet not found
*/
func (handler *Handler) updateTweet(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input tweetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweet, err := handler.service.Update(request.Context(), tweetID, callerID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgTweetUpdated, tweet)
}

// DELETE /api/v1/tweets/{id}: owner only.
func (handler *Handler) deleteTweet(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tweetID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), tweetID, callerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgTweetDeleted, struct{}{})
}
