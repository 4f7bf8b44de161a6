// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// Handler exposes comments over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the comment endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listComments)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/", handler.createComment)
		r.Put("/{id}", handler.updateComment)
		r.Delete("/{id}", handler.deleteComment)
		r.Post("/{id}/like", handler.toggleLike)
	})
}

// parseTarget canonicalises whichever target IDs are present.
func parseTarget(videoID, tweetID string) (Target, error) {
	var target Target
	var err error
	if videoID = strings.TrimSpace(videoID); videoID != "" {
		if target.VideoID, err = requestutil.ParseID(videoID, FieldVideo); err != nil {
			return Target{}, err
		}
	}
	if tweetID = strings.TrimSpace(tweetID); tweetID != "" {
		if target.TweetID, err = requestutil.ParseID(tweetID, FieldTweet); err != nil {
			return Target{}, err
		}
	}
	return target, nil
}

/*
GET /api/v1/comments?video={id} or ?tweet={id}.

Response:
  - 200: []Comment newest first, with pagination meta
  - 400: Zero or two targets, or a malformed ID
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	target, err := parseTarget(query.Get(FieldVideo), query.Get(FieldTweet))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), target, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

type createCommentRequest struct {
	Content string `json:"content"`
	Video   string `json:"video"`
	Tweet   string `json:"tweet"`
}

/*
POST /api/v1/comments.

Request:
  - body: createCommentRequest

Response:
  - 201: Comment
  - 400: Validation failure
  - 404: Target not found
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateContent(input.Content); err != nil {
		respond.Error(writer, request, err)
		return
	}

	target, err := parseTarget(input.Video, input.Tweet)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), ownerID, target, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Success: true, Message: MsgCommentAdded, Data: comment})
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

/*
PUT /api/v1/comments/{id}.

Response:
  - 200: Comment
  - 403: Caller is not the author
  - 404: Comment not found
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateContent(input.Content); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), commentID, callerID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgCommentUpdated, comment)
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 200: Deletion acknowledged
  - 403: Caller is not the author
  - 404: Comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), commentID, callerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgCommentDeleted, struct{}{})
}

/*
POST /api/v1/comments/{id}/like.

Response:
  - 200: LikeState
  - 404: Comment not found
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.service.ToggleLike(request.Context(), commentID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, state)
}

func validateContent(content string) error {
	v := &validate.Validator{}
	v.Required(FieldContent, strings.TrimSpace(content)).MaxLen(FieldContent, content, MaxContentLength)
	return v.Err()
}
