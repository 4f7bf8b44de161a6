// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

// Handler exposes the dashboard over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a dashboard [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the dashboard endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/stats/{channelId}", handler.getStats)
	router.Get("/videos/{channelId}", handler.listChannelVideos)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/liked-videos", handler.listLikedVideos)
	})
}

/*
GET /api/v1/dashboard/stats/{channelId}.

Response:
  - 200: Stats
  - 400: Invalid channel ID
  - 404: Channel not found
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ParseID(requestutil.Param(request, ParamChannelID), FieldChannelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

func (handler *Handler) listChannelVideos(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ParseID(requestutil.Param(request, ParamChannelID), FieldChannelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	videos, total, err := handler.service.ChannelVideos(request.Context(), channelID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}

// GET /api/v1/dashboard/liked-videos: the caller's liked videos, paginated.
func (handler *Handler) listLikedVideos(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	videos, total, err := handler.service.LikedVideos(request.Context(), userID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, videos, pagination.NewMeta(params.Page, params.Limit, total))
}
