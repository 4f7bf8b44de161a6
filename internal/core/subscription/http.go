// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
)

// Handler exposes subscriptions over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a subscription [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the subscription endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{channelId}/count", handler.count)
	router.Get("/{channelId}/subscribers", handler.subscribers)
	router.Get("/user/{userId}/channels", handler.channels)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Post("/{channelId}", handler.subscribe)
		r.Delete("/{channelId}", handler.unsubscribe)
	})
}

/*
POST /api/v1/subscriptions/{channelId}.

Response:
  - 201: Subscription
  - 400: Self subscription or malformed ID
  - 404: Channel not found
  - 409: Already subscribed
*/
func (handler *Handler) subscribe(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID, err := requestutil.ID(request, FieldChannelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.service.Subscribe(request.Context(), subscriberID, channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{Success: true, Message: MsgSubscribed, Data: subscription})
}

// DELETE /api/v1/subscriptions/{channelId}: 404 when not subscribed.
func (handler *Handler) unsubscribe(writer http.ResponseWriter, request *http.Request) {
	subscriberID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channelID, err := requestutil.ID(request, FieldChannelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unsubscribe(request.Context(), subscriberID, channelID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgUnsubscribed, struct{}{})
}

func (handler *Handler) count(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ID(request, FieldChannelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.Count(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, count)
}

func (handler *Handler) subscribers(writer http.ResponseWriter, request *http.Request) {
	channelID, err := requestutil.ID(request, FieldChannelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	members, err := handler.service.Subscribers(request.Context(), channelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, members)
}

func (handler *Handler) channels(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	members, err := handler.service.Channels(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, members)
}
