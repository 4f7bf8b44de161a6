// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vidora/internal/platform/metrics"
)

/*
TestMiddleware_RoutePattern labels requests with the chi pattern, not the raw path.
*/
func TestMiddleware_RoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(metrics.Middleware)
	router.Get("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/videos/{id}", "418"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/videos/abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/videos/def", nil))

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/videos/{id}", "418"))
	assert.Equal(t, before+2, after)
}

func TestRecordAuthEvent(t *testing.T) {
	before := testutil.ToFloat64(metrics.AuthEvents.WithLabelValues(metrics.EventLogin))
	metrics.RecordAuthEvent(metrics.EventLogin)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuthEvents.WithLabelValues(metrics.EventLogin)))
}
