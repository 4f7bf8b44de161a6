// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package video_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/core/video"
	"github.com/taibuivan/vidora/internal/platform/testkit"
	"github.com/taibuivan/vidora/pkg/pagination"
)

func newTestRouter(t *testing.T) (http.Handler, *video.Service) {
	t.Helper()
	service, _, _ := newTestService(t)
	router := chi.NewRouter()
	router.Use(testkit.AsCaller)
	router.Route("/videos", video.NewHandler(service).RegisterRoutes)
	return router, service
}

func uploadRequest(t *testing.T, callerID string, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/videos/upload", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	if callerID != "" {
		request.Header.Set(testkit.HeaderTestUser, callerID)
	}
	return request
}

// mp4 starts with an ftyp box so sniffing yields video/mp4.
var mp4 = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom")

func TestHandler_UploadAndEdit(t *testing.T) {
	router, _ := newTestRouter(t)

	fields := map[string]string{"title": "Harbour", "description": "Boats", "duration": "12.5"}
	files := map[string][]byte{"videoFile": mp4, "thumbnail": testkit.PNG}

	recorder, envelope := testkit.Serve(t, router, uploadRequest(t, alice.ID, fields, files))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created video.Video
	testkit.DecodeData(t, envelope, &created)
	assert.Equal(t, "Harbour", created.Title)
	assert.Equal(t, 12.5, created.Duration)
	assert.Equal(t, alice.ID, created.Owner.ID)

	path := "/videos/" + created.ID

	recorder, envelope = testkit.Do(t, router, http.MethodPatch, path, bob.ID, map[string]any{"title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "not authorized", envelope.Message)

	recorder, envelope = testkit.Do(t, router, http.MethodPatch, path, alice.ID, map[string]any{"duration": 13})
	require.Equal(t, http.StatusOK, recorder.Code)
	var updated video.Video
	testkit.DecodeData(t, envelope, &updated)
	assert.Equal(t, 13.0, updated.Duration)
	assert.Equal(t, "Harbour", updated.Title)

	recorder, _ = testkit.Do(t, router, http.MethodGet, path, bob.ID, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = testkit.Do(t, router, http.MethodDelete, path, alice.ID, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = testkit.Do(t, router, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_UploadRejections(t *testing.T) {
	router, _ := newTestRouter(t)
	valid := map[string]string{"title": "T", "description": "D", "duration": "1"}

	tests := []struct {
		name     string
		callerID string
		fields   map[string]string
		files    map[string][]byte
		want     int
	}{
		{"anonymous", "", valid, map[string][]byte{"videoFile": mp4, "thumbnail": testkit.PNG}, http.StatusUnauthorized},
		{"missing_title", alice.ID, map[string]string{"description": "D", "duration": "1"}, map[string][]byte{"videoFile": mp4, "thumbnail": testkit.PNG}, http.StatusBadRequest},
		{"bad_duration", alice.ID, map[string]string{"title": "T", "description": "D", "duration": "-3"}, map[string][]byte{"videoFile": mp4, "thumbnail": testkit.PNG}, http.StatusBadRequest},
		{"missing_video", alice.ID, valid, map[string][]byte{"thumbnail": testkit.PNG}, http.StatusBadRequest},
		{"missing_thumbnail", alice.ID, valid, map[string][]byte{"videoFile": mp4}, http.StatusBadRequest},
		{"thumbnail_not_image", alice.ID, valid, map[string][]byte{"videoFile": mp4, "thumbnail": mp4}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, envelope := testkit.Serve(t, router, uploadRequest(t, tt.callerID, tt.fields, tt.files))
			assert.Equal(t, tt.want, recorder.Code, recorder.Body.String())
			assert.False(t, envelope.Success)
		})
	}
}

func TestHandler_ListPagination(t *testing.T) {
	router, service := newTestRouter(t)
	for _, title := range []string{"one", "two", "three"} {
		upload(t, service, alice, title)
	}
	upload(t, service, bob, "four")

	recorder, envelope := testkit.Do(t, router, http.MethodGet, "/videos?limit=2&page=2&owner="+alice.ID, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var meta pagination.Meta
	require.NoError(t, json.Unmarshal(envelope.Meta, &meta))
	assert.Equal(t, pagination.Meta{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, meta)

	var videos []video.Video
	testkit.DecodeData(t, envelope, &videos)
	require.Len(t, videos, 1)
	assert.Equal(t, "one", videos[0].Title)

	recorder, _ = testkit.Do(t, router, http.MethodGet, "/videos?owner=not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
