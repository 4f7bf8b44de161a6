// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package testkit holds helpers shared by the package-level test suites.

It is imported from _test.go files only.
*/
package testkit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/platform/storage"
)

// # Fixtures

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopFile struct{ *bytes.Reader }

func (nopFile) Close() error { return nil }

// PNG is a minimal PNG signature, enough for content sniffing.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// Upload wraps body as an already validated multipart upload.
func Upload(filename, contentType string, body []byte) *storage.Upload {
	return &storage.Upload{
		File:        nopFile{bytes.NewReader(body)},
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(body)),
	}
}

// MemoryMedia is a [storage.MediaStore] that records the keys it was asked to store.
type MemoryMedia struct {
	mu    sync.Mutex
	Saved []string
}

// Save implements storage.MediaStore.
func (media *MemoryMedia) Save(_ context.Context, folder, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	media.mu.Lock()
	defer media.mu.Unlock()
	media.Saved = append(media.Saved, folder+"/"+filename)
	return "https://media.test/" + folder + "/" + filename, nil
}

// # Assertions

// StatusOf unwraps err as an AppError and returns its status and message.
func StatusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus, appError.Message
}

// # HTTP

// AsCaller attaches a resolved identity for the user ID found in the
// X-Test-User header, mimicking the session middleware.
func AsCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if userID := request.Header.Get(HeaderTestUser); userID != "" {
			identity := &sec.Identity{ID: userID, Username: "user-" + userID[:8]}
			request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
		}
		next.ServeHTTP(writer, request)
	})
}

// HeaderTestUser carries the caller ID consumed by [AsCaller].
const HeaderTestUser = "X-Test-User"

// Envelope mirrors the response envelope.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

// Do sends a JSON request through handler as callerID (anonymous when empty).
func Do(t *testing.T, handler http.Handler, method, path, callerID string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = strings.NewReader(raw)
		} else {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(encoded)
		}
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if callerID != "" {
		request.Header.Set(HeaderTestUser, callerID)
	}

	return Serve(t, handler, request)
}

// Serve runs request through handler and decodes the envelope.
func Serve(t *testing.T, handler http.Handler, request *http.Request) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var envelope Envelope
	if recorder.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope), recorder.Body.String())
	}
	return recorder, envelope
}

// DecodeData unmarshals the envelope data into target.
func DecodeData(t *testing.T, envelope Envelope, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(envelope.Data, target))
}
