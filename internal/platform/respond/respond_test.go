// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/pkg/pagination"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  []json.RawMessage `json:"errors"`
	Meta    *pagination.Meta  `json:"meta"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestError_Envelope verifies AppErrors keep their status and message.
*/
func TestError_Envelope(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, apperr.Forbidden("not authorized"))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	body := decode(t, recorder)
	assert.False(t, body.Success)
	assert.Equal(t, "not authorized", body.Message)
	assert.NotNil(t, body.Errors)
	assert.Empty(t, body.Errors)
}

/*
TestError_UnknownBecomesInternal hides the cause of unclassified errors.
*/
func TestError_UnknownBecomesInternal(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decode(t, recorder)
	assert.False(t, body.Success)
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.NotContains(t, recorder.Body.String(), "relation")
}

/*
TestError_ValidationDetails carries field errors in the errors array.
*/
func TestError_ValidationDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "email", Message: "This field is required"},
	))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decode(t, recorder)
	assert.Len(t, body.Errors, 1)
}

func TestSuccessEnvelopes(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Created(recorder, map[string]string{"id": "v1"})
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, decode(t, recorder).Success)

	recorder = httptest.NewRecorder()
	respond.Paginated(recorder, []string{"a"}, pagination.NewMeta(2, 10, 25))
	body := decode(t, recorder)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 3, body.Meta.TotalPages)

	recorder = httptest.NewRecorder()
	respond.Message(recorder, "Logged out", nil)
	assert.Equal(t, "Logged out", decode(t, recorder).Message)
}
