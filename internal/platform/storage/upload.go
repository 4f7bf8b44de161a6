// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/metrics"
)

// # Upload Kinds

// Kind restricts which media a multipart field may carry.
type Kind struct {
	// MediaPrefix is the required MIME family (e.g. "image/").
	MediaPrefix string
	// MaxSize is the upper bound in bytes.
	MaxSize int64
	// Label names the kind in error messages.
	Label string
}

var (
	// KindImage accepts avatars, covers and thumbnails.
	KindImage = Kind{MediaPrefix: "image/", MaxSize: constants.MaxImageSize, Label: "an image"}
	// KindVideo accepts video files.
	KindVideo = Kind{MediaPrefix: "video/", MaxSize: constants.MaxVideoSize, Label: "a video"}
)

// ErrMissingFile is returned by [FormFile] when the field is absent.
var ErrMissingFile = errors.New("storage: missing file")

// Upload is a validated multipart file ready to be handed to a [MediaStore].
type Upload struct {
	File        multipart.File
	Filename    string
	ContentType string
	Size        int64
}

// Close releases the underlying multipart file.
func (upload *Upload) Close() error {
	if upload == nil || upload.File == nil {
		return nil
	}
	return upload.File.Close()
}

// # Request Parsing

// ParseMultipart bounds the body to maxBytes and parses the multipart form.
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBytes int64) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBytes)

	if err := request.ParseMultipartForm(constants.MultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.BadRequest(fmt.Sprintf("Request body exceeds %d MiB", maxBytes>>20))
		}
		return apperr.BadRequest("Invalid multipart form")
	}
	return nil
}

/*
FormFile extracts and validates one file field from a parsed multipart form.

Parameters:
  - request: *http.Request (ParseMultipart must have run)
  - field: string
  - kind: Kind

Returns:
  - *Upload: The validated file; the caller must Close it
  - error: [ErrMissingFile] when absent, apperr.BadRequest when invalid
*/
func FormFile(request *http.Request, field string, kind Kind) (*Upload, error) {
	file, header, err := request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrMissingFile
		}
		return nil, apperr.BadRequest("Invalid " + field + " file")
	}

	if header.Size > kind.MaxSize {
		_ = file.Close()
		return nil, apperr.BadRequest(fmt.Sprintf("%s exceeds %d MiB", field, kind.MaxSize>>20))
	}

	contentType, err := detectContentType(file, header.Header.Get(constants.HeaderContentType))
	if err != nil {
		_ = file.Close()
		return nil, apperr.Internal(err)
	}

	if !strings.HasPrefix(contentType, kind.MediaPrefix) {
		_ = file.Close()
		return nil, apperr.BadRequest(fmt.Sprintf("%s must be %s file", field, kind.Label))
	}

	return &Upload{
		File:        file,
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}, nil
}

// RequiredFile is [FormFile] that turns an absent field into a BadRequest.
func RequiredFile(request *http.Request, field string, kind Kind) (*Upload, error) {
	upload, err := FormFile(request, field, kind)
	if errors.Is(err, ErrMissingFile) {
		return nil, apperr.BadRequest(field + " file is required")
	}
	return upload, err
}

// OptionalFile is [FormFile] that returns (nil, nil) for an absent field.
func OptionalFile(request *http.Request, field string, kind Kind) (*Upload, error) {
	upload, err := FormFile(request, field, kind)
	if errors.Is(err, ErrMissingFile) {
		return nil, nil
	}
	return upload, err
}

// Store saves upload into folder and records the upload metric.
func Store(ctx context.Context, store MediaStore, folder string, upload *Upload) (string, error) {
	url, err := store.Save(ctx, folder, upload.Filename, upload.ContentType, upload.File)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("storage: save %s: %w", folder, err))
	}
	metrics.RecordUpload(folder)
	return url, nil
}

// detectContentType trusts a specific part header and otherwise sniffs the first 512 bytes.
func detectContentType(file multipart.File, declared string) (string, error) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}

	buffer := make([]byte, 512)
	read, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("storage: sniff content type: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("storage: rewind upload: %w", err)
	}

	return http.DetectContentType(buffer[:read]), nil
}
