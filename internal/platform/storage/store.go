// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage implements the media host contract used for avatars, cover
images, thumbnails and video files.

Two backends satisfy [MediaStore]:

  - S3Store: any S3-compatible object store (AWS, R2, MinIO) via aws-sdk-go-v2.
  - LocalStore: a directory on disk served under /uploads/ for development.

Both return an absolute public URL that is persisted on the owning record.
*/
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/taibuivan/vidora/pkg/slug"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// MediaStore persists an uploaded file and returns its public URL.
type MediaStore interface {
	Save(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}

// ObjectKey builds a collision-free, URL-safe key for a file inside folder.
//
// The original base name is slugged and kept for readability; a UUIDv7 prefix
// keeps keys unique and roughly time ordered.
func ObjectKey(folder, filename string) string {
	extension := strings.ToLower(path.Ext(filename))
	base := slug.From(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if len(base) > 64 {
		base = strings.Trim(base[:64], "-")
	}

	return path.Join(folder, uuid.New()+"-"+base+sanitizeExtension(extension))
}

func sanitizeExtension(extension string) string {
	cleaned := slug.From(strings.TrimPrefix(extension, "."))
	if cleaned == "" || len(cleaned) > 8 {
		return ""
	}
	return "." + cleaned
}
