// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/constants"
)

// LocalStore implements [MediaStore] on the local filesystem.
//
// Files land under root and are served by the API at [constants.UploadRoutePrefix].
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore ensures root exists and returns a store publishing under baseURL.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Root returns the directory files are written to.
func (store *LocalStore) Root() string { return store.root }

// Save writes body to disk and returns its public URL.
func (store *LocalStore) Save(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := ObjectKey(folder, filename)
	destination := filepath.Join(store.root, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", fmt.Errorf("storage: create folder %s: %w", folder, err)
	}

	file, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("storage: create %s: %w", key, err)
	}

	if _, err := io.Copy(file, contextReader{ctx: ctx, reader: body}); err != nil {
		_ = file.Close()
		_ = os.Remove(destination)
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("storage: close %s: %w", key, err)
	}

	return store.baseURL + constants.UploadRoutePrefix + key, nil
}

// contextReader stops a copy once ctx is cancelled.
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.reader.Read(p)
}
