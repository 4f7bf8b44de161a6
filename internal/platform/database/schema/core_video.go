// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// CoreVideoTable represents the 'core.video' table
type CoreVideoTable struct {
	Table        string
	ID           string
	OwnerID      string
	Title        string
	Description  string
	Duration     string
	VideoURL     string
	ThumbnailURL string
	Views        string
	CreatedAt    string
	UpdatedAt    string
}

// CoreVideo is the schema definition for core.video
var CoreVideo = CoreVideoTable{
	Table:        constants.SchemaCore + ".video",
	ID:           "id",
	OwnerID:      "ownerid",
	Title:        "title",
	Description:  "description",
	Duration:     "duration",
	VideoURL:     "videourl",
	ThumbnailURL: "thumbnailurl",
	Views:        "views",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
