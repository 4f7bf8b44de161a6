// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// CorePlaylistTable represents the 'core.playlist' table
type CorePlaylistTable struct {
	Table       string
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CorePlaylist is the schema definition for core.playlist
var CorePlaylist = CorePlaylistTable{
	Table:       constants.SchemaCore + ".playlist",
	ID:          "id",
	OwnerID:     "ownerid",
	Name:        "name",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// CorePlaylistVideoTable represents the 'core.playlistvideo' join table
type CorePlaylistVideoTable struct {
	Table      string
	PlaylistID string
	VideoID    string
	AddedAt    string
}

// CorePlaylistVideo is the schema definition for core.playlistvideo
var CorePlaylistVideo = CorePlaylistVideoTable{
	Table:      constants.SchemaCore + ".playlistvideo",
	PlaylistID: "playlistid",
	VideoID:    "videoid",
	AddedAt:    "addedat",
}
