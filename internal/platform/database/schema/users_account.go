// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/vidora/internal/platform/constants"

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Username      string
	Email         string
	Fullname      string
	Password      string
	AvatarURL     string
	CoverImageURL string
	RefreshToken  string
	CreatedAt     string
	UpdatedAt     string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         constants.SchemaUsers + ".account",
	ID:            "id",
	Username:      "username",
	Email:         "email",
	Fullname:      "fullname",
	Password:      "passwordhash",
	AvatarURL:     "avatarurl",
	CoverImageURL: "coverimageurl",
	RefreshToken:  "refreshtoken",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

