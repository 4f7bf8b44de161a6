// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
login, logout and refresh-token rotation.

# Architecture

Each user carries at most one stored refresh token. Login and refresh overwrite
it, logout unsets it. There is no separate session table, so a user has a single
active session across devices.
*/
package auth

import (
	"time"

	"github.com/taibuivan/vidora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Vidora platform.
//
// PasswordHash and RefreshToken never leave the server: both are excluded from
// JSON, so marshalling a User always yields the public projection.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Fullname      string    `json:"fullname"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage"`
	PasswordHash  string    `json:"-"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Identity returns the projection attached to authenticated requests.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Fullname:  user.Fullname,
		AvatarURL: user.AvatarURL,
	}
}

// Summary returns the compact owner card embedded in videos, comments and tweets.
func (user *User) Summary() Summary {
	return Summary{
		ID:        user.ID,
		Username:  user.Username,
		Fullname:  user.Fullname,
		AvatarURL: user.AvatarURL,
	}
}

// Summary is the owner card shown next to every owned resource.
type Summary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Fullname  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
}

// Session is the outcome of a successful login or refresh.
type Session struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullname     = "fullname"
	FieldAvatar       = "avatar"
	FieldCoverImage   = "coverImage"
	FieldLogin        = "login"
	FieldOldPassword  = "oldPassword"
	FieldNewPassword  = "newPassword"
	FieldRefreshToken = "refreshToken"
)
