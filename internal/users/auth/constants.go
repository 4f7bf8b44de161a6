// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Credential Constraints

const (
	// MinUsernameLength and MaxUsernameLength bound the channel handle.
	MinUsernameLength = 3
	MaxUsernameLength = 30

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 6

	// MaxPasswordLength caps input at bcrypt's 72-byte limit.
	MaxPasswordLength = 72

	// MaxFullnameLength bounds the display name.
	MaxFullnameLength = 100

	// MaxRegisterBodySize covers an avatar plus a cover image and the text fields.
	MaxRegisterBodySize = 11 << 20

	// MaxProfileImageBodySize covers a single profile image.
	MaxProfileImageBodySize = 6 << 20
)

// # Client Messages

const (
	MsgInvalidCredentials   = "invalid credentials"
	MsgInvalidRefreshToken  = "invalid refresh token"
	MsgRefreshTokenReused   = "refresh token expired or used"
	MsgMissingRefreshToken  = "refresh token is required"
	MsgUserAlreadyExists    = "User with email or username already exists"
	MsgAvatarRequired       = "avatar file is required"
	MsgInvalidOldPassword   = "Invalid old password"
	MsgLoggedIn             = "User logged in successfully"
	MsgLoggedOut            = "User logged out"
	MsgTokenRefreshed       = "Access token refreshed"
	MsgPasswordChanged      = "Password changed successfully"
	MsgRegisteredSuccessful = "User registered successfully"
)
