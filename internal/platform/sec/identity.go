// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Resolved Caller

// Identity is the public projection of the authenticated user attached to a
// request. It never carries the password hash or the stored refresh token.
type Identity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Fullname  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
}
