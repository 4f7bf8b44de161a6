// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/internal/users/auth"
)

type nopFile struct{ *bytes.Reader }

func (nopFile) Close() error { return nil }

func pngUpload(name string) *storage.Upload {
	return &storage.Upload{
		File:        nopFile{bytes.NewReader([]byte("\x89PNG\r\n\x1a\n"))},
		Filename:    name,
		ContentType: "image/png",
	}
}

func newTestService(t *testing.T) (*auth.Service, *memoryUsers, *sec.TokenIssuer) {
	t.Helper()
	users := newMemoryUsers()
	issuer := sec.NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, time.Hour, "vidora.test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, issuer, &memoryMedia{}, logger), users, issuer
}

func registerAlice(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username: "Alice",
		Email:    "Alice@Example.com",
		Password: "wonderland",
		Fullname: "Alice Liddell",
		Avatar:   pngUpload("alice.png"),
	})
	require.NoError(t, err)
	return user
}

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus, appError.Message
}

/*
TestRegister covers normalisation, uniqueness and the avatar requirement.
*/
func TestRegister(t *testing.T) {
	service, _, _ := newTestService(t)
	user := registerAlice(t, service)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "https://media.test/avatars/alice.png", user.AvatarURL)
	assert.Empty(t, user.CoverImageURL)
	assert.NotEqual(t, "wonderland", user.PasswordHash)

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Username: "ALICE", Email: "other@example.com", Password: "secret1", Fullname: "Other",
			Avatar: pngUpload("x.png"),
		})
		status, message := statusOf(t, err)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, auth.MsgUserAlreadyExists, message)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Username: "bob", Email: "alice@example.com", Password: "secret1", Fullname: "Bob",
			Avatar: pngUpload("x.png"),
		})
		status, _ := statusOf(t, err)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("missing_avatar", func(t *testing.T) {
		_, err := service.Register(context.Background(), auth.RegisterInput{
			Username: "carol", Email: "carol@example.com", Password: "secret1", Fullname: "Carol",
		})
		status, message := statusOf(t, err)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, auth.MsgAvatarRequired, message)
	})
}

/*
TestLogin checks both lookup paths and the two rejection classes.
*/
func TestLogin(t *testing.T) {
	service, users, _ := newTestService(t)
	alice := registerAlice(t, service)

	tests := []struct {
		name    string
		input   auth.LoginInput
		status  int
		message string
	}{
		{name: "by_username", input: auth.LoginInput{Username: "ALICE", Password: "wonderland"}},
		{name: "by_email", input: auth.LoginInput{Email: "alice@example.com", Password: "wonderland"}},
		{name: "unknown", input: auth.LoginInput{Username: "nobody", Password: "wonderland"}, status: http.StatusNotFound, message: "User not found"},
		{name: "wrong_password", input: auth.LoginInput{Username: "alice", Password: "looking-glass"}, status: http.StatusUnauthorized, message: auth.MsgInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := service.Login(context.Background(), tt.input)
			if tt.status != 0 {
				status, message := statusOf(t, err)
				assert.Equal(t, tt.status, status)
				assert.Equal(t, tt.message, message)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, alice.ID, session.User.ID)
			assert.NotEmpty(t, session.AccessToken)
			assert.Equal(t, session.RefreshToken, users.storedRefreshToken(alice.ID))
		})
	}
}

/*
TestRefresh_RotationIsSingleUse presents the same refresh token twice.
*/
func TestRefresh_RotationIsSingleUse(t *testing.T) {
	service, users, issuer := newTestService(t)
	alice := registerAlice(t, service)

	first, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)

	second, err := service.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, second.RefreshToken, users.storedRefreshToken(alice.ID))

	claims, err := issuer.VerifyAccessToken(second.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)

	_, err = service.Refresh(context.Background(), first.RefreshToken)
	status, message := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.MsgRefreshTokenReused, message)

	_, err = service.Refresh(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

/*
TestRefresh_Rejections covers the verification and lookup failures.
*/
func TestRefresh_Rejections(t *testing.T) {
	service, _, issuer := newTestService(t)
	alice := registerAlice(t, service)

	expired, err := issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).IssueRefreshToken(alice.ID)
	require.NoError(t, err)
	accessToken, err := issuer.IssueAccessToken(alice.ID)
	require.NoError(t, err)
	ghost, err := issuer.IssueRefreshToken("0190c6a4-0000-7000-8000-0000000000ff")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{name: "missing", token: "", message: auth.MsgMissingRefreshToken},
		{name: "garbage", token: "not-a-jwt", message: auth.MsgInvalidRefreshToken},
		{name: "expired", token: expired, message: auth.MsgInvalidRefreshToken},
		{name: "access_token", token: accessToken, message: auth.MsgInvalidRefreshToken},
		{name: "unknown_user", token: ghost, message: auth.MsgInvalidRefreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Refresh(context.Background(), tt.token)
			status, message := statusOf(t, err)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

/*
TestLogout_InvalidatesRefreshToken ensures a pre-logout token is rejected.
*/
func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	service, users, _ := newTestService(t)
	alice := registerAlice(t, service)

	session, err := service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), alice.ID))
	assert.Empty(t, users.storedRefreshToken(alice.ID))

	_, err = service.Refresh(context.Background(), session.RefreshToken)
	_, message := statusOf(t, err)
	assert.Equal(t, auth.MsgRefreshTokenReused, message)
}

/*
TestChangePassword verifies the old password before replacing the digest.
*/
func TestChangePassword(t *testing.T) {
	service, _, _ := newTestService(t)
	alice := registerAlice(t, service)

	err := service.ChangePassword(context.Background(), alice.ID, "wrong", "new-secret")
	status, message := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, auth.MsgInvalidOldPassword, message)

	require.NoError(t, service.ChangePassword(context.Background(), alice.ID, "wonderland", "new-secret"))

	_, err = service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "wonderland"})
	status, _ = statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)

	_, err = service.Login(context.Background(), auth.LoginInput{Username: "alice", Password: "new-secret"})
	assert.NoError(t, err)
}

/*
TestResolveIdentity returns the public projection only.
*/
func TestResolveIdentity(t *testing.T) {
	service, _, _ := newTestService(t)
	alice := registerAlice(t, service)

	identity, err := service.ResolveIdentity(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, alice.AvatarURL, identity.AvatarURL)

	_, err = service.ResolveIdentity(context.Background(), "0190c6a4-0000-7000-8000-0000000000ff")
	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusNotFound, status)
}
