// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/metrics"
	"github.com/taibuivan/vidora/internal/platform/sec"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and checking session tokens.
//
// [sec.TokenIssuer] satisfies it; tests substitute a clock-controlled issuer.
type TokenProvider interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyRefreshToken(token string) (*sec.TokenClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// login or rotation logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	mediaStore     storage.MediaStore
	logger         *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokens TokenProvider, media storage.MediaStore, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokens,
		mediaStore:     media,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Fullname string
	Avatar   *storage.Upload
	Cover    *storage.Upload
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Checks both unique handles, uploads the avatar (required) and the
cover image (optional) to the media host, and stores the bcrypt digest.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if identity exists), BadRequest (no avatar) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Either handle already taken is reported as one Conflict
	if _, err := service.userRepository.FindByUsername(context, username); err == nil {
		return nil, apperr.Conflict(MsgUserAlreadyExists)
	} else if !apperr.HasStatus(err, http.StatusNotFound) {
		return nil, err
	}
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict(MsgUserAlreadyExists)
	} else if !apperr.HasStatus(err, http.StatusNotFound) {
		return nil, err
	}

	if input.Avatar == nil {
		return nil, apperr.BadRequest(MsgAvatarRequired)
	}

	avatarURL, err := storage.Store(context, service.mediaStore, constants.FolderAvatars, input.Avatar)
	if err != nil {
		return nil, err
	}

	var coverURL string
	if input.Cover != nil {
		coverURL, err = storage.Store(context, service.mediaStore, constants.FolderCovers, input.Cover)
		if err != nil {
			return nil, err
		}
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuid.New(),
		Username:      username,
		Email:         email,
		Fullname:      strings.TrimSpace(input.Fullname),
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
		PasswordHash:  hashedPassword,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	metrics.RecordAuthEvent(metrics.EventRegister)
	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
// Exactly one of Username or Email is expected; Email wins when both are set.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

/*
Login validates user credentials and issues security tokens.

Description: Resolves the account by email or username, compares the password
digest, then mints a fresh pair and stores the refresh token, replacing any
previous one.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Public user projection plus both tokens
  - error: NotFound (unknown account), Unauthorized (bad password) or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	var user *User
	var err error

	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		user, err = service.userRepository.FindByEmail(context, email)
	} else {
		user, err = service.userRepository.FindByUsername(context, strings.ToLower(strings.TrimSpace(input.Username)))
	}
	if err != nil {
		return nil, err
	}

	matches, err := sec.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("auth_service_verify_password_failed: %w", err)
	}
	if !matches {
		metrics.RecordAuthEvent(metrics.EventLoginFailed)
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthEvent(metrics.EventLogin)
	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))

	return session, nil
}

/*
Logout unsets the stored refresh token of the given user.

Description: Any refresh token minted before this call is rejected afterwards
with "refresh token expired or used".

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.SetRefreshToken(context, userID, ""); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	metrics.RecordAuthEvent(metrics.EventLogout)
	return nil
}

// # Session Management

/*
Refresh implements the refresh token rotation mechanism.

Description: Verifies the presented token with the refresh secret, loads its
owner and compares it with the stored value. A match mints a new pair and
overwrites the stored token, so the presented token becomes single-use.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized(MsgMissingRefreshToken)
	}

	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		metrics.RecordAuthEvent(metrics.EventRefreshInvalid)
		return nil, apperr.Unauthorized(MsgInvalidRefreshToken)
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if apperr.HasStatus(err, http.StatusNotFound) {
			metrics.RecordAuthEvent(metrics.EventRefreshInvalid)
			return nil, apperr.Unauthorized(MsgInvalidRefreshToken)
		}
		return nil, err
	}

	// The stored value is the only live refresh token for this user
	if !sec.TokensEqual(refreshToken, user.RefreshToken) {
		metrics.RecordAuthEvent(metrics.EventRefreshReused)
		service.logger.WarnContext(context, "refresh_token_reuse_rejected", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized(MsgRefreshTokenReused)
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	metrics.RecordAuthEvent(metrics.EventRefresh)
	return session, nil
}

// issueSession mints a token pair for user and persists the refresh half.
func (service *Service) issueSession(context context.Context, user *User) (*Session, error) {
	accessToken, err := service.tokenProvider.IssueAccessToken(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_access_token_failed: %w", err))
	}

	refreshToken, err := service.tokenProvider.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_refresh_token_failed: %w", err))
	}

	if err := service.userRepository.SetRefreshToken(context, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_persist_refresh_token_failed: %w", err)
	}
	user.RefreshToken = refreshToken

	return &Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// # Credentials

/*
ChangePassword allows an authenticated user to update their credentials.

Parameters:
  - context: context.Context
  - userID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - error: BadRequest (wrong old password) or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	matches, err := sec.VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("auth_service_verify_password_failed: %w", err)
	}
	if !matches {
		return apperr.BadRequest(MsgInvalidOldPassword)
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	metrics.RecordAuthEvent(metrics.EventPasswordChange)
	return nil
}

// # Identity Resolution

/*
ResolveIdentity loads the public projection attached to authenticated requests.

Returns:
  - *sec.Identity: The caller without hash or refresh token
  - error: NotFound when the account no longer exists
*/
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}
