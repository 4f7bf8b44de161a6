// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vidora/internal/platform/request"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/storage"
	"github.com/taibuivan/vidora/internal/platform/validate"
)

// # Definitions & Constructors

// CookieConfig controls the attributes of the two credential cookies.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (registration, login,
// logout, token refresh and password change).
type Handler struct {
	authService *Service
	cookies     CookieConfig
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{authService: service, cookies: cookies}
}

// RegisterRoutes mounts the authentication endpoints on router.
//
// # Endpoints
//   - POST /register        : Creates a new account (multipart).
//   - POST /login           : Authenticates and sets both cookies.
//   - POST /refresh-token   : Rotates the token pair.
//   - POST /logout          : Unsets the stored refresh token.
//   - POST /change-password : Replaces the password.
func (handler *Handler) RegisterRoutes(router chi.Router) {

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh-token", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/change-password", handler.changePassword)
	})
}

// # Request Payloads

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/users/register

Request:
  - Body: multipart (fullname, email, username, password, avatar, coverImage?)

Response:
  - 201: User: Public projection of the created account
  - 400: Validation failure or missing avatar
  - 409: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	if err := storage.ParseMultipart(writer, request, MaxRegisterBodySize); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := RegisterInput{
		Username: strings.ToLower(strings.TrimSpace(request.FormValue(FieldUsername))),
		Email:    strings.ToLower(strings.TrimSpace(request.FormValue(FieldEmail))),
		Password: request.FormValue(FieldPassword),
		Fullname: request.FormValue(FieldFullname),
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullname, input.Fullname).
		MaxLen(FieldFullname, input.Fullname, MaxFullnameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Username(FieldUsername, input.Username).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldPassword, input.Password, MaxPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	avatar, err := storage.OptionalFile(request, FieldAvatar, storage.KindImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer avatar.Close()

	cover, err := storage.OptionalFile(request, FieldCoverImage, storage.KindImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer cover.Close()

	input.Avatar = avatar
	input.Cover = cover

	user, err := handler.authService.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusCreated, respond.SuccessEnvelope{
		Success: true,
		Message: MsgRegisteredSuccessful,
		Data:    user,
	})
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/users/login

Request:
  - Body: loginRequest (Username or Email, Password)

Response:
  - 200: Session: User projection and both tokens, also set as cookies
  - 401: Invalid credentials
  - 404: Unknown account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Username == "" && input.Email == "" {
		validator.Custom(FieldLogin, true, "username or email is required")
	}
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setCredentialCookies(writer, session)
	respond.Message(writer, MsgLoggedIn, session)
}

/*
Logout terminates the current user session.

POST /api/v1/users/logout

Response:
  - 200: Session terminated, both cookies cleared
  - 401: Not authenticated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearCredentialCookies(writer)
	respond.Message(writer, MsgLoggedOut, struct{}{})
}

/*
Refresh issues a new token pair using a valid refresh token.

POST /api/v1/users/refresh-token

Description: Reads the refresh token from the cookie, falling back to the JSON
body, and rotates both cookies on success.

Response:
  - 200: tokenPair: New credentials
  - 400: Malformed JSON body
  - 401: Missing, invalid or already used refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	token := ""
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		token = cookie.Value
	}

	// Non-browser clients send the token in the body
	if token == "" && request.ContentLength != 0 {
		var body refreshRequest
		if err := requestutil.DecodeJSON(request, &body); err != nil {
			respond.Error(writer, request, err)
			return
		}
		token = body.RefreshToken
	}

	session, err := handler.authService.Refresh(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setCredentialCookies(writer, session)
	respond.Message(writer, MsgTokenRefreshed, tokenPair{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	})
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/users/change-password

Request:
  - Body: changePasswordRequest (OldPassword, NewPassword)

Response:
  - 200: Password changed
  - 400: Wrong old password or weak new password
  - 401: Not authenticated
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength).
		MaxLen(FieldNewPassword, input.NewPassword, MaxPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MsgPasswordChanged, struct{}{})
}

// # Cookies

func (handler *Handler) setCredentialCookies(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, handler.credentialCookie(constants.AccessTokenCookieName, session.AccessToken, handler.cookies.AccessTTL))
	http.SetCookie(writer, handler.credentialCookie(constants.RefreshTokenCookieName, session.RefreshToken, handler.cookies.RefreshTTL))
}

func (handler *Handler) clearCredentialCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		cookie := handler.credentialCookie(name, "", 0)
		cookie.MaxAge = -1
		http.SetCookie(writer, cookie)
	}
}

func (handler *Handler) credentialCookie(name, value string, timeToLive time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.CredentialCookiePath,
		Secure:   handler.cookies.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if timeToLive > 0 {
		cookie.MaxAge = int(timeToLive / time.Second)
	}
	return cookie
}
