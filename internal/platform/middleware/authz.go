// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/constants"
	"github.com/taibuivan/vidora/internal/platform/ctxutil"
	"github.com/taibuivan/vidora/internal/platform/respond"
	"github.com/taibuivan/vidora/internal/platform/sec"
)

// Rejection reasons recorded by [Authenticate] and enforced by [RequireAuth].
var (
	ErrMissingCredentials = apperr.Unauthorized("missing credentials")
	ErrInvalidToken       = apperr.Unauthorized("invalid or expired token")
	ErrIdentityNotFound   = apperr.Unauthorized("identity not found")
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenIssuer],
// allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (*sec.TokenClaims, error)
}

// IdentityResolver loads the public projection of a user by ID.
// Implementations return an [apperr.AppError] with status 404 when the user is absent.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID string) (*sec.Identity, error)
}

// Authenticate resolves the caller from the request credentials.
//
// # Flow
//  1. Extract the token from the 'accessToken' cookie, falling back to 'Authorization: Bearer'.
//  2. Verify signature and expiry via [TokenVerifier].
//  3. Resolve the identity via [IdentityResolver].
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// Authenticate never blocks a request. When a step fails it records the
// rejection reason in the context and proceeds anonymously, so public routes
// keep working with stale cookies. [RequireAuth] turns the recorded reason
// into a 401 on protected routes.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			// ── 1. Token Extraction ───────────────────────────────────────────
			tokenString := ExtractAccessToken(request)
			if tokenString == "" {
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthFailure(ctx, ErrMissingCredentials)))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthFailure(ctx, ErrInvalidToken)))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(ctx, claims.UserID)
			if err != nil {
				reason := error(ErrIdentityNotFound)
				if !apperr.HasStatus(err, http.StatusNotFound) {
					reason = err
				}
				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthFailure(ctx, reason)))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx = ctxutil.WithIdentity(ctx, identity)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", identity.ID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Identity] exists in context.
//  2. If missing, abort with the reason recorded by [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetIdentity(request.Context()) != nil {
			next.ServeHTTP(writer, request)
			return
		}

		reason := ctxutil.GetAuthFailure(request.Context())
		if reason == nil {
			reason = ErrMissingCredentials
		}
		respond.Error(writer, request, reason)
	})
}

// ExtractAccessToken returns the candidate access token, cookie first.
func ExtractAccessToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := request.Header.Get(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.AuthorizationScheme) {
		return ""
	}
	return strings.TrimSpace(token)
}
