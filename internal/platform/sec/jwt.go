// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and the session middleware.
//
// # Token Model
//
// Access and refresh tokens are HS256 JWTs signed with two independent secrets.
// Access tokens are verified by signature and expiry alone. Refresh tokens are
// additionally compared against the value persisted on the user record by the
// auth service.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails signature, shape or expiry checks.
var ErrInvalidToken = errors.New("sec: invalid token")

// TokenClaims represents the payload embedded inside both token kinds.
//
// The subject carries the user ID; ID (jti) is unique per token so two tokens
// minted for the same user in the same second never collide.
type TokenClaims struct {
	jwt.RegisteredClaims

	// UserID duplicates the subject under a short application claim.
	UserID string `json:"uid"`
}

// TokenIssuer signs and verifies access and refresh tokens.
//
// # Concurrency
//
// TokenIssuer is immutable after construction and safe for concurrent use.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// NewTokenIssuer creates a new [TokenIssuer].
//
// # Parameters
//   - accessSecret, refreshSecret: Independent HMAC keys.
//   - accessTTL, refreshTTL: Lifetimes applied at issue time.
//   - issuer: The 'iss' claim.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		issuer:        issuer,
		now:           time.Now,
	}
}

// WithClock returns a copy of the issuer that reads time from now.
func (issuer *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	clone := *issuer
	clone.now = now
	return &clone
}

// AccessTTL returns the lifetime of freshly issued access tokens.
func (issuer *TokenIssuer) AccessTTL() time.Duration { return issuer.accessTTL }

// RefreshTTL returns the lifetime of freshly issued refresh tokens.
func (issuer *TokenIssuer) RefreshTTL() time.Duration { return issuer.refreshTTL }

// # Issuing

// IssueAccessToken creates a short-lived access token for userID.
func (issuer *TokenIssuer) IssueAccessToken(userID string) (string, error) {
	return issuer.sign(userID, issuer.accessSecret, issuer.accessTTL)
}

// IssueRefreshToken creates a long-lived refresh token for userID.
func (issuer *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	return issuer.sign(userID, issuer.refreshSecret, issuer.refreshTTL)
}

func (issuer *TokenIssuer) sign(userID string, secret []byte, timeToLive time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("sec: cannot sign token without a subject")
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("sec: failed to generate token id: %w", err)
	}

	currentTime := issuer.now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   userID,
			Issuer:    issuer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// # Verification

// VerifyAccessToken checks a token against the access secret.
func (issuer *TokenIssuer) VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return issuer.Verify(tokenString, issuer.accessSecret)
}

// VerifyRefreshToken checks a token against the refresh secret.
func (issuer *TokenIssuer) VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return issuer.Verify(tokenString, issuer.refreshSecret)
}

/*
Verify checks the signature, shape and expiry of a token against secret.

Parameters:
  - tokenString: string
  - secret: []byte (HMAC key the token must be signed with)

Returns:
  - *TokenClaims: Decoded claims on success
  - error: wraps [ErrInvalidToken] on any failure
*/
func (issuer *TokenIssuer) Verify(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(issuer.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}

	return claims, nil
}
