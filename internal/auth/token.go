// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = 24 * time.Hour

// tokenClaims is the claim set carried by TripDeck access tokens.
type tokenClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HMAC-signed bearer tokens.
// Rotating the secret invalidates all outstanding tokens.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// A validity of zero or less falls back to DefaultTokenValidity.
func NewTokenService(secret []byte, validity time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_EMPTY_SECRET").Errorf("token secret cannot be empty")
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenService{secret: secret, validity: validity}, nil
}

// Issue creates a signed token carrying the user ID, expiring after the
// configured validity duration.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// issueExpiringAt signs a token with an explicit expiry. Used by tests
// to produce already-expired tokens without sleeping.
func (s *TokenService) issueExpiringAt(userID int64, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token string and returns
// the embedded user ID. The signature is checked before any claim is
// trusted. Failures wrap one of ErrTokenMissing, ErrTokenExpired,
// ErrTokenSignature, or ErrTokenMalformed.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, oops.Code("AUTH_TOKEN_MISSING").Wrap(ErrTokenMissing)
	}

	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, oops.Code("AUTH_TOKEN_EXPIRED").Wrap(ErrTokenExpired)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrTokenSignature)
		default:
			// Undecodable tokens and anything else the parser rejects.
			return 0, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrTokenMalformed)
		}
	}

	if !token.Valid {
		return 0, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrTokenMalformed)
	}

	return claims.UserID, nil
}
