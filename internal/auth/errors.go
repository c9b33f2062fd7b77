// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested account does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a username or email is already taken.
var ErrDuplicate = errors.New("username or email already exists")

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Token verification failures, mapped by the HTTP layer onto per-reason
// 401 responses.
var (
	ErrTokenMissing   = errors.New("token is missing")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenSignature = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token has expired")
)
