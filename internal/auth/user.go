// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package auth

import (
	"context"
	"time"
)

// Account represents a registered user, including the password hash.
// Only the login path may see this type; everything else works with
// Identity.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the hash-free projection of an Account, attached to the
// request context for the duration of one authenticated request.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity returns the hash-free projection of the account.
func (a *Account) Identity() Identity {
	return Identity{ID: a.ID, Username: a.Username, Email: a.Email}
}

// AccountRepository manages account persistence. Username and email
// uniqueness is enforced by the storage layer, not by callers.
type AccountRepository interface {
	// Create stores a new account and returns its generated ID.
	// Returns ErrDuplicate when the username or email is taken.
	Create(ctx context.Context, username, email, passwordHash string) (int64, error)

	// GetByUsername retrieves an account, including its password hash,
	// by username (case-insensitive). Returns ErrNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByID retrieves the identity for an account ID without the
	// password hash. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id int64) (*Identity, error)
}
