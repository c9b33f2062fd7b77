// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service provides authentication operations.
type Service struct {
	accounts AccountRepository
	hasher   PasswordHasher
	tokens   *TokenService
}

// NewService creates a new Service.
func NewService(accounts AccountRepository, hasher PasswordHasher, tokens *TokenService) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// dummyPasswordHash is used when a user doesn't exist to prevent timing
// attacks: password verification still runs so response time stays flat.
// This is NOT a real credential and will never match any password.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Register hashes the password and stores a new account. The password
// is assumed to have already passed ValidatePassword; the raw value is
// never persisted or logged.
func (s *Service) Register(ctx context.Context, username, email, password string) (int64, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	id, err := s.accounts.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return 0, oops.Code("AUTH_DUPLICATE_ACCOUNT").
				With("username", username).
				Wrap(err)
		}
		return 0, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create account").
			Wrap(err)
	}

	return id, nil
}

// Login verifies the credentials and issues a bearer token. Unknown
// usernames and wrong passwords both fail with ErrInvalidCredentials;
// a dummy hash is verified for unknown usernames so the two cases are
// not distinguishable by timing either.
func (s *Service) Login(ctx context.Context, username, password string) (string, Identity, error) {
	account, lookupErr := s.accounts.GetByUsername(ctx, username)

	targetHash := dummyPasswordHash
	exists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return "", Identity{}, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get account by username").
				Wrap(lookupErr)
		}
	} else {
		targetHash = account.PasswordHash
		exists = true
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil && exists {
		// A stored hash we cannot parse is treated as a mismatch so the
		// response shape never reveals which case occurred.
		valid = false
	}

	if !exists || !valid {
		return "", Identity{}, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", Identity{}, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	return token, account.Identity(), nil
}

// VerifyToken checks a bearer token and returns the embedded user ID.
func (s *Service) VerifyToken(tokenString string) (int64, error) {
	return s.tokens.Verify(tokenString)
}

// Identify resolves a verified user ID to its identity. Returns an
// error wrapping ErrNotFound when the account no longer exists.
func (s *Service) Identify(ctx context.Context, userID int64) (Identity, error) {
	identity, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, oops.Code("AUTH_ACCOUNT_NOT_FOUND").
				With("user_id", userID).
				Wrap(err)
		}
		return Identity{}, oops.Code("AUTH_IDENTIFY_FAILED").
			With("operation", "get account by id").
			With("user_id", userID).
			Wrap(err)
	}
	return *identity, nil
}
