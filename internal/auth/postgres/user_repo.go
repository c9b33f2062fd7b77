// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

// Package postgres implements auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/tripdeck/tripdeck/internal/auth"
)

// querier is the subset of pgxpool.Pool used by the repository. It is
// satisfied by *pgxpool.Pool and by pgxmock pools in tests.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository implements auth.AccountRepository using PostgreSQL.
// Uniqueness of username and email is enforced by unique indexes; there
// is no check-then-insert window.
type AccountRepository struct {
	pool querier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool querier) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create stores a new account and returns the generated ID.
func (r *AccountRepository) Create(ctx context.Context, username, email, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, username, email, passwordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, oops.Code("ACCOUNT_DUPLICATE").
				With("username", username).
				Wrap(auth.ErrDuplicate)
		}
		return 0, oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("username", username).
			Wrap(err)
	}
	return id, nil
}

// GetByUsername retrieves an account by username (case-insensitive),
// including the password hash. Only the login path should call this.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*auth.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)

	account := &auth.Account{}
	err := row.Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_USERNAME_FAILED").
			With("operation", "get account by username").
			With("username", username).
			Wrap(err)
	}
	return account, nil
}

// GetByID retrieves the identity for an account ID. The password hash
// is deliberately not selected.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*auth.Identity, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email
		FROM users
		WHERE id = $1
	`, id)

	identity := &auth.Identity{}
	err := row.Scan(&identity.ID, &identity.Username, &identity.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").
			With("id", id).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id).
			Wrap(err)
	}
	return identity, nil
}

// Compile-time interface check.
var _ auth.AccountRepository = (*AccountRepository)(nil)
