// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

//go:build integration

package postgres_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tripdeck/tripdeck/internal/auth"
	"github.com/tripdeck/tripdeck/internal/auth/postgres"
	"github.com/tripdeck/tripdeck/internal/store"
)

// setupPostgresContainer starts a PostgreSQL container, runs the schema
// migrations and opens a pool against it.
func setupPostgresContainer() (*pgxpool.Pool, func(), error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("tripdeck_test"),
		tcpostgres.WithUsername("tripdeck"),
		tcpostgres.WithPassword("tripdeck"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, err
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		return nil, nil, err
	}
	if err := migrator.Up(); err != nil {
		return nil, nil, err
	}
	if err := migrator.Close(); err != nil {
		return nil, nil, err
	}

	pool, err := store.Connect(ctx, connStr)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		_ = container.Terminate(ctx)
	}

	return pool, cleanup, nil
}

var _ = Describe("AccountRepository", func() {
	var pool *pgxpool.Pool
	var repo *postgres.AccountRepository
	var cleanup func()

	BeforeEach(func() {
		var err error
		pool, cleanup, err = setupPostgresContainer()
		Expect(err).NotTo(HaveOccurred())
		repo = postgres.NewAccountRepository(pool)
	})

	AfterEach(func() {
		cleanup()
	})

	Describe("Create", func() {
		It("stores an account and returns its ID", func() {
			ctx := context.Background()

			id, err := repo.Create(ctx, "alice", "alice@example.com", "$argon2id$hash")
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeNumerically(">", 0))
		})

		It("rejects a duplicate username regardless of case", func() {
			ctx := context.Background()

			_, err := repo.Create(ctx, "alice", "alice@example.com", "$argon2id$hash")
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(ctx, "ALICE", "other@example.com", "$argon2id$hash")
			Expect(err).To(MatchError(auth.ErrDuplicate))
		})

		It("rejects a duplicate email regardless of case", func() {
			ctx := context.Background()

			_, err := repo.Create(ctx, "alice", "alice@example.com", "$argon2id$hash")
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Create(ctx, "bob", "Alice@Example.com", "$argon2id$hash")
			Expect(err).To(MatchError(auth.ErrDuplicate))
		})
	})

	Describe("GetByUsername", func() {
		It("finds an account case-insensitively with its hash", func() {
			ctx := context.Background()

			id, err := repo.Create(ctx, "alice", "alice@example.com", "$argon2id$hash")
			Expect(err).NotTo(HaveOccurred())

			account, err := repo.GetByUsername(ctx, "AlIcE")
			Expect(err).NotTo(HaveOccurred())
			Expect(account.ID).To(Equal(id))
			Expect(account.Username).To(Equal("alice"))
			Expect(account.Email).To(Equal("alice@example.com"))
			Expect(account.PasswordHash).To(Equal("$argon2id$hash"))
			Expect(account.CreatedAt).To(BeTemporally("~", time.Now(), time.Minute))
		})

		It("returns ErrNotFound for an unknown username", func() {
			ctx := context.Background()

			_, err := repo.GetByUsername(ctx, "nobody")
			Expect(err).To(MatchError(auth.ErrNotFound))
		})
	})

	Describe("GetByID", func() {
		It("returns the identity without the hash", func() {
			ctx := context.Background()

			id, err := repo.Create(ctx, "alice", "alice@example.com", "$argon2id$hash")
			Expect(err).NotTo(HaveOccurred())

			identity, err := repo.GetByID(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(*identity).To(Equal(auth.Identity{
				ID:       id,
				Username: "alice",
				Email:    "alice@example.com",
			}))
		})

		It("returns ErrNotFound for an unknown ID", func() {
			ctx := context.Background()

			_, err := repo.GetByID(ctx, 424242)
			Expect(err).To(MatchError(auth.ErrNotFound))
		})
	})
})
