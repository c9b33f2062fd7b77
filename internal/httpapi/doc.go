// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

// Package httpapi exposes the authentication backend as a JSON API
// under /api. Protected routes are wrapped by RequireAccount, which
// verifies the bearer token, resolves the account, and attaches the
// identity to the request context.
package httpapi
