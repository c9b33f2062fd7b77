// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package httpapi

import (
	"context"

	"github.com/tripdeck/tripdeck/internal/auth"
)

// identityContextKey is the private key type for the authenticated
// identity. A struct key cannot collide with other packages' values.
type identityContextKey struct{}

// withIdentity attaches the authenticated identity to the context.
func withIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the identity attached by RequireAccount.
// The boolean is false for requests that did not pass through the guard.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(auth.Identity)
	return identity, ok
}
