// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

// Package auth provides authentication primitives for TripDeck.
//
// # Domain Types
//
// Account is the persistent user record; Identity is the hash-free
// projection of an Account that is safe to hand to transport layers.
//
// # Services
//
// Service coordinates registration, login, and identity resolution on
// top of an AccountRepository, a PasswordHasher, and a TokenService.
// Tokens are stateless HMAC-signed JWTs; validity is entirely a
// function of signature and expiry at verification time.
package auth
