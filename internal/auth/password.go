// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package auth

import (
	"strings"

	"github.com/samber/oops"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// passwordSpecials is the accepted special-character set. The web client
// enforces the same set; keep the two in sync.
const passwordSpecials = "!@#$%^&*()-_=+[{]}\\|;:'\",<.>/?`~"

// ValidatePassword checks a candidate password against the complexity
// policy: at least MinPasswordLength characters, with at least one
// uppercase letter, one lowercase letter, one digit, and one character
// from passwordSpecials.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}

	var upper, lower, digit, special bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, c):
			special = true
		}
	}

	if !upper || !lower || !digit || !special {
		return oops.Code("AUTH_WEAK_PASSWORD").
			With("upper", upper).
			With("lower", lower).
			With("digit", digit).
			With("special", special).
			Errorf("password must contain an uppercase letter, a lowercase letter, a digit, and a special character")
	}

	return nil
}
