// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tripdeck/tripdeck/internal/auth"
)

// Rejection messages for the guarded routes. The client matches on
// these strings, so they are part of the contract.
const (
	msgTokenMissing = "Token is missing!"
	msgTokenExpired = "Token has expired!"
	msgTokenInvalid = "Token is invalid!"
	msgUserNotFound = "User not found!"
)

// RequireAccount guards a handler with bearer-token authentication.
// Checks run in a fixed order and the first failure wins: missing
// token, expired token, malformed or badly signed token, then unknown
// user. On success the resolved identity is attached to the request
// context for IdentityFromContext.
func (a *API) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			a.metrics.RecordAuthFailure("missing_token")
			writeMessage(w, http.StatusUnauthorized, msgTokenMissing)
			return
		}

		userID, err := a.service.VerifyToken(token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				a.metrics.RecordAuthFailure("expired_token")
				writeMessage(w, http.StatusUnauthorized, msgTokenExpired)
			default:
				a.metrics.RecordAuthFailure("invalid_token")
				writeMessage(w, http.StatusUnauthorized, msgTokenInvalid)
			}
			return
		}

		identity, err := a.service.Identify(r.Context(), userID)
		if err != nil {
			if errors.Is(err, auth.ErrNotFound) {
				a.metrics.RecordAuthFailure("unknown_user")
				writeMessage(w, http.StatusUnauthorized, msgUserNotFound)
				return
			}
			slog.ErrorContext(r.Context(), "identity resolution failed", "error", err)
			writeMessage(w, http.StatusInternalServerError, msgInternalError)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// instrument logs each request with a ULID request ID and records the
// route/status metric.
func (a *API) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Make().String()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		a.metrics.RecordRequest(route, rec.status)
		slog.InfoContext(r.Context(), "request handled",
			"request_id", requestID,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// recoverPanics converts handler panics into generic 500 responses so a
// single request cannot take the process down.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				slog.ErrorContext(r.Context(), "handler panicked", "panic", v)
				writeMessage(w, http.StatusInternalServerError, msgInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
