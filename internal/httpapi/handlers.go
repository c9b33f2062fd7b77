// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tripdeck/tripdeck/internal/auth"
	"github.com/tripdeck/tripdeck/internal/observability"
)

// User-facing messages. The web client matches on these strings.
const (
	msgMissingFields      = "Missing fields!"
	msgWeakPassword       = "Password does not meet complexity requirements."
	msgDuplicateAccount   = "Username or Email already exists!"
	msgRegistered         = "User registered successfully!"
	msgInvalidCredentials = "Invalid username or password!"
	msgLoginSuccessful    = "Login successful!"
	msgInvalidBody        = "Invalid request body!"
	msgInternalError      = "Something went wrong!"
)

// API holds the handlers for the /api surface.
type API struct {
	service *auth.Service
	metrics *observability.Metrics
}

// NewAPI creates the API. metrics may be nil (e.g. in tests); recording
// is then a no-op.
func NewAPI(service *auth.Service, metrics *observability.Metrics) *API {
	return &API{service: service, metrics: metrics}
}

// Routes returns the full /api handler with instrumentation and panic
// recovery applied.
func (a *API) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/register", a.instrument("/api/register", http.HandlerFunc(a.handleRegister)))
	mux.Handle("POST /api/login", a.instrument("/api/login", http.HandlerFunc(a.handleLogin)))
	mux.Handle("GET /api/dashboard", a.instrument("/api/dashboard", a.RequireAccount(http.HandlerFunc(a.handleDashboard))))
	mux.Handle("GET /api/check-auth", a.instrument("/api/check-auth", a.RequireAccount(http.HandlerFunc(a.handleCheckAuth))))

	return recoverPanics(mux)
}

// handleRegister creates a new account. Field presence and password
// complexity are checked here; uniqueness is the storage layer's call.
func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		writeMessage(w, http.StatusBadRequest, msgWeakPassword)
		return
	}

	if _, err := a.service.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, auth.ErrDuplicate) {
			writeMessage(w, http.StatusConflict, msgDuplicateAccount)
			return
		}
		// Storage details stay in the log; the client gets a fixed body.
		slog.ErrorContext(r.Context(), "registration failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeMessage(w, http.StatusCreated, msgRegistered)
}

// handleLogin verifies credentials and returns a bearer token. Unknown
// usernames and wrong passwords produce byte-identical responses.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	token, identity, err := a.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		slog.ErrorContext(r.Context(), "login failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message: msgLoginSuccessful,
		Token:   token,
		User:    identity,
	})
}

// handleDashboard returns the authenticated identity with a greeting.
func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		// Only reachable if the route was wired without RequireAccount.
		writeMessage(w, http.StatusUnauthorized, msgTokenMissing)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Message:  fmt.Sprintf("Welcome to your dashboard, %s!", identity.Username),
		UserInfo: identity,
	})
}

// handleCheckAuth confirms the token is still valid for the client's
// session bootstrap.
func (a *API) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, msgTokenMissing)
		return
	}

	writeJSON(w, http.StatusOK, checkAuthResponse{
		IsAuthenticated: true,
		User:            identity,
	})
}
