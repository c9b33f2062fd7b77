// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TripDeck Contributors

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tripdeck/tripdeck/internal/auth"
)

// Response/request bodies mirror the contract the web client depends on.

type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    auth.Identity `json:"user"`
}

type dashboardResponse struct {
	Message  string        `json:"message"`
	UserInfo auth.Identity `json:"user_info"`
}

type checkAuthResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	User            auth.Identity `json:"user"`
}

// writeJSON serializes v with the given status. Encoding failures are
// logged; by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response body", "error", err)
	}
}

// writeMessage writes a {"message": ...} body with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}
