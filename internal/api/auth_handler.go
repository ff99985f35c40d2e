// Package api contains the HTTP handlers and routing for the workflow
// services.
package api

import (
	"net/http"

	"github.com/micropay/micropay-api/internal/api/shared"
	"github.com/micropay/micropay-api/internal/service"
)

// AuthHandler handles the registration, login and logout endpoints.
type AuthHandler struct {
	accounts service.AccountService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.accounts.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		UserID:             result.User.ID,
		Email:              result.User.Email,
		SubscriptionStatus: string(result.SubscriptionStatus),
	})
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken:        result.Tokens.AccessToken,
		RefreshToken:       result.Tokens.RefreshToken,
		ExpiresIn:          result.Tokens.ExpiresIn,
		TokenType:          result.Tokens.TokenType,
		SubscriptionStatus: string(result.SubscriptionStatus),
	})
}

// Logout handles the /auth/logout endpoint.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.accounts.Logout(r.Context(), req.Email); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
