package handler

import (
	"encoding/json"
	"net/http"

	"chirpnet/internal/httputil"
	"chirpnet/internal/model"
	"chirpnet/internal/service"
	"chirpnet/internal/transport/http/middleware"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

// Signup handles POST /auth/signup
// Creates an account and returns it with a session token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	resp, err := h.userService.Signup(r.Context(), req)
	if err != nil {
		respondError(w, "Signup handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// Authenticates by email and returns the account with a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidation(w, "Invalid request body")
		return
	}

	resp, err := h.userService.Login(r.Context(), req)
	if err != nil {
		respondError(w, "Login handler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Status handles GET /auth/status
// Reports whether the caller holds a valid session.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := middleware.IdentityFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{
		"authenticated": id.Authenticated,
	})
}
