package handler

import (
	"net/http"

	"bookshelf/internal/auth"
	"bookshelf/internal/middleware"
	"bookshelf/internal/model"
	"bookshelf/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
	carrier *auth.SessionCarrier
}

func NewAuthHandler(service *service.AuthService, carrier *auth.SessionCarrier) *AuthHandler {
	return &AuthHandler{service: service, carrier: carrier}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := bind(r, &payload, signupMessages); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.service.Signup(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, model.UserResponse{Message: "User created successfully", User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := bind(r, &payload, loginMessages); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.carrier.Attach(w, r, result.Token, result.ExpiresAt)
	middleware.WriteJSON(w, http.StatusOK, model.UserResponse{Message: "Login successful", User: result.User})
}

// Logout only clears the cookie. A copy of the token taken earlier stays
// usable until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.carrier.Clear(w, r)
	middleware.WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Logout successful"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, model.ErrUnauthorized)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, model.UserResponse{User: user})
}
