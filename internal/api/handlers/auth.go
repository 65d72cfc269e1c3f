package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/auth"
)

// AuthHandler serves registration, login and profile completion.
type AuthHandler struct {
	svc *auth.Service
	log zerolog.Logger
}

func NewAuthHandler(svc *auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.svc.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrPasswordTooShort):
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrAlreadyRegistered):
			middleware.WriteError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error().Err(err).Msg("Registration failed")
			middleware.WriteError(w, http.StatusBadGateway, "Registration failed")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, session)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmail):
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			middleware.WriteError(w, http.StatusUnauthorized, err.Error())
		default:
			h.log.Error().Err(err).Msg("Login failed")
			middleware.WriteError(w, http.StatusBadGateway, "Login failed")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusOK, session)
}

type completeProfileRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phoneNumber"`
}

// CompleteProfile handles POST /api/auth/profile (authenticated).
func (h *AuthHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req completeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.CompleteProfile(r.Context(), claims.UserID, req.Name, req.Age, req.Gender, req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidName), errors.Is(err, auth.ErrInvalidAge), errors.Is(err, auth.ErrInvalidPhone):
			middleware.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Profile completion failed")
			middleware.WriteError(w, http.StatusBadGateway, "Profile update failed")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"verified": true})
}
