package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/identity"
)

// IdentityHandler serves email-to-userid resolution for the smart auth
// screen: the client sends an email and branches on the exists flag.
type IdentityHandler struct {
	resolver *identity.Resolver
	log      zerolog.Logger
}

func NewIdentityHandler(resolver *identity.Resolver, log zerolog.Logger) *IdentityHandler {
	return &IdentityHandler{resolver: resolver, log: log}
}

type resolveRequest struct {
	Email string `json:"email"`
}

type resolveResponse struct {
	UserID string `json:"userId"`
	Exists bool   `json:"exists"`
}

// Resolve handles POST /api/identity/resolve
func (h *IdentityHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Shape validation happens here, before resolution; the resolver
	// itself accepts any string.
	if !identity.IsValidEmail(req.Email) {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	userID := h.resolver.Resolve(req.Email)
	exists, err := h.resolver.IsExistingUser(r.Context(), userID, "")
	if err != nil {
		h.log.Error().Err(err).Msg("User existence lookup failed")
		middleware.WriteError(w, http.StatusBadGateway, "User lookup failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resolveResponse{UserID: userID, Exists: exists})
}
