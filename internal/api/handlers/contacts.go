package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/domain"
	"github.com/dvloznov/financehub/internal/infra/firestore"
)

// ContactsHandler serves the saved-payees list.
type ContactsHandler struct {
	contacts firestore.ContactRepository
	log      zerolog.Logger
}

func NewContactsHandler(contacts firestore.ContactRepository, log zerolog.Logger) *ContactsHandler {
	return &ContactsHandler{contacts: contacts, log: log}
}

// List handles GET /api/contacts (authenticated).
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	contacts, err := h.contacts.List(r.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Listing contacts failed")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to list contacts")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// Add handles POST /api/contacts (authenticated).
func (h *ContactsHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var contact domain.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if contact.Name == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Contact name is required")
		return
	}

	id, err := h.contacts.Add(r.Context(), claims.UserID, contact)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Saving contact failed")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to save contact")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{"contactId": id})
}
