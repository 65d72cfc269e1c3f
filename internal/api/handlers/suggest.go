package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/suggest"
)

// CategorySuggester is what the handler needs from the suggest package.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, note string) (*suggest.Suggestion, error)
}

// SuggestHandler proposes a category for a typed note.
type SuggestHandler struct {
	suggester CategorySuggester
	log       zerolog.Logger
}

func NewSuggestHandler(suggester CategorySuggester, log zerolog.Logger) *SuggestHandler {
	return &SuggestHandler{suggester: suggester, log: log}
}

type suggestRequest struct {
	Note string `json:"note"`
}

// Suggest handles POST /api/categories/suggest
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Note == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Note is required")
		return
	}

	suggestion, err := h.suggester.SuggestCategory(r.Context(), req.Note)
	if err != nil {
		h.log.Warn().Err(err).Msg("Category suggestion failed")
		middleware.WriteError(w, http.StatusBadGateway, "Suggestion unavailable")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, suggestion)
}
