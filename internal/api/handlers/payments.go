package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/domain"
	"github.com/dvloznov/financehub/internal/infra/firestore"
	"github.com/dvloznov/financehub/internal/upi"
)

// PaymentsHandler builds payment deep links and records the matching
// transaction documents.
type PaymentsHandler struct {
	txns firestore.TransactionRepository
	log  zerolog.Logger

	// One in-flight compose per user: the app disables its Pay button
	// while a write is pending, the API enforces the same rule.
	mu       sync.Mutex
	inFlight map[string]bool
}

func NewPaymentsHandler(txns firestore.TransactionRepository, log zerolog.Logger) *PaymentsHandler {
	return &PaymentsHandler{txns: txns, log: log, inFlight: make(map[string]bool)}
}

type phoneLinkRequest struct {
	Phone string `json:"phone"`
}

// PhoneLink handles POST /api/payments/phone-link
func (h *PaymentsHandler) PhoneLink(w http.ResponseWriter, r *http.Request) {
	var req phoneLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	uri, err := upi.BuildFromPhone(req.Phone)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"upiUri": uri})
}

// Providers handles GET /api/payments/providers
func (h *PaymentsHandler) Providers(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, upi.Providers())
}

type composeRequest struct {
	MerchantURI string  `json:"merchantUri"`
	Provider    string  `json:"provider"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	SubCategory string  `json:"subCategory"`
	Note        string  `json:"note"`
}

type composeResponse struct {
	FinalURI      string `json:"finalUri"`
	TransactionID string `json:"transactionId"`
}

// Compose handles POST /api/payments/compose (authenticated). It
// validates the transaction, records it, and returns the
// provider-specific deep link for the OS dispatcher to open. Validation
// failures are reported before any store access.
func (h *PaymentsHandler) Compose(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn := domain.Transaction{
		Amount:      req.Amount,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Notes:       req.Note,
		Status:      domain.StatusDone,
		Timestamp:   time.Now(),
	}
	if err := domain.ValidateTransaction(txn); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	finalURI, err := upi.ComposeProviderURI(req.MerchantURI, upi.Provider(req.Provider), req.Amount, req.Note)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.acquire(claims.UserID) {
		middleware.WriteError(w, http.StatusConflict, "A payment is already in progress")
		return
	}
	defer h.release(claims.UserID)

	transactionID, err := h.txns.Add(r.Context(), claims.UserID, txn)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Transaction write failed")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to record transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, composeResponse{
		FinalURI:      finalURI,
		TransactionID: transactionID,
	})
}

type recordRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	SubCategory string  `json:"subCategory"`
	Notes       string  `json:"notes"`
}

// Record handles POST /api/transactions (authenticated). It writes a
// spend record without composing a deep link, for payments made outside
// the app.
func (h *PaymentsHandler) Record(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		middleware.WriteError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	txn := domain.Transaction{
		Amount:      req.Amount,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Notes:       req.Notes,
		Status:      domain.StatusDone,
		Timestamp:   time.Now(),
	}
	if err := domain.ValidateTransaction(txn); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactionID, err := h.txns.Add(r.Context(), claims.UserID, txn)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Transaction write failed")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to record transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]string{"transactionId": transactionID})
}

func (h *PaymentsHandler) acquire(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFlight[userID] {
		return false
	}
	h.inFlight[userID] = true
	return true
}

func (h *PaymentsHandler) release(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inFlight, userID)
}
