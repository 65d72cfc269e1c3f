// Package api wires handlers and middleware into the HTTP router.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/handlers"
	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/auth"
)

// Handlers bundles everything the router mounts. Suggest may be nil
// when no Gemini credentials are configured; the endpoint is then not
// registered.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Identity *handlers.IdentityHandler
	Payments *handlers.PaymentsHandler
	Contacts *handlers.ContactsHandler
	Jobs     *handlers.JobsHandler
	Suggest  *handlers.SuggestHandler
}

// NewRouter assembles the full route table. The middleware chain is
// RequestID -> Logger -> Recovery -> CORS for every route; bearer auth
// is applied per-route on the authenticated subset.
func NewRouter(h Handlers, tokens *auth.TokenIssuer, log zerolog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	authd := middleware.Auth(tokens)

	// Public: pre-login flow.
	r.HandleFunc("/api/auth/register", h.Auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/identity/resolve", h.Identity.Resolve).Methods(http.MethodPost)
	r.HandleFunc("/api/payments/phone-link", h.Payments.PhoneLink).Methods(http.MethodPost)
	r.HandleFunc("/api/payments/providers", h.Payments.Providers).Methods(http.MethodGet)

	// Authenticated: everything that touches a user's own documents.
	r.Handle("/api/auth/profile", authd(http.HandlerFunc(h.Auth.CompleteProfile))).Methods(http.MethodPost)
	r.Handle("/api/payments/compose", authd(http.HandlerFunc(h.Payments.Compose))).Methods(http.MethodPost)
	r.Handle("/api/transactions", authd(http.HandlerFunc(h.Payments.Record))).Methods(http.MethodPost)
	r.Handle("/api/contacts", authd(http.HandlerFunc(h.Contacts.List))).Methods(http.MethodGet)
	r.Handle("/api/contacts", authd(http.HandlerFunc(h.Contacts.Add))).Methods(http.MethodPost)
	r.Handle("/api/exports", authd(http.HandlerFunc(h.Jobs.CreateExport))).Methods(http.MethodPost)
	r.HandleFunc("/api/jobs/{id}", h.Jobs.GetJob).Methods(http.MethodGet)

	if h.Suggest != nil {
		r.HandleFunc("/api/categories/suggest", h.Suggest.Suggest).Methods(http.MethodPost)
	}

	var handler http.Handler = r
	handler = middleware.CORS(handler)
	handler = middleware.Recovery(log)(handler)
	handler = middleware.Logger(log)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
