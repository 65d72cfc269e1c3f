package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/financehub/internal/api/middleware"
	"github.com/dvloznov/financehub/internal/auth"
	"github.com/dvloznov/financehub/internal/domain"
	"github.com/dvloznov/financehub/internal/identity"
	"github.com/dvloznov/financehub/internal/suggest"
)

var testLog = zerolog.Nop()

type mockUserRepo struct {
	existing map[string]bool
	err      error
}

func (m *mockUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.existing[userID], nil
}

func (m *mockUserRepo) SetProfile(ctx context.Context, userID string, p domain.UserProfile) error {
	return m.err
}

func (m *mockUserRepo) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return nil, errors.New("not implemented")
}

type mockTxnRepo struct {
	err    error
	lastID string
	writes []domain.Transaction
}

func (m *mockTxnRepo) Add(ctx context.Context, userID string, txn domain.Transaction) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.writes = append(m.writes, txn)
	m.lastID = "txn-1"
	return m.lastID, nil
}

func (m *mockTxnRepo) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return m.writes, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestIdentityResolve(t *testing.T) {
	const knownID = "973dfe463ec85785f5f95af5ba3906ee" // test@example.com

	tests := []struct {
		name       string
		email      string
		repo       *mockUserRepo
		wantStatus int
		wantExists bool
	}{
		{
			name:       "existing user",
			email:      "Test@Example.com",
			repo:       &mockUserRepo{existing: map[string]bool{knownID: true}},
			wantStatus: http.StatusOK,
			wantExists: true,
		},
		{
			name:       "new user",
			email:      "new@example.com",
			repo:       &mockUserRepo{},
			wantStatus: http.StatusOK,
			wantExists: false,
		},
		{
			name:       "invalid email shape",
			email:      "not-an-email",
			repo:       &mockUserRepo{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure surfaces as bad gateway",
			email:      "test@example.com",
			repo:       &mockUserRepo{err: errors.New("unavailable")},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := identity.NewResolver(identity.NewSingleSlot(), tt.repo)
			h := NewIdentityHandler(resolver, testLog)

			rec := postJSON(t, h.Resolve, "/api/identity/resolve", map[string]string{"email": tt.email}, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp resolveResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Exists != tt.wantExists {
				t.Errorf("exists = %v, want %v", resp.Exists, tt.wantExists)
			}
			if len(resp.UserID) != identity.UserIDLength {
				t.Errorf("userId = %q, want %d chars", resp.UserID, identity.UserIDLength)
			}
		})
	}
}

func TestPhoneLink(t *testing.T) {
	h := NewPaymentsHandler(&mockTxnRepo{}, testLog)

	rec := postJSON(t, h.PhoneLink, "/api/payments/phone-link", map[string]string{"phone": "9876543210"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "upi://pay?pa=9876543210@upi") {
		t.Errorf("body = %s", rec.Body)
	}

	rec = postJSON(t, h.PhoneLink, "/api/payments/phone-link", map[string]string{"phone": "1234567890"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status for invalid phone = %d, want 400", rec.Code)
	}
}

func authedHandler(t *testing.T, issuer *auth.TokenIssuer, next http.HandlerFunc) (http.HandlerFunc, map[string]string) {
	t.Helper()
	token, err := issuer.Issue("user123", "a@11.com")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	wrapped := middleware.Auth(issuer)(next)
	return wrapped.ServeHTTP, map[string]string{"Authorization": "Bearer " + token}
}

func TestCompose(t *testing.T) {
	issuer, _ := auth.NewTokenIssuer([]byte("test-secret"))

	validReq := composeRequest{
		MerchantURI: "upi://pay?pa=abc@upi",
		Provider:    "google",
		Amount:      100,
		Category:    "Food",
		Note:        "lunch",
	}

	t.Run("success records and returns deep link", func(t *testing.T) {
		repo := &mockTxnRepo{}
		h := NewPaymentsHandler(repo, testLog)
		wrapped, headers := authedHandler(t, issuer, h.Compose)

		rec := postJSON(t, wrapped, "/api/payments/compose", validReq, headers)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}

		var resp composeResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if !strings.HasPrefix(resp.FinalURI, "tez://upi/pay") {
			t.Errorf("finalUri = %q", resp.FinalURI)
		}
		if resp.TransactionID != "txn-1" {
			t.Errorf("transactionId = %q", resp.TransactionID)
		}
		if len(repo.writes) != 1 || repo.writes[0].Status != domain.StatusDone {
			t.Errorf("recorded writes = %+v", repo.writes)
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		repo := &mockTxnRepo{}
		h := NewPaymentsHandler(repo, testLog)
		wrapped, headers := authedHandler(t, issuer, h.Compose)

		req := validReq
		req.Provider = "unknown-provider"
		rec := postJSON(t, wrapped, "/api/payments/compose", req, headers)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if len(repo.writes) != 0 {
			t.Error("transaction recorded despite validation failure")
		}
	})

	t.Run("invalid transaction rejected before store", func(t *testing.T) {
		repo := &mockTxnRepo{err: errors.New("must not be reached")}
		h := NewPaymentsHandler(repo, testLog)
		wrapped, headers := authedHandler(t, issuer, h.Compose)

		req := validReq
		req.Amount = -1
		rec := postJSON(t, wrapped, "/api/payments/compose", req, headers)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		h := NewPaymentsHandler(&mockTxnRepo{err: errors.New("unavailable")}, testLog)
		wrapped, headers := authedHandler(t, issuer, h.Compose)

		rec := postJSON(t, wrapped, "/api/payments/compose", validReq, headers)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		h := NewPaymentsHandler(&mockTxnRepo{}, testLog)
		wrapped := middleware.Auth(issuer)(http.HandlerFunc(h.Compose))

		rec := postJSON(t, wrapped.ServeHTTP, "/api/payments/compose", validReq, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestRecord(t *testing.T) {
	issuer, _ := auth.NewTokenIssuer([]byte("test-secret"))

	t.Run("success", func(t *testing.T) {
		repo := &mockTxnRepo{}
		h := NewPaymentsHandler(repo, testLog)
		wrapped, headers := authedHandler(t, issuer, h.Record)

		body := recordRequest{Amount: 250, Category: "Groceries", Notes: "weekly shop"}
		rec := postJSON(t, wrapped, "/api/transactions", body, headers)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		if !strings.Contains(rec.Body.String(), `"transactionId":"txn-1"`) {
			t.Errorf("body = %s", rec.Body)
		}
		if len(repo.writes) != 1 || repo.writes[0].Status != domain.StatusDone {
			t.Errorf("recorded writes = %+v", repo.writes)
		}
	})

	t.Run("unrecognized category", func(t *testing.T) {
		repo := &mockTxnRepo{err: errors.New("must not be reached")}
		h := NewPaymentsHandler(repo, testLog)
		wrapped, headers := authedHandler(t, issuer, h.Record)

		body := recordRequest{Amount: 10, Category: "Rent"}
		rec := postJSON(t, wrapped, "/api/transactions", body, headers)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

type fakeSuggester struct {
	suggestion *suggest.Suggestion
	err        error
}

func (f *fakeSuggester) SuggestCategory(ctx context.Context, note string) (*suggest.Suggestion, error) {
	return f.suggestion, f.err
}

func TestSuggest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewSuggestHandler(&fakeSuggester{suggestion: &suggest.Suggestion{Category: "Food"}}, testLog)
		rec := postJSON(t, h.Suggest, "/api/categories/suggest", map[string]string{"note": "lunch"}, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
		}
		if !strings.Contains(rec.Body.String(), `"category":"Food"`) {
			t.Errorf("body = %s", rec.Body)
		}
	})

	t.Run("empty note", func(t *testing.T) {
		h := NewSuggestHandler(&fakeSuggester{}, testLog)
		rec := postJSON(t, h.Suggest, "/api/categories/suggest", map[string]string{}, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("model failure", func(t *testing.T) {
		h := NewSuggestHandler(&fakeSuggester{err: errors.New("quota")}, testLog)
		rec := postJSON(t, h.Suggest, "/api/categories/suggest", map[string]string{"note": "x"}, nil)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})
}
