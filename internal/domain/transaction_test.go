package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidateTransaction(t *testing.T) {
	valid := Transaction{
		Amount:    120.50,
		Category:  "Food",
		Status:    StatusDone,
		Timestamp: time.Now(),
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"zero amount", func(tr *Transaction) { tr.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(tr *Transaction) { tr.Amount = -5 }, ErrInvalidAmount},
		{"empty category", func(tr *Transaction) { tr.Category = "" }, ErrMissingCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := valid
			tt.mutate(&txn)
			err := ValidateTransaction(txn)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTransaction() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTransaction() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("unrecognized category", func(t *testing.T) {
		txn := valid
		txn.Category = "Gambling"
		if err := ValidateTransaction(txn); err == nil {
			t.Error("ValidateTransaction() accepted category outside the recognized set")
		}
	})

	t.Run("subcategory from same set", func(t *testing.T) {
		txn := valid
		txn.SubCategory = "Groceries"
		if err := ValidateTransaction(txn); err != nil {
			t.Errorf("ValidateTransaction() error = %v, want nil", err)
		}
		txn.SubCategory = "NotARealOne"
		if err := ValidateTransaction(txn); err == nil {
			t.Error("ValidateTransaction() accepted unknown subcategory")
		}
	})
}

func TestCategoryHelpers(t *testing.T) {
	tests := []struct {
		in         string
		recognized bool
		canonical  string
	}{
		{"Food", true, "Food"},
		{"food", true, "Food"},
		{"  GROCERIES  ", true, "Groceries"},
		{"Rent", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		if got := IsRecognizedCategory(tt.in); got != tt.recognized {
			t.Errorf("IsRecognizedCategory(%q) = %v, want %v", tt.in, got, tt.recognized)
		}
		if got := CanonicalCategory(tt.in); got != tt.canonical {
			t.Errorf("CanonicalCategory(%q) = %q, want %q", tt.in, got, tt.canonical)
		}
	}
}
