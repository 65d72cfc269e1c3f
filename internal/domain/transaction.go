package domain

import (
	"errors"
	"fmt"
	"time"
)

// TransactionStatus is the lifecycle state of a recorded payment.
// The mobile flow only ever writes StatusDone today; pending/failed exist
// so the schema does not need to change when asynchronous settlement lands.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusDone    TransactionStatus = "DONE"
	StatusFailed  TransactionStatus = "FAILED"
)

// Transaction is one immutable spend record, written once to the user's
// userTransactions sub-collection and never read back by the payment flow.
type Transaction struct {
	Amount      float64           `firestore:"amount" json:"amount"`
	Category    string            `firestore:"category" json:"category"`
	SubCategory string            `firestore:"subCategory" json:"subCategory,omitempty"`
	Notes       string            `firestore:"notes" json:"notes,omitempty"`
	Status      TransactionStatus `firestore:"status" json:"status"`
	Timestamp   time.Time         `firestore:"timestamp" json:"timestamp"`
}

var (
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrMissingCategory = errors.New("category is required")
)

// ValidateTransaction enforces the caller-side checks the payment screen
// performs before a record is written: positive amount, category drawn
// from the recognized set, and likewise for the optional subcategory.
func ValidateTransaction(t Transaction) error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	if !IsRecognizedCategory(t.Category) {
		return fmt.Errorf("unrecognized category %q", t.Category)
	}
	if t.SubCategory != "" && !IsRecognizedCategory(t.SubCategory) {
		return fmt.Errorf("unrecognized subcategory %q", t.SubCategory)
	}
	return nil
}
