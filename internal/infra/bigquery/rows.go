// Package bigquery exports recorded transactions to the analytics
// dataset for reporting. The payment flow never reads these rows back.
package bigquery

import (
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/financehub/internal/domain"
)

// TransactionRow is the spending.transactions table schema.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	UserID        string `bigquery:"user_id"`        // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED

	Amount   *big.Rat `bigquery:"amount"`   // REQUIRED NUMERIC
	Currency string   `bigquery:"currency"` // REQUIRED STRING

	CategoryName    string              `bigquery:"category_name"`    // REQUIRED
	SubcategoryName bigquery.NullString `bigquery:"subcategory_name"` // NULLABLE
	Notes           bigquery.NullString `bigquery:"notes"`            // NULLABLE

	Status string `bigquery:"status"` // REQUIRED

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED (default CURRENT_TIMESTAMP)
}

// RowFromTransaction maps a domain transaction into its analytics row.
func RowFromTransaction(transactionID, userID string, txn domain.Transaction) *TransactionRow {
	row := &TransactionRow{
		TransactionID:   transactionID,
		UserID:          userID,
		TransactionDate: civil.DateOf(txn.Timestamp),
		Amount:          new(big.Rat).SetFloat64(txn.Amount),
		Currency:        "INR",
		CategoryName:    txn.Category,
		Status:          string(txn.Status),
		CreatedTS:       txn.Timestamp,
	}
	if txn.SubCategory != "" {
		row.SubcategoryName = bigquery.NullString{StringVal: txn.SubCategory, Valid: true}
	}
	if txn.Notes != "" {
		row.Notes = bigquery.NullString{StringVal: txn.Notes, Valid: true}
	}
	return row
}
