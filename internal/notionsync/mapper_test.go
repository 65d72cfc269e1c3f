package notionsync

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/financehub/internal/domain"
)

func TestTransactionToProperties(t *testing.T) {
	txn := domain.Transaction{
		Amount:      250,
		Category:    "Food",
		SubCategory: "Groceries",
		Notes:       "weekly shop",
		Status:      domain.StatusDone,
		Timestamp:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	props := TransactionToProperties(txn)

	title, ok := props["Name"].(notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 || title.Title[0].Text.Content != "Food 250.00" {
		t.Errorf("Name property = %+v", props["Name"])
	}
	amount, ok := props["Amount"].(notionapi.NumberProperty)
	if !ok || amount.Number != 250 {
		t.Errorf("Amount property = %+v", props["Amount"])
	}
	cat, ok := props["Category"].(notionapi.SelectProperty)
	if !ok || cat.Select.Name != "Food" {
		t.Errorf("Category property = %+v", props["Category"])
	}
	if _, ok := props["Subcategory"]; !ok {
		t.Error("Subcategory missing despite being set")
	}
	notes, ok := props["Notes"].(notionapi.RichTextProperty)
	if !ok || notes.RichText[0].Text.Content != "weekly shop" {
		t.Errorf("Notes property = %+v", props["Notes"])
	}
}

func TestTransactionToPropertiesOmitsEmptyOptionals(t *testing.T) {
	txn := domain.Transaction{
		Amount:    10,
		Category:  "Transport",
		Status:    domain.StatusDone,
		Timestamp: time.Now(),
	}

	props := TransactionToProperties(txn)
	if _, ok := props["Subcategory"]; ok {
		t.Error("Subcategory present for empty value")
	}
	if _, ok := props["Notes"]; ok {
		t.Error("Notes present for empty value")
	}
}
