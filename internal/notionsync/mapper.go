package notionsync

import (
	"fmt"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/financehub/internal/domain"
)

// TransactionToProperties converts one transaction into the properties
// of a spending-log row. Title is "<category> <amount>", the rest map to
// Select/Number/Date/Rich text columns.
func TransactionToProperties(txn domain.Transaction) notionapi.Properties {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: richText(fmt.Sprintf("%s %.2f", txn.Category, txn.Amount)),
		},
		"Amount": notionapi.NumberProperty{
			Number: txn.Amount,
		},
		"Category": notionapi.SelectProperty{
			Select: notionapi.Option{Name: txn.Category},
		},
		"Status": notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(txn.Status)},
		},
		"Date": notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: (*notionapi.Date)(&txn.Timestamp),
			},
		},
	}

	if txn.SubCategory != "" {
		props["Subcategory"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: txn.SubCategory},
		}
	}
	if txn.Notes != "" {
		props["Notes"] = notionapi.RichTextProperty{
			RichText: richText(txn.Notes),
		}
	}
	return props
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: content},
		},
	}
}
