package domain

import "strings"

// Categories is the closed set of spend categories the app recognizes.
// The same list backs both the category and subcategory pickers.
var Categories = []string{
	"Food",
	"Transport",
	"Groceries",
	"Entertainment",
	"Utilities",
}

var categorySet = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[normalizeCategory(c)] = true
	}
	return m
}()

// IsRecognizedCategory reports whether name is one of the recognized
// categories. Comparison is case-insensitive and whitespace-tolerant.
func IsRecognizedCategory(name string) bool {
	return categorySet[normalizeCategory(name)]
}

// CanonicalCategory returns the recognized spelling for name, or ""
// when the category is unknown.
func CanonicalCategory(name string) string {
	norm := normalizeCategory(name)
	for _, c := range Categories {
		if normalizeCategory(c) == norm {
			return c
		}
	}
	return ""
}

func normalizeCategory(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
