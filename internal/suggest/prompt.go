package suggest

import (
	"strings"

	"github.com/dvloznov/financehub/internal/domain"
)

// buildPrompt produces the strict-JSON classification prompt for a note.
func buildPrompt(note string) string {
	categories := strings.Join(domain.Categories, ", ")

	return "You are a spend categorizer for a personal payments app.\n\n" +
		"Task:\n" +
		"- Classify the transaction note below into exactly one category.\n" +
		"- Output STRICT JSON only (no comments, no extra text).\n\n" +
		"The JSON object must have these fields:\n" +
		"- \"category\": string, one of: " + categories + "\n" +
		"- \"subcategory\": string from the same list, or omit the field\n\n" +
		"Return ONLY valid raw JSON.\n" +
		"Do NOT wrap the response in code fences.\n" +
		"Do NOT use ```json or any Markdown.\n" +
		"Output must begin with \"{\" and end with \"}\".\n\n" +
		"Note: " + note + "\n"
}
