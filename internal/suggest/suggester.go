// Package suggest proposes a spend category for a transaction note
// using Gemini, constrained to the app's recognized category set.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dvloznov/financehub/internal/domain"
)

// DefaultModelName is the Gemini model used for suggestions.
const DefaultModelName = "gemini-2.5-flash"

// Suggestion is the model's categorization of a note.
type Suggestion struct {
	Category    string `json:"category"`
	SubCategory string `json:"subcategory,omitempty"`
}

// generator abstracts the model call so parsing and validation can be
// tested without network access.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Suggester turns free-text notes into category suggestions.
type Suggester struct {
	gen   generator
	model string
}

// NewSuggester creates a Gemini-backed Suggester. Credentials come from
// the environment, same as the other Google clients.
func NewSuggester(ctx context.Context) (*Suggester, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: create genai client: %w", err)
	}
	return &Suggester{gen: &genaiGenerator{client: client, model: DefaultModelName}, model: DefaultModelName}, nil
}

// SuggestCategory asks the model to classify the note and validates the
// answer against the recognized category set. An out-of-set answer is an
// error, never forwarded to the caller as a category.
func (s *Suggester) SuggestCategory(ctx context.Context, note string) (*Suggestion, error) {
	if strings.TrimSpace(note) == "" {
		return nil, fmt.Errorf("suggest: note is empty")
	}

	raw, err := s.gen.generate(ctx, buildPrompt(note))
	if err != nil {
		return nil, fmt.Errorf("suggest: generate content: %w", err)
	}
	if raw == "" {
		return nil, fmt.Errorf("suggest: empty response from model")
	}

	var parsed Suggestion
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("suggest: parsing model output: %w", err)
	}

	category := domain.CanonicalCategory(parsed.Category)
	if category == "" {
		return nil, fmt.Errorf("suggest: model returned unrecognized category %q", parsed.Category)
	}

	out := &Suggestion{Category: category}
	if parsed.SubCategory != "" {
		// Drop rather than fail: a bad subcategory should not lose a
		// valid top-level suggestion.
		out.SubCategory = domain.CanonicalCategory(parsed.SubCategory)
	}
	return out, nil
}

// cleanModelJSON strips Markdown fences and surrounding prose when the
// model ignores the strict-JSON instruction.
func cleanModelJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	if start := strings.Index(clean, "{"); start > 0 {
		clean = clean[start:]
	}
	if end := strings.LastIndex(clean, "}"); end >= 0 && end < len(clean)-1 {
		clean = clean[:end+1]
	}
	return clean
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
