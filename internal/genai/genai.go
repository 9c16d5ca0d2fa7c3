// Package genai is the boundary to the text-generation API. Callers treat a
// failed call as "no output" for the item at hand; only the newsletter, whose
// sole purpose is the call, surfaces it as a hard error.
package genai

import "context"

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
