// Package newsletter composes the STYLX Fashion Pulse newsletter from a
// rendered trend table via the text-generation API.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stylx/stylx/internal/genai"
)

var promptSections = []string{
	"You are STYLX, un consultant dedicat exclusiv modei și stylingului.",
	"Ai următoarele date despre trendurile actuale din fashion:",
	"", // filled with the stats table
	"Compune în limba română un newsletter premium intitulat \"STYLX Fashion Pulse\". " +
		"Include o introducere scurtă, 3-4 insight-uri bullet, un plan de acțiune " +
		"(bullet numerotate) și un îndemn final. Folosește cifrele exacte din tabel, " +
		"păstrând un ton profesionist și orientat spre modă.",
	"Nu menționa în text sursa datelor sau faptul că provin dintr-un fișier.",
}

// BuildPrompt assembles the fixed newsletter prompt around the stats table,
// opening with the STYLX consultant persona.
func BuildPrompt(statsMarkdown string) string {
	sections := make([]string, len(promptSections))
	copy(sections, promptSections)
	sections[2] = statsMarkdown
	return strings.Join(sections, "\n\n")
}

// Compose generates the newsletter body from the trend table and prepends the
// dated header. The generator call is the whole point of this operation, so
// its failure is returned rather than swallowed.
func Compose(ctx context.Context, gen genai.Generator, statsMarkdown string, now time.Time) (string, error) {
	if strings.TrimSpace(statsMarkdown) == "" {
		return "", errors.New("stats table is empty")
	}

	body, err := gen.Generate(ctx, BuildPrompt(statsMarkdown))
	if err != nil {
		return "", fmt.Errorf("generate newsletter: %w", err)
	}

	header := fmt.Sprintf("## STYLX Fashion Pulse — %s\n\n", now.Format("02 January 2006"))
	return header + strings.TrimSpace(body) + "\n", nil
}
