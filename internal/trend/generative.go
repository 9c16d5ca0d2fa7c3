package trend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stylx/stylx/internal/genai"
	"github.com/stylx/stylx/internal/store"
)

const (
	maxPromptDescription = 500 // runes of description embedded in the prompt
	maxPromptTags        = 10
)

const extractPromptTemplate = `Analizează acest video YouTube din domeniul fashion/lifestyle și extrage trendurile sau stilurile menționate.

Titlu: %s
Descriere: %s
Tags: %s

Returnează DOAR o listă JSON cu 1-5 trenduri identificate (nume scurte, fără descrieri).
Exemplu format răspuns: ["clean girl aesthetic", "oversized blazer trend", "minimalist fashion"]

Dacă nu găsești trenduri clare, returnează o listă goală: []
`

// GenerativeExtractor delegates candidate extraction to a text generator.
// Any failure for a single video is logged and yields no candidates; it never
// aborts the run.
type GenerativeExtractor struct {
	gen genai.Generator
}

func NewGenerative(gen genai.Generator) *GenerativeExtractor {
	return &GenerativeExtractor{gen: gen}
}

func (g *GenerativeExtractor) Name() string {
	return "gemini"
}

func (g *GenerativeExtractor) Extract(ctx context.Context, v store.Video) []string {
	reply, err := g.gen.Generate(ctx, buildExtractPrompt(v))
	if err != nil {
		fmt.Printf("  warning: extract trends for video %s: %v\n", v.VideoID, err)
		return nil
	}

	names := parseNameArray(reply)

	seen := make(map[string]bool)
	var out []string
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func buildExtractPrompt(v store.Video) string {
	tags := parseTags(v.Tags)
	if len(tags) > maxPromptTags {
		tags = tags[:maxPromptTags]
	}
	return fmt.Sprintf(extractPromptTemplate,
		v.Title,
		firstNRunes(v.Description, maxPromptDescription),
		strings.Join(tags, ", "),
	)
}

// parseNameArray extracts the first JSON-array-shaped substring of the reply
// (the generator may wrap it in prose or code fences) and decodes it. Any
// shape problem yields nil.
func parseNameArray(reply string) []string {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end <= start {
		return nil
	}

	var raw []any
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil
	}

	var names []string
	for _, item := range raw {
		if item == nil {
			continue
		}
		s, ok := item.(string)
		if !ok {
			s = fmt.Sprint(item)
		}
		s = strings.TrimSpace(s)
		if s != "" {
			names = append(names, s)
		}
	}
	return names
}

func firstNRunes(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
