// Package trend turns stored video records into a ranked, filtered set of
// emerging trends: extraction, normalization, aggregation, scoring.
package trend

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/stylx/stylx/internal/store"
)

// minNameRunes is the minimum length of a normalized trend name; shorter
// candidates are noise ("s", "ad") and are dropped before aggregation.
const minNameRunes = 3

// Extractor produces raw, pre-normalization trend name candidates from one
// stored video. Implementations deduplicate candidates per video; the
// pipeline normalizes them afterwards.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, v store.Video) []string
}

// DefaultVocabulary is the fixed set of fashion phrases matched against video
// titles by the lexical strategy.
var DefaultVocabulary = []string{
	"fashion haul", "outfit ideas", "style guide", "lookbook",
	"fashion trends", "streetwear", "minimalist fashion", "aesthetic",
	"wardrobe essentials", "capsule wardrobe", "outfit inspiration",
	"fashion week", "runway", "designer", "vintage fashion",
	"thrift haul", "sustainable fashion", "fast fashion",
	"y2k fashion", "grunge", "cottagecore", "dark academia",
	"clean girl", "mob wife", "quiet luxury", "old money",
	"oversized", "blazer", "wide leg", "cargo pants",
	"leather jacket", "trench coat", "denim", "maxi dress",
}

// LexicalExtractor finds candidates without any external call: every tag of
// the video, plus every vocabulary phrase appearing in the title.
type LexicalExtractor struct {
	vocab []string
}

// NewLexical creates a lexical extractor. A nil vocabulary selects
// DefaultVocabulary.
func NewLexical(vocab []string) *LexicalExtractor {
	if vocab == nil {
		vocab = DefaultVocabulary
	}
	return &LexicalExtractor{vocab: vocab}
}

func (l *LexicalExtractor) Name() string {
	return "lexical"
}

// Extract returns the deduplicated raw candidates for one video. Malformed
// tags JSON means no tags, never a failure. Deterministic: same video, same
// output.
func (l *LexicalExtractor) Extract(_ context.Context, v store.Video) []string {
	seen := make(map[string]bool)
	var candidates []string

	add := func(raw string) {
		if raw == "" || seen[raw] {
			return
		}
		seen[raw] = true
		candidates = append(candidates, raw)
	}

	for _, tag := range parseTags(v.Tags) {
		add(tag)
	}

	titleLower := strings.ToLower(v.Title)
	for _, phrase := range l.vocab {
		if strings.Contains(titleLower, phrase) {
			add(phrase)
		}
	}

	sort.Strings(candidates)
	return candidates
}

// parseTags decodes the JSON-encoded tags column. Malformed JSON yields an
// empty list.
func parseTags(tagsJSON string) []string {
	if strings.TrimSpace(tagsJSON) == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
		return nil
	}
	var out []string
	for _, t := range tags {
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	}
	return out
}

// Occurrences runs the extractor over every video and produces normalized
// trend occurrences. Candidates whose normalized form is shorter than three
// characters are discarded. A video may contribute the same normalized name
// more than once when distinct raw candidates normalize to it; aggregation
// counts each contribution.
func Occurrences(ctx context.Context, videos []store.Video, ex Extractor) []Occurrence {
	var occs []Occurrence
	for _, v := range videos {
		for _, raw := range ex.Extract(ctx, v) {
			name := Normalize(raw)
			if utf8.RuneCountInString(name) < minNameRunes {
				continue
			}
			occs = append(occs, Occurrence{
				VideoID:     v.VideoID,
				Name:        name,
				PublishDate: v.PublishDate,
				ViewCount:   v.ViewCount,
			})
		}
	}
	return occs
}
