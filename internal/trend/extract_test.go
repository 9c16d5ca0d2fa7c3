package trend

import (
	"context"
	"slices"
	"testing"

	"github.com/stylx/stylx/internal/store"
)

func video(title, tagsJSON string) store.Video {
	return store.Video{
		VideoID:     "v1",
		Title:       title,
		Tags:        tagsJSON,
		PublishDate: "2026-08-20T10:00:00Z",
		ViewCount:   1000,
	}
}

func TestLexicalExtract_Tags(t *testing.T) {
	ex := NewLexical(nil)

	got := ex.Extract(context.Background(), video("unrelated title", `["Streetwear","thrift haul",""]`))

	want := []string{"Streetwear", "thrift haul"}
	if !slices.Equal(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestLexicalExtract_TitleVocabulary(t *testing.T) {
	ex := NewLexical(nil)

	got := ex.Extract(context.Background(), video("My HUGE Fashion Haul + streetwear looks", "[]"))

	if !slices.Contains(got, "fashion haul") {
		t.Errorf("candidates = %v, want containing %q", got, "fashion haul")
	}
	if !slices.Contains(got, "streetwear") {
		t.Errorf("candidates = %v, want containing %q", got, "streetwear")
	}
}

func TestLexicalExtract_MalformedTags(t *testing.T) {
	ex := NewLexical(nil)

	got := ex.Extract(context.Background(), video("nothing matches here", "not-json"))

	if len(got) != 0 {
		t.Errorf("candidates = %v, want none for malformed tags", got)
	}
}

func TestLexicalExtract_Deduplicates(t *testing.T) {
	ex := NewLexical(nil)

	// "streetwear" appears as a tag and in the title; raw candidates are a set.
	got := ex.Extract(context.Background(), video("best streetwear 2026", `["streetwear","streetwear"]`))

	count := 0
	for _, c := range got {
		if c == "streetwear" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d streetwear candidates, want 1", count)
	}
}

func TestLexicalExtract_Deterministic(t *testing.T) {
	ex := NewLexical(nil)
	v := video("capsule wardrobe lookbook", `["denim","y2k fashion"]`)

	first := ex.Extract(context.Background(), v)
	second := ex.Extract(context.Background(), v)

	if !slices.Equal(first, second) {
		t.Errorf("extraction not deterministic: %v vs %v", first, second)
	}
}

func TestLexicalExtract_CustomVocabulary(t *testing.T) {
	ex := NewLexical([]string{"balletcore"})

	got := ex.Extract(context.Background(), video("balletcore essentials", "[]"))

	want := []string{"balletcore"}
	if !slices.Equal(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
}

func TestOccurrences_NormalizesAndFilters(t *testing.T) {
	ex := NewLexical(nil)
	videos := []store.Video{
		{VideoID: "a", Title: "", Tags: `["Clean Girl ✨","ok","x"]`, PublishDate: "2026-08-20", ViewCount: 500},
	}

	occs := Occurrences(context.Background(), videos, ex)

	// "ok" and "x" normalize to fewer than three runes and are dropped.
	if len(occs) != 1 {
		t.Fatalf("got %d occurrences, want 1: %v", len(occs), occs)
	}
	if occs[0].Name != "clean girl" {
		t.Errorf("name = %q, want %q", occs[0].Name, "clean girl")
	}
	if occs[0].VideoID != "a" || occs[0].ViewCount != 500 {
		t.Errorf("occurrence fields not carried over: %+v", occs[0])
	}
}

func TestOccurrences_RawVariantsDoubleCount(t *testing.T) {
	// A tag and a title match that differ only pre-normalization both
	// survive the raw per-video dedup, so the video contributes the name
	// twice. This mirrors the historical counting behavior.
	ex := NewLexical(nil)
	videos := []store.Video{
		video("best Streetwear looks", `["Streetwear 🔥"]`),
	}

	occs := Occurrences(context.Background(), videos, ex)

	count := 0
	for _, o := range occs {
		if o.Name == "streetwear" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d streetwear occurrences, want 2 (tag + title variant)", count)
	}
}
