package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/stylx/stylx/internal/store"
)

// MarkdownFormatter renders trends as a Markdown table.
type MarkdownFormatter struct{}

// NewMarkdown creates a Markdown formatter.
func NewMarkdown() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format writes the trend ranking as a Markdown table to w.
func (f *MarkdownFormatter) Format(w io.Writer, trends []store.Trend) error {
	fmt.Fprintf(w, "## 🔥 Top %d Emerging Fashion Trends\n\n", len(trends))
	fmt.Fprintln(w, "| Trend | Score | Avg Views/Clip |")
	fmt.Fprintln(w, "| --- | ---: | ---: |")

	for _, t := range trends {
		fmt.Fprintf(w, "| **%s** | %.2f | %s |\n", titleCase(t.Name), t.Score, groupThousands(int64(t.AvgViews)))
	}
	fmt.Fprintln(w)

	return nil
}

// DetailMarkdown writes the full metric breakdown for one trend.
func DetailMarkdown(w io.Writer, t store.Trend) {
	fmt.Fprintf(w, "## 🔍 Trend Details: **%s**\n\n", titleCase(t.Name))
	fmt.Fprintf(w, "- **Score:** %.2f\n", t.Score)
	fmt.Fprintf(w, "- **Videos:** %d\n", t.NumVideos)
	fmt.Fprintf(w, "- **Total views:** %s\n", groupThousands(t.TotalViews))
	fmt.Fprintf(w, "- **Average views/video:** %s\n", groupThousands(int64(t.AvgViews)))
	fmt.Fprintf(w, "- **First seen:** %s\n", datePart(t.FirstSeenAt))
	fmt.Fprintf(w, "- **Last seen:** %s\n", datePart(t.LastSeenAt))
	fmt.Fprintf(w, "- **Detected at:** %s\n", t.DetectedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)
}

// datePart keeps the date prefix of an ISO-8601 timestamp string.
func datePart(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// titleCase uppercases the first letter of each space-separated word.
// Trend names are already lowercase normalized, so this is display-only.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// groupThousands formats n with comma separators (12,345,678).
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
