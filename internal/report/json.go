package report

import (
	"encoding/json"
	"io"

	"github.com/stylx/stylx/internal/store"
)

type jsonTrend struct {
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	NumVideos   int     `json:"num_videos"`
	TotalViews  int64   `json:"total_views"`
	AvgViews    float64 `json:"avg_views"`
	FirstSeenAt string  `json:"first_seen_at"`
	LastSeenAt  string  `json:"last_seen_at"`
	DetectedAt  string  `json:"detected_at"`
}

// JSONFormatter renders trends as an indented JSON array.
type JSONFormatter struct{}

// NewJSON creates a JSON formatter.
func NewJSON() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the trend ranking as JSON to w.
func (f *JSONFormatter) Format(w io.Writer, trends []store.Trend) error {
	out := make([]jsonTrend, 0, len(trends))
	for _, t := range trends {
		out = append(out, jsonTrend{
			Name:        t.Name,
			Score:       t.Score,
			NumVideos:   t.NumVideos,
			TotalViews:  t.TotalViews,
			AvgViews:    t.AvgViews,
			FirstSeenAt: t.FirstSeenAt,
			LastSeenAt:  t.LastSeenAt,
			DetectedAt:  t.DetectedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
