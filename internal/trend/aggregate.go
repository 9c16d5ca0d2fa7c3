package trend

import (
	"math"
	"sort"
	"time"
)

const (
	// minDaysSince floors the recency denominator so a trend first seen
	// moments ago does not divide by zero.
	minDaysSince = 0.1
	// fallbackDaysSince stands in when first_seen_at cannot be parsed.
	fallbackDaysSince = 1.0
)

// Occurrence is one (video, trend name) mention. PublishDate is the video's
// ISO-8601 timestamp string and may be empty.
type Occurrence struct {
	VideoID     string
	Name        string // normalized trend name
	PublishDate string
	ViewCount   int64
}

// Metric is the aggregated, scored view of one trend name within a run.
type Metric struct {
	Name        string
	Score       float64
	NumVideos   int
	TotalViews  int64
	AvgViews    float64
	FirstSeenAt string
	LastSeenAt  string
	DaysSince   float64
}

// Aggregate groups occurrences by name and computes per-name metrics at the
// given reference time. Groups whose occurrences all lack a publish date are
// excluded: their recency is unknowable. Output order is by name; the input
// order never affects the result.
func Aggregate(occs []Occurrence, now time.Time) []Metric {
	groups := make(map[string][]Occurrence)
	for _, occ := range occs {
		groups[occ.Name] = append(groups[occ.Name], occ)
	}

	metrics := make([]Metric, 0, len(groups))
	for name, group := range groups {
		var dates []string
		var totalViews int64
		for _, occ := range group {
			totalViews += occ.ViewCount
			if occ.PublishDate != "" {
				dates = append(dates, occ.PublishDate)
			}
		}
		if len(dates) == 0 {
			continue
		}

		// ISO-8601 strings order correctly lexicographically.
		sort.Strings(dates)
		firstSeen := dates[0]
		lastSeen := dates[len(dates)-1]

		numVideos := len(group)
		days := daysSince(firstSeen, now)

		metrics = append(metrics, Metric{
			Name:        name,
			Score:       float64(numVideos) * math.Log(1+float64(totalViews)) / days,
			NumVideos:   numVideos,
			TotalViews:  totalViews,
			AvgViews:    float64(totalViews) / float64(numVideos),
			FirstSeenAt: firstSeen,
			LastSeenAt:  lastSeen,
			DaysSince:   days,
		})
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})
	return metrics
}

// daysSince returns the elapsed days between an ISO-8601 timestamp string and
// now, floored at minDaysSince. An unparseable date yields fallbackDaysSince.
func daysSince(dateStr string, now time.Time) float64 {
	ts, err := parseISO(dateStr)
	if err != nil {
		return fallbackDaysSince
	}
	days := now.Sub(ts).Hours() / 24
	if days < minDaysSince {
		return minDaysSince
	}
	return days
}

// parseISO accepts the timestamp shapes seen in practice: full RFC3339
// (trailing Z meaning UTC), a zoneless datetime, and a bare date. Zoneless
// values are taken as UTC.
func parseISO(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	var lastErr error
	for _, layout := range layouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
