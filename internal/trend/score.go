package trend

import (
	"fmt"
	"sort"
	"time"
)

// Default filter thresholds, overridable per run via config or flags.
const (
	DefaultDaysWindow = 7
	DefaultMinVideos  = 3
	DefaultMinViews   = 10000
	DefaultMaxViews   = 500000
)

// Thresholds controls the "emerging" filter. All values are explicit run-time
// parameters of the pipeline, never globals.
type Thresholds struct {
	DaysWindow int
	MinVideos  int
	MinViews   int64
	MaxViews   int64
}

// DefaultThresholds returns the standard filter settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DaysWindow: DefaultDaysWindow,
		MinVideos:  DefaultMinVideos,
		MinViews:   DefaultMinViews,
		MaxViews:   DefaultMaxViews,
	}
}

// Validate rejects contradictory settings before a run starts.
func (t Thresholds) Validate() error {
	if t.MinVideos < 1 {
		return fmt.Errorf("min_videos must be at least 1, got %d", t.MinVideos)
	}
	if t.DaysWindow < 1 {
		return fmt.Errorf("days_window must be at least 1, got %d", t.DaysWindow)
	}
	if t.MinViews < 0 {
		return fmt.Errorf("min_views must not be negative, got %d", t.MinViews)
	}
	if t.MinViews > t.MaxViews {
		return fmt.Errorf("min_views %d exceeds max_views %d", t.MinViews, t.MaxViews)
	}
	return nil
}

// Emerging reports whether a metric passes all three filter conditions.
func (t Thresholds) Emerging(m Metric) bool {
	return m.NumVideos >= t.MinVideos &&
		m.TotalViews >= t.MinViews &&
		m.TotalViews <= t.MaxViews &&
		m.DaysSince <= float64(t.DaysWindow)
}

// Detect is the pipeline core: aggregate occurrences, keep the metrics that
// pass the emerging filter, and rank them by score descending. Name breaks
// score ties so the ranking is deterministic.
func Detect(occs []Occurrence, now time.Time, th Thresholds) []Metric {
	var emerging []Metric
	for _, m := range Aggregate(occs, now) {
		if th.Emerging(m) {
			emerging = append(emerging, m)
		}
	}

	sort.Slice(emerging, func(i, j int) bool {
		if emerging[i].Score != emerging[j].Score {
			return emerging[i].Score > emerging[j].Score
		}
		return emerging[i].Name < emerging[j].Name
	})
	return emerging
}
