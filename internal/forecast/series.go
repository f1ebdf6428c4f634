package forecast

import (
	"time"

	"jira-burnup/internal/jira"
)

// Series holds the scope and completion values sampled at each grid date.
// The three slices are always the same length and indexed 1:1.
type Series struct {
	Dates      TimeGrid
	TotalScope []float64
	Completed  []float64
}

// BuildSeries aggregates work items into per-bucket totals.
//
// An item is in scope at bucket d when its creation date is on or before d.
// It counts as completed when additionally its status is in
// completedStatuses and its resolution date is on or before d. Buckets
// after "now" get no completion of their own; a forward-fill pass assigns
// them the last actual value instead. When the whole grid is in the future
// the completed values stay at zero: the engine carries the last known
// actual forward, it never interpolates or guesses.
func BuildSeries(grid TimeGrid, items []jira.WorkItem, completedStatuses map[string]bool, now time.Time) Series {
	s := Series{
		Dates:      grid,
		TotalScope: make([]float64, len(grid)),
		Completed:  make([]float64, len(grid)),
	}

	today := DateOf(now)

	for i, bucket := range grid {
		isFuture := bucket.After(today)

		for _, item := range items {
			if DateOf(item.Created).After(bucket) {
				continue
			}
			s.TotalScope[i] += item.Points

			if isFuture {
				continue
			}
			if !completedStatuses[item.Status] {
				continue
			}
			if item.Resolved != nil && !DateOf(*item.Resolved).After(bucket) {
				s.Completed[i] += item.Points
			}
		}
	}

	// Forward-fill: future buckets repeat the most recent actual value.
	var lastActual float64
	haveActual := false
	for i, bucket := range grid {
		if !bucket.After(today) {
			lastActual = s.Completed[i]
			haveActual = true
		} else if haveActual {
			s.Completed[i] = lastActual
		}
	}

	return s
}
