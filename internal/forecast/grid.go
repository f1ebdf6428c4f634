package forecast

import (
	"time"
)

// TimeGrid is an ordered, append-only sequence of bucket dates at a fixed
// interval. Grids grow (see Series.ExtendToTarget) but never shrink and
// never reorder.
type TimeGrid []time.Time

// DateOf strips the time-of-day from a timestamp, keeping the wall-clock
// calendar date. Scope and completion membership are decided on calendar
// dates, not instants, so a ticket created late in the evening still counts
// on its creation day regardless of timezone offsets.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildGrid produces bucket dates from start to end inclusive, stepping by
// intervalDays. The grid always contains the start date: a start after end
// or a non-positive interval degrades to a single-element grid rather than
// failing.
func BuildGrid(start, end time.Time, intervalDays int) TimeGrid {
	first := DateOf(start)
	grid := TimeGrid{first}

	if intervalDays < 1 {
		return grid
	}

	last := DateOf(end)
	current := first.AddDate(0, 0, intervalDays)
	for !current.After(last) {
		grid = append(grid, current)
		current = current.AddDate(0, 0, intervalDays)
	}
	return grid
}

// ActualLength counts the leading buckets whose date is on or before "now".
// The scan stops at the first future bucket, partitioning the grid into a
// frozen actual prefix and a projected tail.
func ActualLength(grid TimeGrid, now time.Time) int {
	today := DateOf(now)
	count := 0
	for _, d := range grid {
		if d.After(today) {
			break
		}
		count++
	}
	return count
}
