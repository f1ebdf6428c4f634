package forecast

import (
	"time"

	"jira-burnup/internal/jira"
)

// Input carries everything one forecasting run needs. "Now" is explicit so
// runs are deterministic and replayable; a zero value means wall-clock time
// at invocation.
type Input struct {
	Items             []jira.WorkItem
	Start             time.Time
	End               time.Time
	IntervalDays      int
	Now               time.Time
	CompletedStatuses []string
	External          *jira.VelocityStats
	Multiplier        float64
}

// Result is the complete output of a forecasting run: the possibly-extended
// date grid, the actual series, and the three projected series.
type Result struct {
	Dates      TimeGrid
	TotalScope []float64
	Completed  []float64
	Forecast   Forecast

	ActualLength   int
	TargetScope    float64
	Appended       int
	IntervalDays   int
	VelocitySource Source
}

// Run executes the full pipeline: bucket work items into the grid, estimate
// velocity, extend the grid until the projection reaches the final scope,
// then project the three completion bands. Everything is recomputed from
// scratch; nothing persists between runs.
func Run(in Input) Result {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	multiplier := in.Multiplier
	if multiplier <= 0 {
		multiplier = 1.0
	}

	completedSet := make(map[string]bool, len(in.CompletedStatuses))
	for _, s := range in.CompletedStatuses {
		completedSet[s] = true
	}

	grid := BuildGrid(in.Start, in.End, in.IntervalDays)
	series := BuildSeries(grid, in.Items, completedSet, now)
	actualLen := ActualLength(series.Dates, now)

	var target float64
	if len(series.TotalScope) > 0 {
		target = series.TotalScope[len(series.TotalScope)-1]
	}

	// The velocity estimate depends only on the actual prefix, which grid
	// extension never touches, so one estimate serves both the extension
	// decision and all three projection bands.
	est := EstimateVelocity(series.Completed, actualLen, in.External, in.IntervalDays, multiplier)

	appended := series.ExtendToTarget(target, est.MeanPerBucket, actualLen, in.IntervalDays)

	fc := Project(series.Completed, len(series.Dates), actualLen, est)

	return Result{
		Dates:          series.Dates,
		TotalScope:     series.TotalScope,
		Completed:      series.Completed,
		Forecast:       fc,
		ActualLength:   actualLen,
		TargetScope:    target,
		Appended:       appended,
		IntervalDays:   in.IntervalDays,
		VelocitySource: est.Source,
	}
}

// LastActualCompleted returns the completed value at the end of the actual
// prefix, or 0 when the grid is entirely in the future.
func (r Result) LastActualCompleted() float64 {
	if r.ActualLength < 1 || r.ActualLength > len(r.Completed) {
		return 0
	}
	return r.Completed[r.ActualLength-1]
}
