package forecast

import (
	"jira-burnup/internal/jira"
)

// Source identifies where a velocity estimate came from.
type Source string

const (
	// SourceDerived means the estimate was measured from bucket-to-bucket
	// completion deltas in the chart's own history.
	SourceDerived Source = "derived"
	// SourceExternal means the estimate came from sprint velocity
	// statistics, rescaled to chart bucket units.
	SourceExternal Source = "external"
)

// VelocityEstimate is the per-bucket completion rate used for projection.
type VelocityEstimate struct {
	MeanPerBucket   float64
	StdDevPerBucket float64
	Source          Source
}

// EstimateVelocity derives a per-bucket velocity from the actual completion
// prefix, optionally overridden by externally measured sprint statistics.
//
// Derivation keeps only non-negative deltas: a drop in cumulative completion
// (reopened work) is treated as noise and discarded, not subtracted. Fewer
// than two retained deltas yields a zero estimate. An external estimate
// wins when both its mean and period are positive; its standard deviation
// wins only when positive, otherwise the derived per-bucket deviation is
// kept as-is. The multiplier scales both mean and deviation exactly once.
func EstimateVelocity(completed []float64, actualLen int, external *jira.VelocityStats, intervalDays int, multiplier float64) VelocityEstimate {
	if actualLen > len(completed) {
		actualLen = len(completed)
	}

	var deltas []float64
	for i := 1; i < actualLen; i++ {
		delta := completed[i] - completed[i-1]
		if delta >= 0 {
			deltas = append(deltas, delta)
		}
	}

	var mean, stdDev float64
	if len(deltas) >= 2 {
		mean = Mean(deltas)
		stdDev = PopulationStdDev(deltas)
	}

	source := SourceDerived
	if external != nil && external.Mean > 0 && external.PeriodDays > 0 {
		ratio := float64(intervalDays) / external.PeriodDays
		mean = external.Mean * ratio
		if external.StdDev > 0 {
			stdDev = external.StdDev * ratio
		}
		source = SourceExternal
	}

	return VelocityEstimate{
		MeanPerBucket:   mean * multiplier,
		StdDevPerBucket: stdDev * multiplier,
		Source:          source,
	}
}
