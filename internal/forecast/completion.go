package forecast

import "time"

// PaceEstimate describes how long finishing the remaining scope takes at
// one velocity band.
type PaceEstimate struct {
	Velocity float64
	Periods  float64
	Days     float64
	Date     time.Time
	Feasible bool
}

// CompletionEstimate summarizes the projected completion dates for all
// three bands plus the remaining scope they are measured against.
type CompletionEstimate struct {
	Remaining   float64
	Done        bool
	Mean        PaceEstimate
	Optimistic  PaceEstimate
	Pessimistic PaceEstimate
}

// EstimateCompletion converts the scalar band velocities into calendar
// completion dates counted from "now". A band with zero velocity cannot
// finish the remaining work and is marked infeasible.
func EstimateCompletion(r Result, now time.Time) CompletionEstimate {
	remaining := r.TargetScope - r.LastActualCompleted()

	est := CompletionEstimate{
		Remaining: remaining,
		Done:      remaining <= 0,
	}

	est.Mean = paceFor(r.Forecast.MeanVelocity, remaining, r.IntervalDays, now)
	est.Optimistic = paceFor(r.Forecast.OptimisticVelocity, remaining, r.IntervalDays, now)
	est.Pessimistic = paceFor(r.Forecast.PessimisticVelocity, remaining, r.IntervalDays, now)

	return est
}

func paceFor(velocity, remaining float64, intervalDays int, now time.Time) PaceEstimate {
	p := PaceEstimate{Velocity: velocity}
	if velocity <= 0 || remaining <= 0 {
		return p
	}
	p.Feasible = true
	p.Periods = remaining / velocity
	p.Days = p.Periods * float64(intervalDays)
	p.Date = now.Add(time.Duration(p.Days * 24 * float64(time.Hour)))
	return p
}
