package forecast

import (
	"testing"
	"time"
)

func TestEstimateCompletion(t *testing.T) {
	r := Result{
		Completed:    []float64{0, 3, 5},
		ActualLength: 3,
		TargetScope:  10,
		IntervalDays: 7,
		Forecast: Forecast{
			MeanVelocity:        1.25,
			OptimisticVelocity:  2.5,
			PessimisticVelocity: 0,
		},
	}
	now := date(2026, 1, 29)

	est := EstimateCompletion(r, now)

	if est.Remaining != 5 {
		t.Errorf("Remaining = %v, want 5", est.Remaining)
	}
	if est.Done {
		t.Error("Done = true, want false")
	}

	// 5 remaining at 1.25 per 7-day bucket: 4 periods, 28 days.
	if !est.Mean.Feasible {
		t.Fatal("mean pace not feasible")
	}
	if !approxEqual(est.Mean.Periods, 4) {
		t.Errorf("Mean.Periods = %v, want 4", est.Mean.Periods)
	}
	if !approxEqual(est.Mean.Days, 28) {
		t.Errorf("Mean.Days = %v, want 28", est.Mean.Days)
	}
	if want := now.Add(28 * 24 * time.Hour); !est.Mean.Date.Equal(want) {
		t.Errorf("Mean.Date = %v, want %v", est.Mean.Date, want)
	}

	if !est.Optimistic.Feasible {
		t.Error("optimistic pace not feasible")
	}
	if !approxEqual(est.Optimistic.Days, 14) {
		t.Errorf("Optimistic.Days = %v, want 14", est.Optimistic.Days)
	}

	// A zero-velocity band can never finish the remaining work.
	if est.Pessimistic.Feasible {
		t.Error("pessimistic pace feasible with zero velocity")
	}
}

func TestEstimateCompletionAlreadyDone(t *testing.T) {
	r := Result{
		Completed:    []float64{0, 6, 10},
		ActualLength: 3,
		TargetScope:  10,
		IntervalDays: 7,
		Forecast:     Forecast{MeanVelocity: 2, OptimisticVelocity: 3, PessimisticVelocity: 1},
	}

	est := EstimateCompletion(r, date(2026, 1, 29))

	if !est.Done {
		t.Error("Done = false, want true")
	}
	if est.Remaining != 0 {
		t.Errorf("Remaining = %v, want 0", est.Remaining)
	}
	if est.Mean.Feasible || est.Optimistic.Feasible || est.Pessimistic.Feasible {
		t.Error("no band should project a date when nothing remains")
	}
}
