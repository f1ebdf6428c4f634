package forecast

// zScore80 is the one-sided z value for an 80% confidence bound.
const zScore80 = 1.282

// Forecast holds the three projected completion series and the scalar
// per-bucket velocities behind them.
type Forecast struct {
	Mean        []float64
	Optimistic  []float64
	Pessimistic []float64

	MeanVelocity        float64
	OptimisticVelocity  float64
	PessimisticVelocity float64
}

// Project produces the mean, optimistic and pessimistic completion series
// over numPoints buckets, anchored at the last actual data point.
//
// Historical indices echo the actual completed values exactly; no smoothing
// is applied. Future indices grow linearly from the last actual value at
// the band's velocity. Degenerate inputs (empty history, actualLen < 1, or
// actualLen beyond the series) yield zero-filled series and zero scalar
// velocities: the projector reports what it was given and does not
// second-guess its inputs.
func Project(completed []float64, numPoints, actualLen int, est VelocityEstimate) Forecast {
	f := Forecast{
		Mean:        make([]float64, numPoints),
		Optimistic:  make([]float64, numPoints),
		Pessimistic: make([]float64, numPoints),
	}

	if len(completed) == 0 || actualLen < 1 || actualLen > len(completed) {
		return f
	}

	f.MeanVelocity = est.MeanPerBucket
	f.OptimisticVelocity = est.MeanPerBucket + zScore80*est.StdDevPerBucket
	f.PessimisticVelocity = est.MeanPerBucket - zScore80*est.StdDevPerBucket
	if f.PessimisticVelocity < 0 {
		f.PessimisticVelocity = 0
	}

	lastActual := completed[actualLen-1]

	for i := 0; i < numPoints; i++ {
		if i < actualLen {
			f.Mean[i] = completed[i]
			f.Optimistic[i] = completed[i]
			f.Pessimistic[i] = completed[i]
			continue
		}
		periodsAhead := float64(i - actualLen + 1)
		f.Mean[i] = lastActual + f.MeanVelocity*periodsAhead
		f.Optimistic[i] = lastActual + f.OptimisticVelocity*periodsAhead
		f.Pessimistic[i] = lastActual + f.PessimisticVelocity*periodsAhead
	}

	return f
}
