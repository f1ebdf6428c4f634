package forecast

import "math"

// Minimum number of buckets appended when there is no remaining scope to
// project against.
const minLookahead = 5

// ExtendToTarget grows the grid into the future until a mean-velocity
// projection from the last actual completed value would reach targetScope,
// plus a two-bucket margin. Appended buckets repeat the last known scope
// and completed values; nothing is recomputed from work items.
//
// A non-positive velocity means no meaningful projection is possible, so
// the grid stays as it is. The operation never shrinks the grid, and with a
// positive target it is a fixed point: once the grid covers the projected
// completion, calling it again appends nothing. Returns the number of
// buckets appended.
func (s *Series) ExtendToTarget(targetScope, meanVelocity float64, actualLen, intervalDays int) int {
	if meanVelocity <= 0 || len(s.Dates) == 0 {
		return 0
	}

	var lastActual float64
	if actualLen > 0 && actualLen <= len(s.Completed) {
		lastActual = s.Completed[actualLen-1]
	}

	var targetLen int
	switch {
	case targetScope <= 0:
		targetLen = len(s.Dates) + minLookahead
	case targetScope-lastActual > 0:
		remaining := targetScope - lastActual
		required := int(math.Ceil(remaining/meanVelocity)) + 2
		targetLen = actualLen + required
	default:
		targetLen = actualLen + minLookahead
	}

	appended := 0
	for len(s.Dates) < targetLen {
		next := s.Dates[len(s.Dates)-1].AddDate(0, 0, intervalDays)
		s.Dates = append(s.Dates, next)
		s.TotalScope = append(s.TotalScope, s.TotalScope[len(s.TotalScope)-1])
		s.Completed = append(s.Completed, s.Completed[len(s.Completed)-1])
		appended++
	}
	return appended
}
