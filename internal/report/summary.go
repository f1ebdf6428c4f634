package report

import (
	"fmt"
	"strings"
	"time"

	"jira-burnup/internal/forecast"
)

const divider = "================================================================================"

// Summary gathers everything the console rendering needs besides the
// forecast result itself.
type Summary struct {
	Result        forecast.Result
	Completion    forecast.CompletionEstimate
	TargetRelease *time.Time
	Start         time.Time
}

// Render produces the plain-text progress and release-forecast summary
// printed after chart generation.
func Render(s Summary) string {
	var sb strings.Builder

	r := s.Result

	// Current progress
	if len(r.TotalScope) > 0 {
		scope := r.TargetScope
		completed := r.LastActualCompleted()
		progress := 0.0
		if scope > 0 {
			progress = completed / scope * 100
		}
		fmt.Fprintf(&sb, "Current progress: %.1f / %.1f points (%.1f%%)\n", completed, scope, progress)
	}

	sb.WriteString(divider + "\n")
	sb.WriteString("Release forecast\n")
	sb.WriteString(divider + "\n")

	if s.TargetRelease != nil {
		fmt.Fprintf(&sb, "Target release date: %s\n", s.TargetRelease.Format("01/02"))
		// Checkpoint at 80% of the runway from chart start to the target.
		totalDays := s.TargetRelease.Sub(s.Start).Hours() / 24
		checkpoint := s.Start.AddDate(0, 0, int(totalDays*0.8))
		fmt.Fprintf(&sb, "80%% checkpoint: %s (80%% of the way from start to target)\n", checkpoint.Format("01/02"))
	} else {
		sb.WriteString("Target release date: not set\n")
	}

	fmt.Fprintf(&sb, "\nVelocity per %d-day bucket (%s):\n", r.IntervalDays, r.VelocitySource)
	fmt.Fprintf(&sb, "  optimistic: %.2f\n", r.Forecast.OptimisticVelocity)
	fmt.Fprintf(&sb, "  mean:       %.2f\n", r.Forecast.MeanVelocity)
	fmt.Fprintf(&sb, "  pessimistic: %.2f\n", r.Forecast.PessimisticVelocity)

	fmt.Fprintf(&sb, "\nRemaining points: %.2f\n", s.Completion.Remaining)
	sb.WriteString("Estimated completion:\n")
	sb.WriteString(renderPace("mean pace", s.Completion.Mean, s.Completion.Done))
	sb.WriteString(renderPace("optimistic pace", s.Completion.Optimistic, s.Completion.Done))
	sb.WriteString(renderPace("pessimistic pace", s.Completion.Pessimistic, s.Completion.Done))

	sb.WriteString(divider)
	return sb.String()
}

func renderPace(name string, p forecast.PaceEstimate, done bool) string {
	if done {
		return fmt.Sprintf("  %s: already complete\n", name)
	}
	if !p.Feasible {
		return fmt.Sprintf("  %s: velocity too low to project\n", name)
	}
	return fmt.Sprintf("  %s: %.1f periods (~%.0f days), completing %s\n",
		name, p.Periods, p.Days, p.Date.Format("2006-01-02"))
}
