package jira

import (
	"math"

	"github.com/rs/zerolog/log"
)

// VelocityStats is the externally measured sprint velocity for a project:
// completed story points per sprint plus the average sprint length in days.
type VelocityStats struct {
	Mean       float64
	StdDev     float64
	PeriodDays float64
	Sprints    int
}

const defaultSprintDays = 14.0

// MeasureVelocity walks the project's boards and derives sprint velocity
// statistics from the first board that exposes velocity chart data.
// A zero-valued result means no board had usable data.
func MeasureVelocity(client Client, projectKey string, boardID int) VelocityStats {
	var boards []BoardDTO
	if boardID > 0 {
		boards = []BoardDTO{{ID: boardID}}
	} else {
		found, err := client.FindBoards(projectKey)
		if err != nil {
			log.Warn().Err(err).Str("project", projectKey).Msg("Board lookup failed")
			return VelocityStats{}
		}
		boards = found
	}

	if len(boards) == 0 {
		log.Warn().Str("project", projectKey).Msg("No boards found for project")
		return VelocityStats{}
	}

	for _, board := range boards {
		log.Info().Int("board", board.ID).Str("name", board.Name).Msg("Reading board velocity")

		velocity, err := client.GetVelocity(board.ID)
		if err != nil {
			log.Debug().Err(err).Int("board", board.ID).Msg("Velocity data unavailable")
			continue
		}
		if velocity == nil || len(velocity.VelocityStatEntries) == 0 {
			log.Debug().Int("board", board.ID).Msg("Board has no velocity stat entries")
			continue
		}

		var completed []float64
		for _, entry := range velocity.VelocityStatEntries {
			if entry.Completed.Value > 0 {
				completed = append(completed, entry.Completed.Value)
			}
		}
		if len(completed) == 0 {
			log.Debug().Int("board", board.ID).Msg("No completed sprints with velocity")
			continue
		}

		mean := meanOf(completed)
		stdDev := 0.0
		if len(completed) >= 2 {
			stdDev = populationStdDev(completed, mean)
		}

		period := averageSprintDays(client, board.ID, len(completed))

		log.Info().
			Int("board", board.ID).
			Int("sprints", len(completed)).
			Float64("mean", mean).
			Float64("stdDev", stdDev).
			Float64("periodDays", period).
			Msg("Measured sprint velocity")

		return VelocityStats{
			Mean:       mean,
			StdDev:     stdDev,
			PeriodDays: period,
			Sprints:    len(completed),
		}
	}

	log.Warn().Str("project", projectKey).Msg("No board provided velocity data")
	return VelocityStats{}
}

// averageSprintDays estimates the sprint cadence from recent closed sprints.
// Falls back to two weeks when sprint dates are missing.
func averageSprintDays(client Client, boardID int, limit int) float64 {
	sprints, err := client.GetClosedSprints(boardID)
	if err != nil {
		log.Debug().Err(err).Int("board", boardID).Msg("Sprint listing failed")
		return defaultSprintDays
	}

	if limit > len(sprints) {
		limit = len(sprints)
	}

	var durations []float64
	for _, sprint := range sprints[:limit] {
		if sprint.StartDate == "" || sprint.EndDate == "" {
			continue
		}
		start, err := ParseTime(sprint.StartDate)
		if err != nil {
			continue
		}
		end, err := ParseTime(sprint.EndDate)
		if err != nil {
			continue
		}
		days := end.Sub(start).Hours() / 24.0
		if days > 0 {
			durations = append(durations, days)
		}
	}

	if len(durations) == 0 {
		log.Debug().Int("board", boardID).Msg("No sprint durations available, assuming two weeks")
		return defaultSprintDays
	}
	return meanOf(durations)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}
