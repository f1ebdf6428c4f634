package mcp

import (
	"encoding/json"
	"fmt"
	"time"

	"jira-burnup/internal/forecast"
	"jira-burnup/internal/jira"
	"jira-burnup/internal/report"
	"jira-burnup/internal/visuals"
)

func (s *Server) handleFindBoards(args map[string]interface{}) (string, error) {
	projectKey := stringArg(args, "project_key", s.cfg.ProjectKey)
	if projectKey == "" {
		return "", fmt.Errorf("no project key given and none configured")
	}

	boards, err := s.jira.FindBoards(projectKey)
	if err != nil {
		return "", err
	}

	out, _ := json.MarshalIndent(boards, "", "  ")
	return string(out), nil
}

func (s *Server) handleMeasureVelocity(args map[string]interface{}) (string, error) {
	projectKey := stringArg(args, "project_key", s.cfg.ProjectKey)
	if projectKey == "" {
		return "", fmt.Errorf("no project key given and none configured")
	}
	boardID := intArg(args, "board_id", s.cfg.BoardID)

	stats := jira.MeasureVelocity(s.jira, projectKey, boardID)
	if stats.Sprints == 0 {
		return "", fmt.Errorf("no completed sprints with velocity data found for project %s", projectKey)
	}

	out, _ := json.MarshalIndent(stats, "", "  ")
	return string(out), nil
}

func (s *Server) handleGenerateChart(args map[string]interface{}) (string, error) {
	projectKey := stringArg(args, "project_key", s.cfg.ProjectKey)
	versionName := stringArg(args, "version_name", s.cfg.VersionName)
	boardID := intArg(args, "board_id", s.cfg.BoardID)
	if projectKey == "" || versionName == "" {
		return "", fmt.Errorf("project key and version name are required, via arguments or configuration")
	}

	now := time.Now()

	pointsField := jira.ResolvePointsField(s.jira, s.cfg.PointsField)
	fallbackField := ""
	if s.cfg.FallbackPointsField != "" {
		fallbackField = jira.ResolvePointsField(s.jira, s.cfg.FallbackPointsField)
	}

	items, skipped, velocity, err := jira.GatherInputs(s.jira, projectKey, versionName, pointsField, fallbackField, boardID)
	if err != nil {
		return "", err
	}

	var external *jira.VelocityStats
	if velocity.Mean > 0 {
		external = &velocity
	}

	result := forecast.Run(forecast.Input{
		Items:             items,
		Start:             s.cfg.StartDate,
		End:               s.cfg.EndDate,
		IntervalDays:      s.cfg.IntervalDays,
		Now:               now,
		CompletedStatuses: s.cfg.CompletedStatuses,
		External:          external,
		Multiplier:        s.cfg.VelocityMultiplier,
	})

	title := fmt.Sprintf("%s Release Progress", versionName)
	chart := visuals.GenerateBurnupChart(result, title)
	if chart == "" {
		return "", fmt.Errorf("empty date grid, nothing to chart")
	}

	summary := report.Render(report.Summary{
		Result:        result,
		Completion:    forecast.EstimateCompletion(result, now),
		TargetRelease: s.cfg.TargetReleaseDate,
		Start:         s.cfg.StartDate,
	})

	text := chart + "\n\n" + summary
	if skipped > 0 {
		text += fmt.Sprintf("\n\nNote: %d issues without a usable estimate or creation date were dropped.", skipped)
	}
	return text, nil
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func intArg(args map[string]interface{}, key string, fallback int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return fallback
}
