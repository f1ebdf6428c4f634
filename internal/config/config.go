package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"jira-burnup/internal/jira"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Jira jira.Config

	ProjectKey  string
	VersionName string

	// Story point field resolution: primary custom field, then fallback.
	PointsField         string
	FallbackPointsField string

	CompletedStatuses []string

	StartDate         time.Time
	EndDate           time.Time
	IntervalDays      int
	TargetReleaseDate *time.Time

	// VelocityMultiplier is JIRA_VELOCITY_ADJUSTMENT (a percentage,
	// default 100) divided by 100.
	VelocityMultiplier float64

	// BoardID pins velocity measurement to a specific board instead of
	// walking all boards of the project.
	BoardID int

	OutputFile string
	ChartTitle string
}

// Load loads the configuration from .env files and environment variables.
// Date defaults are anchored to "now": ninety days back for the chart start,
// ninety days ahead for its end.
func Load(now time.Time) (*AppConfig, error) {
	// 1. Try to load from the executable's directory first
	exePath, err := os.Executable()
	if err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	cfg := &AppConfig{
		Jira: jira.Config{
			BaseURL:  strings.TrimRight(getEnv("JIRA_URL", ""), "/"),
			Username: getEnv("JIRA_USERNAME", ""),
			APIToken: getEnv("JIRA_API_TOKEN", ""),
		},
		ProjectKey:          getEnv("JIRA_PROJECT_KEY", ""),
		VersionName:         getEnv("JIRA_VERSION_NAME", ""),
		PointsField:         getEnv("JIRA_STORY_POINT_FIELD", "customfield_10016"),
		FallbackPointsField: getEnv("JIRA_FALLBACK_POINT_FIELD", ""),
		OutputFile:          getEnv("OUTPUT_FILE", "mermaid_chart.txt"),
	}

	missing := missingKeys(map[string]string{
		"JIRA_URL":          cfg.Jira.BaseURL,
		"JIRA_USERNAME":     cfg.Jira.Username,
		"JIRA_API_TOKEN":    cfg.Jira.APIToken,
		"JIRA_PROJECT_KEY":  cfg.ProjectKey,
		"JIRA_VERSION_NAME": cfg.VersionName,
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	delaySecs, _ := strconv.Atoi(getEnv("JIRA_REQUEST_DELAY_SECONDS", "1"))
	cfg.Jira.RequestDelay = time.Duration(delaySecs) * time.Second

	cfg.CompletedStatuses = splitList(getEnv("JIRA_COMPLETED_STATUSES", "Done,Closed,Resolved"))

	cfg.StartDate = parseDateOr(getEnv("JIRA_START_DATE", ""), now.AddDate(0, 0, -90))
	cfg.EndDate = parseDateOr(getEnv("JIRA_END_DATE", ""), now.AddDate(0, 0, 90))

	cfg.IntervalDays, _ = strconv.Atoi(getEnv("JIRA_INTERVAL_DAYS", "7"))
	if cfg.IntervalDays < 1 {
		log.Warn().Int("interval", cfg.IntervalDays).Msg("Invalid interval, falling back to 7 days")
		cfg.IntervalDays = 7
	}

	if raw := getEnv("JIRA_TARGET_RELEASE_DATE", ""); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			cfg.TargetReleaseDate = &t
		} else {
			log.Warn().Str("value", raw).Msg("Invalid JIRA_TARGET_RELEASE_DATE, ignoring")
		}
	}

	adjustment, err := strconv.ParseFloat(getEnv("JIRA_VELOCITY_ADJUSTMENT", "100"), 64)
	if err != nil || adjustment <= 0 {
		adjustment = 100
	}
	cfg.VelocityMultiplier = adjustment / 100.0

	cfg.BoardID, _ = strconv.Atoi(getEnv("JIRA_BOARD_ID", "0"))

	cfg.ChartTitle = getEnv("CHART_TITLE", fmt.Sprintf("%s Release Progress", cfg.VersionName))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func missingKeys(required map[string]string) []string {
	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}
	// Map iteration order is random; keep the error message stable.
	sort.Strings(missing)
	return missing
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDateOr(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		log.Warn().Str("value", raw).Msg("Invalid date, using default")
		return fallback
	}
	return t
}
