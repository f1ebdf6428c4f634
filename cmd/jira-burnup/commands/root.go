package commands

import (
	"fmt"
	"os"
	"time"

	"jira-burnup/internal/config"
	"jira-burnup/internal/forecast"
	"jira-burnup/internal/jira"
	"jira-burnup/internal/logging"
	"jira-burnup/internal/mcp"
	"jira-burnup/internal/report"
	"jira-burnup/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose   bool
	openChart bool
	cfg       *config.AppConfig

	jiraClient jira.Client
)

var rootCmd = &cobra.Command{
	Use:   "jira-burnup",
	Short: "Burnup chart and release forecast generator for Jira fix versions",
	Long: `Generates a mermaid burnup chart for a Jira fix version: cumulative scope
and completion over a date grid, extended with an 80%-confidence forecast
band derived from sprint velocity or from the chart's own history.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load(time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		jiraClient = jira.NewClient(cfg.Jira)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("jira-burnup starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return generate()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server over Stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg, jiraClient)
		return server.Serve()
	},
}

func generate() error {
	now := time.Now()

	pointsField := jira.ResolvePointsField(jiraClient, cfg.PointsField)
	fallbackField := ""
	if cfg.FallbackPointsField != "" {
		fallbackField = jira.ResolvePointsField(jiraClient, cfg.FallbackPointsField)
	}

	items, skipped, velocity, err := jira.GatherInputs(jiraClient, cfg.ProjectKey, cfg.VersionName, pointsField, fallbackField, cfg.BoardID)
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("Issues without a usable estimate or creation date were dropped")
	}

	var external *jira.VelocityStats
	if velocity.Mean > 0 {
		external = &velocity
	}

	result := forecast.Run(forecast.Input{
		Items:             items,
		Start:             cfg.StartDate,
		End:               cfg.EndDate,
		IntervalDays:      cfg.IntervalDays,
		Now:               now,
		CompletedStatuses: cfg.CompletedStatuses,
		External:          external,
		Multiplier:        cfg.VelocityMultiplier,
	})

	chart := visuals.GenerateBurnupChart(result, cfg.ChartTitle)
	if chart == "" {
		return fmt.Errorf("empty date grid, nothing to chart")
	}

	if err := os.WriteFile(cfg.OutputFile, []byte(chart), 0o644); err != nil {
		return fmt.Errorf("failed to write chart to %s: %w", cfg.OutputFile, err)
	}
	log.Info().Str("file", cfg.OutputFile).Int("buckets", len(result.Dates)).Msg("Chart written")

	summary := report.Render(report.Summary{
		Result:        result,
		Completion:    forecast.EstimateCompletion(result, now),
		TargetRelease: cfg.TargetReleaseDate,
		Start:         cfg.StartDate,
	})
	fmt.Println(summary)

	if openChart {
		if err := browser.OpenFile(cfg.OutputFile); err != nil {
			log.Warn().Err(err).Str("file", cfg.OutputFile).Msg("Could not open chart file")
		}
	}
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().BoolVar(&openChart, "open", false, "open the generated chart file after writing it")
	rootCmd.AddCommand(serveCmd)
}
