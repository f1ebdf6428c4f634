package jira

import (
	"golang.org/x/sync/errgroup"
)

// GatherInputs fetches the version's work items and the board velocity
// statistics concurrently. Velocity measurement is best-effort and never
// fails the gather; a zero VelocityStats simply means no usable sprint
// history was found.
func GatherInputs(client Client, projectKey, versionName, pointsField, fallbackField string, boardID int) ([]WorkItem, int, VelocityStats, error) {
	var (
		items   []WorkItem
		skipped int
		stats   VelocityStats
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		items, skipped, err = FetchVersionItems(client, projectKey, versionName, pointsField, fallbackField)
		return err
	})
	g.Go(func() error {
		stats = MeasureVelocity(client, projectKey, boardID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, VelocityStats{}, err
	}
	return items, skipped, stats, nil
}
