package jira

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const searchPageSize = 100

// FetchVersionItems retrieves every issue attached to a fix version and
// normalizes them into WorkItems. Issues without a usable estimate or
// creation date are dropped; the second return value counts them.
func FetchVersionItems(client Client, projectKey, versionName, pointsField, fallbackField string) ([]WorkItem, int, error) {
	jql := fmt.Sprintf("project = %q AND fixVersion = %q", projectKey, versionName)

	fields := []string{"created", "status", "resolutiondate", pointsField}
	if fallbackField != "" {
		fields = append(fields, fallbackField)
	}

	var items []WorkItem
	skipped := 0
	startAt := 0

	for {
		page, err := client.SearchIssues(jql, startAt, searchPageSize, fields)
		if err != nil {
			return nil, 0, fmt.Errorf("issue search failed: %w", err)
		}

		for _, dto := range page.Issues {
			item, ok := MapWorkItem(dto, pointsField, fallbackField)
			if !ok {
				skipped++
				continue
			}
			items = append(items, item)
		}

		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total {
			break
		}
	}

	log.Info().
		Int("items", len(items)).
		Int("skipped", skipped).
		Str("project", projectKey).
		Str("version", versionName).
		Msg("Fetched work items")

	return items, skipped, nil
}

// ResolvePointsField turns a field name like "Story Points" into its custom
// field ID by consulting the field definitions. IDs pass through untouched,
// and unresolvable names fall back to the input so the engine can still run
// (yielding estimate-less items rather than a hard failure).
func ResolvePointsField(client Client, nameOrID string) string {
	if nameOrID == "" || strings.HasPrefix(nameOrID, "customfield_") {
		return nameOrID
	}

	defs, err := client.ListFields()
	if err != nil {
		log.Warn().Err(err).Str("field", nameOrID).Msg("Field listing failed, using value as-is")
		return nameOrID
	}

	for _, def := range defs {
		if strings.EqualFold(def.Name, nameOrID) {
			log.Debug().Str("name", nameOrID).Str("id", def.ID).Msg("Resolved points field")
			return def.ID
		}
	}

	log.Warn().Str("field", nameOrID).Msg("Points field not found in field definitions")
	return nameOrID
}
