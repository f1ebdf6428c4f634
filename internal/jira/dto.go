package jira

import (
	"encoding/json"
	"time"
)

// SearchResponse is the top-level container for Jira search results.
type SearchResponse struct {
	Total  int        `json:"total"`
	Issues []IssueDTO `json:"issues"`
}

// IssueDTO represents a single issue in the Jira search response.
// Fields stays raw because story-point estimates live in per-instance
// custom fields whose keys are only known at runtime.
type IssueDTO struct {
	ID     string                     `json:"id"`
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// StatusDTO is the embedded status object inside an issue's fields.
type StatusDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldDefinitionDTO describes one entry in the /rest/api/3/field listing.
type FieldDefinitionDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// BoardDTO is a single Agile board.
type BoardDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// FindBoardsResponse is used for the board search API.
type FindBoardsResponse struct {
	Values []BoardDTO `json:"values"`
}

// SprintDTO is a single sprint from the Agile API.
type SprintDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SprintsResponse wraps the paginated sprint listing.
type SprintsResponse struct {
	Values []SprintDTO `json:"values"`
}

// VelocityResponse mirrors the greenhopper velocity chart payload.
// Entries are keyed by sprint ID.
type VelocityResponse struct {
	VelocityStatEntries map[string]VelocityStatEntry `json:"velocityStatEntries"`
}

// VelocityStatEntry holds the estimated and completed figures for one sprint.
type VelocityStatEntry struct {
	Estimated VelocityValue `json:"estimated"`
	Completed VelocityValue `json:"completed"`
}

// VelocityValue is a single numeric velocity figure.
type VelocityValue struct {
	Value float64 `json:"value"`
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02",
}

// ParseTime parses the timestamp formats Jira emits: the strict issue-field
// format, RFC3339 (sprint dates), and bare dates.
func ParseTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
