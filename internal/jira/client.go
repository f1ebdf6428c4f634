package jira

import (
	"time"
)

// WorkItem is the normalized view of a Jira issue that the forecasting
// engine consumes. Items that cannot be normalized (no estimate, no
// creation date) never become WorkItems.
type WorkItem struct {
	Key      string
	Points   float64
	Created  time.Time
	Status   string
	Resolved *time.Time
}

// Client is the interface for interacting with Jira.
type Client interface {
	SearchIssues(jql string, startAt int, maxResults int, fields []string) (*SearchResponse, error)
	ListFields() ([]FieldDefinitionDTO, error)
	FindBoards(projectKey string) ([]BoardDTO, error)
	GetVelocity(boardID int) (*VelocityResponse, error)
	GetClosedSprints(boardID int) ([]SprintDTO, error)
}

// Config holds the authentication and connection settings for Jira Cloud.
type Config struct {
	BaseURL  string
	Username string
	APIToken string

	// Performance Settings
	RequestDelay time.Duration
}

// NewClient creates a new Jira client based on the provided configuration.
func NewClient(cfg Config) Client {
	return NewCloudClient(cfg)
}
