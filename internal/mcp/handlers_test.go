package mcp

import (
	"fmt"
	"strings"
	"testing"

	"jira-burnup/internal/config"
	"jira-burnup/internal/jira"
)

type stubClient struct {
	boards    []jira.BoardDTO
	boardsErr error
	velocity  map[int]*jira.VelocityResponse
}

func (s *stubClient) SearchIssues(jql string, startAt, maxResults int, fields []string) (*jira.SearchResponse, error) {
	return &jira.SearchResponse{}, nil
}

func (s *stubClient) ListFields() ([]jira.FieldDefinitionDTO, error) {
	return nil, nil
}

func (s *stubClient) FindBoards(projectKey string) ([]jira.BoardDTO, error) {
	return s.boards, s.boardsErr
}

func (s *stubClient) GetVelocity(boardID int) (*jira.VelocityResponse, error) {
	if v, ok := s.velocity[boardID]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no velocity for board %d", boardID)
}

func (s *stubClient) GetClosedSprints(boardID int) ([]jira.SprintDTO, error) {
	return nil, nil
}

func testServer(client jira.Client) *Server {
	return NewServer(&config.AppConfig{ProjectKey: "PRJ", VersionName: "1.0"}, client)
}

func TestHandleFindBoards(t *testing.T) {
	s := testServer(&stubClient{boards: []jira.BoardDTO{{ID: 7, Name: "PRJ board", Type: "scrum"}}})

	text, err := s.handleFindBoards(map[string]interface{}{})
	if err != nil {
		t.Fatalf("handleFindBoards() error = %v", err)
	}
	if !strings.Contains(text, "PRJ board") {
		t.Errorf("output missing board name: %s", text)
	}
}

func TestHandleFindBoardsNoProject(t *testing.T) {
	s := NewServer(&config.AppConfig{}, &stubClient{})

	if _, err := s.handleFindBoards(map[string]interface{}{}); err == nil {
		t.Error("expected an error without a project key")
	}
}

func TestHandleMeasureVelocity(t *testing.T) {
	s := testServer(&stubClient{
		boards: []jira.BoardDTO{{ID: 7}},
		velocity: map[int]*jira.VelocityResponse{
			7: {VelocityStatEntries: map[string]jira.VelocityStatEntry{
				"1": {Completed: jira.VelocityValue{Value: 20}},
				"2": {Completed: jira.VelocityValue{Value: 24}},
			}},
		},
	})

	text, err := s.handleMeasureVelocity(map[string]interface{}{})
	if err != nil {
		t.Fatalf("handleMeasureVelocity() error = %v", err)
	}
	if !strings.Contains(text, `"Mean": 22`) {
		t.Errorf("output missing mean velocity: %s", text)
	}
}

func TestHandleMeasureVelocityNoData(t *testing.T) {
	s := testServer(&stubClient{boards: []jira.BoardDTO{{ID: 7}}})

	if _, err := s.handleMeasureVelocity(map[string]interface{}{}); err == nil {
		t.Error("expected an error when no board has velocity data")
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"project_key": "OTHER",
		"board_id":    float64(42),
		"empty":       "",
	}

	if got := stringArg(args, "project_key", "PRJ"); got != "OTHER" {
		t.Errorf("stringArg override = %q, want OTHER", got)
	}
	if got := stringArg(args, "missing", "PRJ"); got != "PRJ" {
		t.Errorf("stringArg fallback = %q, want PRJ", got)
	}
	if got := stringArg(args, "empty", "PRJ"); got != "PRJ" {
		t.Errorf("stringArg empty = %q, want fallback PRJ", got)
	}
	if got := intArg(args, "board_id", 0); got != 42 {
		t.Errorf("intArg = %d, want 42", got)
	}
	if got := intArg(args, "missing", 9); got != 9 {
		t.Errorf("intArg fallback = %d, want 9", got)
	}
}

func TestListToolsNames(t *testing.T) {
	s := testServer(&stubClient{})

	tools := s.listTools().(map[string]interface{})["tools"].([]interface{})
	var names []string
	for _, tool := range tools {
		names = append(names, tool.(map[string]interface{})["name"].(string))
	}

	want := []string{"find_boards", "measure_velocity", "generate_burnup_chart"}
	if len(names) != len(want) {
		t.Fatalf("tool names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tool %d = %q, want %q", i, names[i], want[i])
		}
	}
}
