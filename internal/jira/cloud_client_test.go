package jira

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewCloudClient(Config{
		BaseURL:      srv.URL,
		Username:     "user@example.com",
		APIToken:     "token",
		RequestDelay: time.Millisecond,
	})
	return client, srv
}

func TestCloudClientSearchIssues(t *testing.T) {
	var hits int32
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)

		if r.URL.Path != "/rest/api/3/search/jql" {
			t.Errorf("path = %q, want /rest/api/3/search/jql", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user@example.com" || pass != "token" {
			t.Errorf("basic auth = %q/%q ok=%v", user, pass, ok)
		}
		q := r.URL.Query()
		if q.Get("jql") == "" || q.Get("startAt") != "0" || q.Get("maxResults") != "50" {
			t.Errorf("unexpected query: %v", q)
		}
		if !strings.Contains(q.Get("fields"), "created") {
			t.Errorf("fields param = %q, want created included", q.Get("fields"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":1,"issues":[{"key":"PRJ-1","fields":{"customfield_10016":5,"created":"2026-01-03"}}]}`))
	}))

	resp, err := client.SearchIssues(`project = "PRJ"`, 0, 50, []string{"created", "customfield_10016"})
	if err != nil {
		t.Fatalf("SearchIssues() error = %v", err)
	}
	if resp.Total != 1 || len(resp.Issues) != 1 || resp.Issues[0].Key != "PRJ-1" {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Identical request is served from the session cache.
	if _, err := client.SearchIssues(`project = "PRJ"`, 0, 50, []string{"created", "customfield_10016"}); err != nil {
		t.Fatalf("cached SearchIssues() error = %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("server hits = %d, want 1 (second call cached)", hits)
	}
}

func TestCloudClientVelocityEndpoint(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/greenhopper/1.0/rapid/charts/velocity" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("rapidViewId") != "7" {
			t.Errorf("rapidViewId = %q, want 7", r.URL.Query().Get("rapidViewId"))
		}
		w.Write([]byte(`{"velocityStatEntries":{"1":{"estimated":{"value":22},"completed":{"value":20}}}}`))
	}))

	resp, err := client.GetVelocity(7)
	if err != nil {
		t.Fatalf("GetVelocity() error = %v", err)
	}
	entry, ok := resp.VelocityStatEntries["1"]
	if !ok || entry.Completed.Value != 20 {
		t.Errorf("unexpected velocity response: %+v", resp)
	}
}

func TestCloudClientErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		headers    map[string]string
		wantSubstr string
	}{
		{"Unauthorized", http.StatusUnauthorized, nil, "authentication failed"},
		{"Forbidden", http.StatusForbidden, nil, "authentication failed"},
		{"RateLimited", http.StatusTooManyRequests, map[string]string{"Retry-After": "30"}, "Retry after 30"},
		{"NotFound", http.StatusNotFound, nil, "not found"},
		{"ServerError", http.StatusBadGateway, nil, "status 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}))

			_, err := client.ListFields()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}
