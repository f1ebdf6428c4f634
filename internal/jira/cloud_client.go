package jira

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type cloudClient struct {
	cfg        Config
	httpClient *http.Client

	// Throttle state; guarded because issue search and velocity
	// measurement run concurrently.
	lastRequest   time.Time
	throttleMutex sync.Mutex

	// Session Cache
	cache      map[string]*cacheEntry
	cacheMutex sync.Mutex
}

type cacheEntry struct {
	Value       interface{}
	Expiration  time.Time
	AccessCount int
	OriginalTTL time.Duration
}

// NewCloudClient creates a client for Jira Cloud using basic auth
// (email + API token).
func NewCloudClient(cfg Config) Client {
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 1 * time.Second
	}
	return &cloudClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		cache: make(map[string]*cacheEntry),
	}
}

func (c *cloudClient) getFromCache(key string) (interface{}, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Cache hit")

	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		return nil, false
	}

	// Sliding window extension
	if entry.AccessCount < 6 {
		entry.Expiration = time.Now().Add(entry.OriginalTTL)
		entry.AccessCount++
		log.Trace().Str("key", key).Int("count", entry.AccessCount).Msg("Extended cache TTL")
	}

	return entry.Value, true
}

func (c *cloudClient) addToCache(key string, value interface{}, ttl time.Duration) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[key] = &cacheEntry{
		Value:       value,
		Expiration:  time.Now().Add(ttl),
		OriginalTTL: ttl,
		AccessCount: 1,
	}
	log.Debug().Str("key", key).Dur("ttl", ttl).Msg("Added to cache")
}

func (c *cloudClient) throttle(isMetadata bool) {
	c.throttleMutex.Lock()
	defer c.throttleMutex.Unlock()

	// Metadata requests (fields, boards, sprints) are allowed to "burst"
	// sequentially to avoid artificial delay during the setup phase.
	if isMetadata {
		c.lastRequest = time.Now()
		return
	}

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling Jira request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *cloudClient) get(rawURL string, isMetadata bool, out interface{}) error {
	c.throttle(isMetadata)

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("Jira authentication failed (401/403). Please check JIRA_USERNAME and JIRA_API_TOKEN.")
		case http.StatusTooManyRequests:
			retryAfter := resp.Header.Get("Retry-After")
			if retryAfter != "" {
				return fmt.Errorf("Jira rate limit exceeded (429). Retry after %s seconds.", retryAfter)
			}
			return fmt.Errorf("Jira rate limit exceeded (429).")
		case http.StatusNotFound:
			return fmt.Errorf("Jira resource not found (404): %s", rawURL)
		default:
			return fmt.Errorf("Jira API returned status %d. Please check Jira availability.", resp.StatusCode)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Jira response: %w", err)
	}
	return nil
}

func (c *cloudClient) SearchIssues(jql string, startAt int, maxResults int, fields []string) (*SearchResponse, error) {
	cacheKey := fmt.Sprintf("search:%s:%d:%d:%s", jql, startAt, maxResults, strings.Join(fields, ","))
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.(*SearchResponse), nil
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("startAt", fmt.Sprintf("%d", startAt))
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}

	searchURL := fmt.Sprintf("%s/rest/api/3/search/jql?%s", c.cfg.BaseURL, params.Encode())
	log.Info().Msg("Requesting issues from Jira")
	log.Debug().Str("url", searchURL).Str("jql", jql).Msg("Jira search details")

	var result SearchResponse
	if err := c.get(searchURL, false, &result); err != nil {
		return nil, err
	}

	c.addToCache(cacheKey, &result, 10*time.Minute)
	return &result, nil
}

func (c *cloudClient) ListFields() ([]FieldDefinitionDTO, error) {
	cacheKey := "fields"
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]FieldDefinitionDTO), nil
	}

	fieldsURL := fmt.Sprintf("%s/rest/api/3/field", c.cfg.BaseURL)

	var defs []FieldDefinitionDTO
	if err := c.get(fieldsURL, true, &defs); err != nil {
		return nil, err
	}

	c.addToCache(cacheKey, defs, 30*time.Minute)
	return defs, nil
}

func (c *cloudClient) FindBoards(projectKey string) ([]BoardDTO, error) {
	cacheKey := "boards:" + projectKey
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]BoardDTO), nil
	}

	params := url.Values{}
	if projectKey != "" {
		params.Set("projectKeyOrId", projectKey)
	}
	params.Set("maxResults", "50")

	boardsURL := fmt.Sprintf("%s/rest/agile/1.0/board?%s", c.cfg.BaseURL, params.Encode())

	var result FindBoardsResponse
	if err := c.get(boardsURL, true, &result); err != nil {
		return nil, err
	}

	c.addToCache(cacheKey, result.Values, 5*time.Minute)
	return result.Values, nil
}

func (c *cloudClient) GetVelocity(boardID int) (*VelocityResponse, error) {
	cacheKey := fmt.Sprintf("velocity:%d", boardID)
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.(*VelocityResponse), nil
	}

	velocityURL := fmt.Sprintf("%s/rest/greenhopper/1.0/rapid/charts/velocity?rapidViewId=%d", c.cfg.BaseURL, boardID)

	var result VelocityResponse
	if err := c.get(velocityURL, false, &result); err != nil {
		return nil, err
	}

	c.addToCache(cacheKey, &result, 5*time.Minute)
	return &result, nil
}

func (c *cloudClient) GetClosedSprints(boardID int) ([]SprintDTO, error) {
	cacheKey := fmt.Sprintf("sprints:%d", boardID)
	if val, ok := c.getFromCache(cacheKey); ok {
		return val.([]SprintDTO), nil
	}

	params := url.Values{}
	params.Set("state", "closed")

	sprintsURL := fmt.Sprintf("%s/rest/agile/1.0/board/%d/sprint?%s", c.cfg.BaseURL, boardID, params.Encode())

	var result SprintsResponse
	if err := c.get(sprintsURL, true, &result); err != nil {
		return nil, err
	}

	c.addToCache(cacheKey, result.Values, 5*time.Minute)
	return result.Values, nil
}
