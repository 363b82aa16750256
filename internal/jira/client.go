package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/btvapps/timelogr/internal/timelog"
)

// pageSize is the fixed maxResults used for JQL searches.
const pageSize = 100

// Client talks to the Jira Cloud REST API using basic auth. The
// email:token pair is base64-encoded once at construction, not per call.
type Client struct {
	baseURL    string
	auth       string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client for one Jira site.
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		auth:       base64.StdEncoding.EncodeToString([]byte(email + ":" + token)),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
}

// Issue is one hit from the JQL search, trimmed to the fields requested.
type Issue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
	} `json:"fields"`
}

type searchResponse struct {
	Issues []Issue `json:"issues"`
}

// SearchWorklogDate returns one offset page of issues that have at least
// one worklog on the given date. A page shorter than the fixed page size
// means the search is exhausted.
func (c *Client) SearchWorklogDate(ctx context.Context, date string, startAt int) ([]Issue, error) {
	jql := fmt.Sprintf("worklogDate = %q", date)
	u := fmt.Sprintf("%s/rest/api/3/search/jql?jql=%s&fields=key,summary&startAt=%d&maxResults=%d",
		c.baseURL, url.QueryEscape(jql), startAt, pageSize)

	var parsed searchResponse
	if err := c.get(ctx, u, &parsed); err != nil {
		return nil, err
	}
	return parsed.Issues, nil
}

// Worklog is one logged unit of time on an issue. The comment is kept
// raw because Jira delivers either a bare string or an ADF document.
type Worklog struct {
	Started          string          `json:"started"`
	TimeSpentSeconds int             `json:"timeSpentSeconds"`
	Comment          json.RawMessage `json:"comment"`
	Author           struct {
		DisplayName string `json:"displayName"`
	} `json:"author"`
}

type worklogResponse struct {
	Worklogs []Worklog `json:"worklogs"`
}

// IssueWorklogs fetches the full worklog list for an issue. The endpoint
// has no cursor; all entries arrive in a single response.
func (c *Client) IssueWorklogs(ctx context.Context, key string) ([]Worklog, error) {
	u := fmt.Sprintf("%s/rest/api/3/issue/%s/worklog", c.baseURL, url.PathEscape(key))

	var parsed worklogResponse
	if err := c.get(ctx, u, &parsed); err != nil {
		return nil, err
	}
	return parsed.Worklogs, nil
}

// BrowseURL returns the human-facing link for an issue key.
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: jira status %d: %s", timelog.ErrUpstreamStatus, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
