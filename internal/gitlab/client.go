package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/btvapps/timelogr/internal/timelog"
)

// pageSize is fixed by the GraphQL query below.
const pageSize = 100

// timelogQuery pulls one cursor page of group timelogs, newest spent-at
// first, with the issue join needed for titles and web URLs.
const timelogQuery = `query($fullPath: ID!, $after: String) {
  group(fullPath: $fullPath) {
    timelogs(first: 100, after: $after, sort: SPENT_AT_DESC) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        id
        timeSpent
        user {
          id
          username
          name
        }
        spentAt
        summary
        issue {
          id
          iid
          projectId
          title
          webUrl
        }
      }
    }
  }
}`

// Client issues GraphQL queries against a GitLab instance.
type Client struct {
	endpoint   string
	token      string
	groupPath  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client for one GraphQL endpoint, authenticated with
// a bearer token and scoped to a single group path.
func NewClient(endpoint, token, groupPath string) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		groupPath:  groupPath,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
}

// Node is one timelog record as returned by the GraphQL API.
type Node struct {
	ID        string `json:"id"`
	TimeSpent int    `json:"timeSpent"`
	User      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
	SpentAt string `json:"spentAt"`
	Summary string `json:"summary"`
	Issue   struct {
		ID        string `json:"id"`
		IID       int    `json:"iid"`
		ProjectID int    `json:"projectId"`
		Title     string `json:"title"`
		WebURL    string `json:"webUrl"`
	} `json:"issue"`
}

// Page is one cursor page of timelogs plus the pagination state needed
// to request the next one.
type Page struct {
	HasNextPage bool
	EndCursor   string
	Nodes       []Node
}

type graphqlError struct {
	Message string `json:"message"`
}

type timelogResponse struct {
	Data struct {
		Group struct {
			Timelogs struct {
				PageInfo struct {
					HasNextPage bool   `json:"hasNextPage"`
					EndCursor   string `json:"endCursor"`
				} `json:"pageInfo"`
				Nodes []Node `json:"nodes"`
			} `json:"timelogs"`
		} `json:"group"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// FetchTimelogPage requests the page of group timelogs after the given
// cursor. An empty cursor requests the first page.
func (c *Client) FetchTimelogPage(ctx context.Context, cursor string) (*Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	vars := map[string]any{"fullPath": c.groupPath}
	if cursor != "" {
		vars["after"] = cursor
	}
	body, err := json.Marshal(map[string]any{
		"query":     timelogQuery,
		"variables": vars,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: gitlab status %d: %s", timelog.ErrUpstreamStatus, resp.StatusCode, string(respBody))
	}

	var parsed timelogResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", timelog.ErrUpstreamProtocol, parsed.Errors[0].Message)
	}

	timelogs := parsed.Data.Group.Timelogs
	return &Page{
		HasNextPage: timelogs.PageInfo.HasNextPage,
		EndCursor:   timelogs.PageInfo.EndCursor,
		Nodes:       timelogs.Nodes,
	}, nil
}
