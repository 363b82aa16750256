package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"time"

	"github.com/btvapps/timelogr/internal/timelog"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// Record is one row pushed into the destination table.
type Record struct {
	Fields Fields `json:"fields"`
}

// Fields follows the fixed schema of the destination table.
type Fields struct {
	TeamMember   string `json:"Team Member"`
	Project      string `json:"Project"`
	ProjectTasks string `json:"Project Tasks"`
	StartTime    string `json:"Start Time"`
	EndTime      string `json:"End Time"`
	Notes        string `json:"Notes"`
}

// projectPattern matches the leading project code of an issue title,
// e.g. "APP-123" or "BTV_WEB".
var projectPattern = regexp.MustCompile(`^([A-Z]+[-_][A-Z0-9]+)`)

// Transform flattens one user's entries into table rows. Each row gets
// a synthetic 09:00-17:00 window on its entry's date; the actual time
// spent goes into the notes.
func Transform(data *timelog.Data, selectedUser string) []Record {
	dates := make([]string, 0, len(data.Groups))
	for date := range data.Groups {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var records []Record
	for _, date := range dates {
		for _, entry := range data.Groups[date] {
			if entry.UserName != selectedUser {
				continue
			}
			records = append(records, Record{Fields: Fields{
				TeamMember:   entry.UserName,
				Project:      projectFromTitle(entry.IssueTitle),
				ProjectTasks: entry.IssueTitle,
				StartTime:    date + "T09:00:00.000Z",
				EndTime:      date + "T17:00:00.000Z",
				Notes: fmt.Sprintf("%s\n\nTime Spent: %s\nIssue: %s",
					entry.Summary, entry.TimeSpent, entry.IssueWebURL),
			}})
		}
	}
	return records
}

func projectFromTitle(title string) string {
	if code := projectPattern.FindString(title); code != "" {
		return code
	}
	return "General"
}

// Client pushes aggregated rows into an Airtable table.
type Client struct {
	// BaseURL is overridable for tests.
	BaseURL    string
	token      string
	baseID     string
	tableName  string
	httpClient *http.Client
}

func NewClient(token, baseID, tableName string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		token:      token,
		baseID:     baseID,
		tableName:  tableName,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type createResponse struct {
	Records []json.RawMessage `json:"records"`
}

// Export creates the records and returns how many the API reports as
// created.
func (c *Client) Export(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: no records found for the selected user", timelog.ErrInvalidInput)
	}

	body, err := json.Marshal(map[string]any{"records": records})
	if err != nil {
		return 0, fmt.Errorf("marshaling records: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.BaseURL, c.baseID, url.PathEscape(c.tableName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: airtable status %d: %s", timelog.ErrUpstreamStatus, resp.StatusCode, string(respBody))
	}

	var parsed createResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return len(parsed.Records), nil
}
