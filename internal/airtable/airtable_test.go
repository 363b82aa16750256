package airtable

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btvapps/timelogr/internal/timelog"
)

func sampleData() *timelog.Data {
	return &timelog.Data{
		Groups: timelog.Groups{
			"2024-01-10": []timelog.Entry{
				{
					IssueTitle:  "APP-1: Fix login",
					Summary:     "reworked the session check",
					TimeSpent:   "00:30:00",
					UserName:    "daniel",
					IssueWebURL: "https://example.com/APP-1",
				},
				{
					IssueTitle:  "Tidy the backlog",
					Summary:     "No description",
					TimeSpent:   "00:15:00",
					UserName:    "daniel",
					IssueWebURL: "https://example.com/APP-3",
				},
				{
					IssueTitle:  "APP-2: Update docs",
					Summary:     "No description",
					TimeSpent:   "01:00:00",
					UserName:    "niko",
					IssueWebURL: "https://example.com/APP-2",
				},
			},
		},
		Totals: timelog.UserTotals{"daniel": 2700, "niko": 3600},
	}
}

func TestTransform(t *testing.T) {
	records := Transform(sampleData(), "daniel")
	require.Len(t, records, 2)

	first := records[0].Fields
	assert.Equal(t, "daniel", first.TeamMember)
	assert.Equal(t, "APP-1", first.Project)
	assert.Equal(t, "APP-1: Fix login", first.ProjectTasks)
	assert.Equal(t, "2024-01-10T09:00:00.000Z", first.StartTime)
	assert.Equal(t, "2024-01-10T17:00:00.000Z", first.EndTime)
	assert.Contains(t, first.Notes, "reworked the session check")
	assert.Contains(t, first.Notes, "Time Spent: 00:30:00")
	assert.Contains(t, first.Notes, "https://example.com/APP-1")

	// No leading project code falls back to General.
	assert.Equal(t, "General", records[1].Fields.Project)
}

func TestTransform_NoMatchingUser(t *testing.T) {
	assert.Empty(t, Transform(sampleData(), "nobody"))
}

func TestClient_Export(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/base123/Work%20Log", r.URL.EscapedPath())
		assert.Equal(t, "Bearer pat-token", r.Header.Get("Authorization"))

		var req struct {
			Records []Record `json:"records"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Records, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"records": []map[string]any{{"id": "rec1"}, {"id": "rec2"}},
		})
	}))
	defer srv.Close()

	client := NewClient("pat-token", "base123", "Work Log")
	client.BaseURL = srv.URL

	created, err := client.Export(context.Background(), Transform(sampleData(), "daniel"))
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestClient_Export_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"INVALID_REQUEST"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := NewClient("pat-token", "base123", "Work Log")
	client.BaseURL = srv.URL

	_, err := client.Export(context.Background(), Transform(sampleData(), "daniel"))
	assert.ErrorIs(t, err, timelog.ErrUpstreamStatus)
}

func TestClient_Export_NoRecords(t *testing.T) {
	client := NewClient("pat-token", "base123", "Work Log")
	_, err := client.Export(context.Background(), nil)
	assert.ErrorIs(t, err, timelog.ErrInvalidInput)
}
