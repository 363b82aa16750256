package report

import (
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
					IssueTitle:  "APP-2: Update docs",
					Summary:     "No description",
					TimeSpent:   "01:00:00",
					UserName:    "Tim_Blazic",
					IssueWebURL: "https://example.com/APP-2",
				},
			},
			"2024-01-11": []timelog.Entry{},
		},
		Totals: timelog.UserTotals{"daniel": 1800, "Tim_Blazic": 3600},
	}
}

func TestTextBuilder_DisplayName(t *testing.T) {
	builder := NewTextBuilder(map[string]string{"daniel": "Daniel", "Tim_Blazic": "Tim"})

	assert.Equal(t, "Daniel", builder.DisplayName("daniel"))
	assert.Equal(t, "Tim", builder.DisplayName("Tim_Blazic"))
	// No alias: title-cased fallback.
	assert.Equal(t, "Niko", builder.DisplayName("niko"))
}

func TestTextBuilder_BuildReport_SingleDay(t *testing.T) {
	builder := NewTextBuilder(map[string]string{"daniel": "Daniel", "Tim_Blazic": "Tim"})
	text := builder.BuildReport(sampleData(), []string{"2024-01-10"})

	assert.Contains(t, text, "*DAILY ☀️*\n")
	assert.Contains(t, text, "What we accomplished on 10/01/2024:")
	assert.Contains(t, text, "*Daniel*\n")
	assert.Contains(t, text, "  [APP-1: Fix login](https://example.com/APP-1)\n")
	assert.Contains(t, text, "   reworked the session check\n")
	assert.Contains(t, text, "   *Time spent:* 00:30:00\n")
	assert.Contains(t, text, "*Tim*\n")
}

func TestTextBuilder_BuildReport_DateRangeHeader(t *testing.T) {
	builder := NewTextBuilder(nil)
	text := builder.BuildReport(sampleData(), []string{"2024-01-10", "2024-01-11"})

	assert.Contains(t, text, "What we accomplished from 10/01/2024 to 11/01/2024:")
}

func TestTextBuilder_BuildReport_NoEntries(t *testing.T) {
	builder := NewTextBuilder(nil)
	data := &timelog.Data{
		Groups: timelog.Groups{"2024-01-11": []timelog.Entry{}},
		Totals: timelog.UserTotals{},
	}
	text := builder.BuildReport(data, []string{"2024-01-11"})

	assert.Contains(t, text, "No time logs found for 2024-01-11")
}

func TestTextBuilder_BuildReport_StripsBracketsFromTitles(t *testing.T) {
	builder := NewTextBuilder(nil)
	data := &timelog.Data{
		Groups: timelog.Groups{
			"2024-01-10": []timelog.Entry{{
				IssueTitle:  "[APP-1] Fix [login]",
				Summary:     "done",
				TimeSpent:   "00:15:00",
				UserName:    "daniel",
				IssueWebURL: "https://example.com/APP-1",
			}},
		},
		Totals: timelog.UserTotals{"daniel": 900},
	}
	text := builder.BuildReport(data, []string{"2024-01-10"})

	assert.Contains(t, text, "[APP-1 Fix login](https://example.com/APP-1)")
}

func TestTextBuilder_BuildDayReport(t *testing.T) {
	builder := NewTextBuilder(map[string]string{"daniel": "Daniel"})
	data := sampleData()

	day := builder.BuildDayReport(data, "2024-01-10")
	assert.Contains(t, day, "*Daniel*\n")
	assert.NotContains(t, day, "*DAILY")

	empty := builder.BuildDayReport(data, "2024-01-11")
	assert.Equal(t, "No time logs found for this day\n", empty)
}

func TestStatistics(t *testing.T) {
	stats, err := Statistics(sampleData(), []string{"2024-01-10", "2024-01-11"})
	require.NoError(t, err)

	assert.Equal(t, 2, stats["members"])
	assert.Equal(t, 2, stats["entries"])
	assert.Equal(t, 1, stats["days"])
	assert.Equal(t, "01:30:00", stats["total_time"])
}
