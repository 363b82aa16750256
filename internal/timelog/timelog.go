package timelog

import "strings"

// NoDescription is the sentinel used when a timelog has no usable summary.
const NoDescription = "No description"

// Entry is one unit of logged work in the canonical, source-agnostic shape.
type Entry struct {
	IssueTitle  string `json:"issueTitle"`
	Summary     string `json:"summary"`
	TimeSpent   string `json:"timeSpent"`
	UserName    string `json:"userName"`
	IssueWebURL string `json:"issueWebUrl"`
}

// Groups maps a YYYY-MM-DD date to the entries discovered for that day.
// Every requested date is present as a key, even when no entries matched.
type Groups map[string][]Entry

// UserTotals maps a user's display name to cumulative seconds logged
// across all requested dates.
type UserTotals map[string]int

// Data is the aggregate result of one fetch. It is built fresh per
// request and never mutated after being returned.
type Data struct {
	Groups   Groups     `json:"timelogGroups"`
	Totals   UserTotals `json:"userTotals"`
	Warnings []string   `json:"warnings,omitempty"`
}

// Sanitize escapes quotes and collapses newlines so a summary survives
// downstream text serialization. Empty input becomes NoDescription.
func Sanitize(summary string) string {
	if summary == "" {
		summary = NoDescription
	}
	return escapeText(summary)
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
