package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"

	"github.com/btvapps/timelogr/internal/api"
	"github.com/btvapps/timelogr/internal/app"
	"github.com/btvapps/timelogr/internal/timelog"
)

// parseCommaList splits a comma-separated string and trims whitespace,
// dropping empty items.
func parseCommaList(input string) []string {
	if input == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}

// printEntryTable renders the fetched entries as a terminal table, one
// row per entry in date order.
func printEntryTable(data *timelog.Data, dates []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Date", "Team Member", "Issue", "Time Spent", "Summary"})

	var rows [][]string
	for _, date := range dates {
		for _, entry := range data.Groups[date] {
			rows = append(rows, []string{
				date,
				entry.UserName,
				truncate(entry.IssueTitle, 45),
				entry.TimeSpent,
				truncate(entry.Summary, 45),
			})
		}
	}

	if err := table.Bulk(rows); err != nil {
		return
	}
	_ = table.Render()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func apiHandler(application *app.Application) http.Handler {
	return api.NewHandler(application.Service, application.Logger).Routes()
}
