package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/btvapps/timelogr/internal/timelog"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes two files: the flat entry list and a per-user totals
// dashboard.
func (e *CSVExporter) Export(data *timelog.Data, selectedDates []string) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if err := e.exportEntryList(data, selectedDates, timestamp); err != nil {
		return fmt.Errorf("failed to export entry list: %w", err)
	}

	if err := e.exportTotals(data, timestamp); err != nil {
		return fmt.Errorf("failed to export totals: %w", err)
	}

	return nil
}

func (e *CSVExporter) exportEntryList(data *timelog.Data, selectedDates []string, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("timelogs_%s_entries.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"#",
		"Date",
		"Team Member",
		"Issue",
		"Time Spent",
		"Summary",
		"Issue URL",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	i := 0
	for _, date := range selectedDates {
		for _, entry := range data.Groups[date] {
			i++
			row := []string{
				fmt.Sprintf("%d", i),
				date,
				entry.UserName,
				entry.IssueTitle,
				entry.TimeSpent,
				entry.Summary,
				entry.IssueWebURL,
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *CSVExporter) exportTotals(data *timelog.Data, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("timelogs_%s_totals.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Team Member", "Total Time", "Total Seconds"}); err != nil {
		return err
	}

	users := make([]string, 0, len(data.Totals))
	for user := range data.Totals {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		seconds := data.Totals[user]
		total, err := timelog.FormatDuration(seconds)
		if err != nil {
			return err
		}
		row := []string{user, total, fmt.Sprintf("%d", seconds)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}
