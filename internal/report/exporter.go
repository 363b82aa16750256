package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btvapps/timelogr/internal/timelog"
)

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

// ExportJSON writes the raw aggregation result for machine consumers.
func (e *Exporter) ExportJSON(data *timelog.Data, filename string) error {
	encoded, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.OutputDir, filename), encoded, 0644)
}

// ExportText writes a rendered share-text report.
func (e *Exporter) ExportText(text, filename string) error {
	return os.WriteFile(filepath.Join(e.OutputDir, filename), []byte(text), 0644)
}

// Statistics summarizes an aggregation result for display.
func Statistics(data *timelog.Data, selectedDates []string) (map[string]any, error) {
	entryCount := 0
	daysWithData := 0
	for _, date := range selectedDates {
		entries := data.Groups[date]
		entryCount += len(entries)
		if len(entries) > 0 {
			daysWithData++
		}
	}

	totalSeconds := 0
	for _, seconds := range data.Totals {
		totalSeconds += seconds
	}
	totalTime, err := timelog.FormatDuration(totalSeconds)
	if err != nil {
		return nil, fmt.Errorf("summing totals: %w", err)
	}

	return map[string]any{
		"members":    len(data.Totals),
		"entries":    entryCount,
		"days":       daysWithData,
		"total_time": totalTime,
	}, nil
}
