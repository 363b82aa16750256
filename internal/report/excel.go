package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/btvapps/timelogr/internal/timelog"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes the aggregation result as a workbook with a Dashboard
// sheet of per-user totals and one sheet per requested date. Returns the
// path of the written file.
func (e *ExcelExporter) Export(data *timelog.Data, selectedDates []string) (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("timelogs_%s.xlsx", timestamp))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.createDashboardSheet(f, "Dashboard", data, selectedDates); err != nil {
		return "", fmt.Errorf("failed to create dashboard: %w", err)
	}

	for _, date := range selectedDates {
		if err := e.createDateSheet(f, date, data.Groups[date]); err != nil {
			return "", fmt.Errorf("failed to create sheet for %s: %w", date, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(filename); err != nil {
		return "", fmt.Errorf("failed to save excel file: %w", err)
	}

	return filename, nil
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, sheetName string, data *timelog.Data, selectedDates []string) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle := newHeaderStyle(f)

	f.SetCellValue(sheetName, "A1", "Dates:")
	f.SetCellValue(sheetName, "B1", timelog.FormatDateRange(selectedDates))

	headers := []string{"Team Member", "Entries", "Total Time"}
	for col, header := range headers {
		cell := cellName(col+1, 3)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	entryCounts := make(map[string]int)
	for _, entries := range data.Groups {
		for _, entry := range entries {
			entryCounts[entry.UserName]++
		}
	}

	users := make([]string, 0, len(data.Totals))
	for user := range data.Totals {
		users = append(users, user)
	}
	sort.Strings(users)

	for i, user := range users {
		row := i + 4
		total, err := timelog.FormatDuration(data.Totals[user])
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cellName(1, row), user)
		f.SetCellValue(sheetName, cellName(2, row), entryCounts[user])
		f.SetCellValue(sheetName, cellName(3, row), total)
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "C", 15)

	return nil
}

func (e *ExcelExporter) createDateSheet(f *excelize.File, date string, entries []timelog.Entry) error {
	index, err := f.NewSheet(date)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle := newHeaderStyle(f)

	headers := []string{"#", "Team Member", "Issue", "Time Spent", "Summary", "Issue URL"}
	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(date, cell, header)
		f.SetCellStyle(date, cell, cell, headerStyle)
	}

	for i, entry := range entries {
		row := i + 2
		f.SetCellValue(date, cellName(1, row), i+1)
		f.SetCellValue(date, cellName(2, row), entry.UserName)
		f.SetCellValue(date, cellName(3, row), entry.IssueTitle)
		f.SetCellValue(date, cellName(4, row), entry.TimeSpent)
		f.SetCellValue(date, cellName(5, row), entry.Summary)
		f.SetCellValue(date, cellName(6, row), entry.IssueWebURL)
	}

	f.SetColWidth(date, "A", "A", 5)
	f.SetColWidth(date, "B", "B", 20)
	f.SetColWidth(date, "C", "C", 50)
	f.SetColWidth(date, "D", "D", 12)
	f.SetColWidth(date, "E", "E", 60)
	f.SetColWidth(date, "F", "F", 40)

	f.SetPanes(date, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func newHeaderStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	return style
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
