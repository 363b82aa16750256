package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/btvapps/timelogr/internal/timelog"
)

// TextBuilder renders shareable report text from aggregated timelogs.
// The alias map is injected; raw names without an alias fall back to a
// title-cased form of the source name.
type TextBuilder struct {
	aliases map[string]string
	titler  cases.Caser
}

func NewTextBuilder(aliases map[string]string) *TextBuilder {
	return &TextBuilder{
		aliases: aliases,
		titler:  cases.Title(language.English, cases.NoLower),
	}
}

// DisplayName maps a raw source username to its friendly alias.
func (b *TextBuilder) DisplayName(raw string) string {
	if name, ok := b.aliases[raw]; ok {
		return name
	}
	return b.titler.String(raw)
}

// BuildReport renders the multi-day share text covering all selected
// dates, grouped per team member.
func (b *TextBuilder) BuildReport(data *timelog.Data, selectedDates []string) string {
	var sb strings.Builder
	sb.WriteString("*DAILY ☀️*\n")

	if len(selectedDates) == 1 {
		sb.WriteString(fmt.Sprintf("What we accomplished on %s:\n\n", europeanDate(selectedDates[0])))
	} else {
		sb.WriteString(fmt.Sprintf("What we accomplished from %s to %s:\n\n",
			europeanDate(selectedDates[0]), europeanDate(selectedDates[len(selectedDates)-1])))
	}

	var entries []timelog.Entry
	for _, date := range selectedDates {
		entries = append(entries, data.Groups[date]...)
	}
	if len(entries) == 0 {
		sb.WriteString(fmt.Sprintf("No time logs found for %s\n", timelog.FormatDateRange(selectedDates)))
		return sb.String()
	}

	sb.WriteString(b.userSections(entries))
	return sb.String()
}

// BuildDayReport renders the share text for a single day.
func (b *TextBuilder) BuildDayReport(data *timelog.Data, date string) string {
	entries := data.Groups[date]
	if len(entries) == 0 {
		return "No time logs found for this day\n"
	}
	return b.userSections(entries)
}

// userSections groups entries per display name in first-seen order and
// renders one block per member.
func (b *TextBuilder) userSections(entries []timelog.Entry) string {
	var order []string
	byUser := make(map[string][]timelog.Entry)
	for _, entry := range entries {
		name := b.DisplayName(entry.UserName)
		if _, ok := byUser[name]; !ok {
			order = append(order, name)
		}
		byUser[name] = append(byUser[name], entry)
	}

	bracketStripper := strings.NewReplacer("[", "", "]", "")

	var sb strings.Builder
	for _, name := range order {
		sb.WriteString(fmt.Sprintf("*%s*\n", name))
		for _, entry := range byUser[name] {
			// Brackets inside the title would break the link markup.
			title := bracketStripper.Replace(entry.IssueTitle)
			sb.WriteString(fmt.Sprintf("  [%s](%s)\n", title, entry.IssueWebURL))
			sb.WriteString(fmt.Sprintf("   %s\n", entry.Summary))
			sb.WriteString(fmt.Sprintf("   *Time spent:* %s\n", entry.TimeSpent))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// europeanDate renders YYYY-MM-DD as DD/MM/YYYY for the share text.
func europeanDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
