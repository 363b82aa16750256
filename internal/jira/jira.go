package jira

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/btvapps/timelogr/internal/timelog"
)

// Source adapts Jira worklogs to the canonical pipeline shape. Each
// requested date runs its own JQL search followed by per-issue worklog
// fetches, all sequential.
type Source struct {
	Client *Client
	loc    *time.Location
	logger *slog.Logger
}

// NewSource builds the Jira adapter.
func NewSource(baseURL, email, token string, loc *time.Location, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		Client: NewClient(baseURL, email, token),
		loc:    loc,
		logger: logger,
	}
}

var _ timelog.Source = (*Source)(nil)

func (s *Source) Name() string {
	return "Jira"
}

// Fetch processes each requested date independently. A failed issue
// search aborts the whole fetch; a failed per-issue worklog fetch only
// skips that issue.
func (s *Source) Fetch(ctx context.Context, acc *timelog.Accumulator, targetDates []string) error {
	for _, date := range targetDates {
		if err := s.fetchDate(ctx, acc, date); err != nil {
			return err
		}
	}
	return nil
}

// fetchDate searches issues with a worklog on date, then pulls each
// matched issue's worklogs. The search is done when a page comes back
// short; a final page that exactly fills pageSize costs one extra
// request that returns zero issues.
func (s *Source) fetchDate(ctx context.Context, acc *timelog.Accumulator, date string) error {
	startAt := 0
	for {
		issues, err := s.Client.SearchWorklogDate(ctx, date, startAt)
		if err != nil {
			return fmt.Errorf("searching issues for %s: %w", date, err)
		}

		for _, issue := range issues {
			if err := s.collectIssue(ctx, acc, date, issue); err != nil {
				return err
			}
		}

		startAt += len(issues)
		if len(issues) < pageSize {
			return nil
		}
	}
}

// collectIssue fetches one issue's worklogs and feeds the matching ones
// to the accumulator. A failed worklog fetch records a warning and skips
// the issue; the rest of the date continues.
func (s *Source) collectIssue(ctx context.Context, acc *timelog.Accumulator, date string, issue Issue) error {
	worklogs, err := s.Client.IssueWorklogs(ctx, issue.Key)
	if err != nil {
		s.logger.Warn("skipping issue, worklog fetch failed", "issue", issue.Key, "error", err)
		acc.Warn(fmt.Sprintf("worklogs for %s could not be fetched", issue.Key))
		return nil
	}

	for _, wl := range worklogs {
		workDate, err := timelog.WorkDate(wl.Started, s.loc)
		if err != nil {
			s.logger.Warn("skipping worklog with bad started timestamp",
				"issue", issue.Key, "started", wl.Started, "error", err)
			continue
		}

		// The search matches issues with any worklog on the date; each
		// entry still has to land on the batch date itself, otherwise
		// batches for other requested dates would count it twice.
		if workDate != date {
			continue
		}

		if err := acc.Add(timelog.Record{
			Date:        workDate,
			UserName:    wl.Author.DisplayName,
			Seconds:     wl.TimeSpentSeconds,
			IssueTitle:  fmt.Sprintf("%s: %s", issue.Key, issue.Fields.Summary),
			Summary:     ExtractCommentText(wl.Comment),
			IssueWebURL: s.Client.BrowseURL(issue.Key),
		}); err != nil {
			return err
		}
	}
	return nil
}
