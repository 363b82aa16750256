package gitlab

import (
	"context"
	"log/slog"
	"time"

	"github.com/btvapps/timelogr/internal/timelog"
)

// Source adapts GitLab group timelogs to the canonical pipeline shape.
type Source struct {
	Client *Client
	loc    *time.Location
	logger *slog.Logger
}

// NewSource builds the GitLab adapter.
func NewSource(endpoint, token, groupPath string, loc *time.Location, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		Client: NewClient(endpoint, token, groupPath),
		loc:    loc,
		logger: logger,
	}
}

var _ timelog.Source = (*Source)(nil)

func (s *Source) Name() string {
	return "GitLab"
}

// Fetch walks cursor pages until the upstream reports no next page,
// feeding every node through the accumulator's filters. Any page failure
// aborts the whole fetch.
func (s *Source) Fetch(ctx context.Context, acc *timelog.Accumulator, targetDates []string) error {
	cursor := ""
	for {
		page, err := s.Client.FetchTimelogPage(ctx, cursor)
		if err != nil {
			return err
		}
		s.logger.Debug("gitlab page fetched", "nodes", len(page.Nodes), "hasNextPage", page.HasNextPage)

		for _, node := range page.Nodes {
			workDate, err := timelog.WorkDate(node.SpentAt, s.loc)
			if err != nil {
				s.logger.Warn("skipping timelog with bad spentAt",
					"id", node.ID, "spentAt", node.SpentAt, "error", err)
				continue
			}
			if err := acc.Add(timelog.Record{
				Date:        workDate,
				UserName:    node.User.Name,
				Seconds:     node.TimeSpent,
				IssueTitle:  node.Issue.Title,
				Summary:     node.Summary,
				IssueWebURL: node.Issue.WebURL,
			}); err != nil {
				return err
			}
		}

		if !page.HasNextPage {
			return nil
		}
		cursor = page.EndCursor
	}
}
