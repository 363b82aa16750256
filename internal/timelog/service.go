package timelog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Request is the inbound aggregation request shape.
type Request struct {
	TargetDates   []string `json:"targetDates"`
	SelectedUsers []string `json:"selectedUsers"`
	DataSource    string   `json:"dataSource"`
}

var knownSources = map[string]bool{
	"gitlab": true,
	"jira":   true,
}

// Service validates aggregation requests and dispatches them to the
// registered sources.
type Service struct {
	sources map[string]Source
	logger  *slog.Logger
}

// NewService builds a Service over the configured sources, keyed by
// their dataSource selector ("gitlab", "jira").
func NewService(logger *slog.Logger, sources map[string]Source) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sources: sources, logger: logger}
}

// Fetch validates the request, dispatches to the matching source, and
// returns the aggregate result. Every requested date is present in the
// result's groups even when nothing matched.
func (s *Service) Fetch(ctx context.Context, req Request) (*Data, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	src, ok := s.sources[req.DataSource]
	if !ok {
		// Known selector with no registered source means the
		// credentials for it were never configured.
		if knownSources[req.DataSource] {
			return nil, fmt.Errorf("%w: %s source is not configured", ErrConfigMissing, req.DataSource)
		}
		return nil, fmt.Errorf("%w: unknown dataSource %q", ErrInvalidInput, req.DataSource)
	}

	s.logger.Info("fetching timelogs",
		"source", src.Name(),
		"dates", len(req.TargetDates),
		"users", len(req.SelectedUsers),
	)

	acc := NewAccumulator(req.TargetDates, req.SelectedUsers)
	if err := src.Fetch(ctx, acc, req.TargetDates); err != nil {
		s.logger.Error("fetch failed", "source", src.Name(), "error", err)
		return nil, fmt.Errorf("fetching from %s: %w", src.Name(), err)
	}

	data := acc.Result()
	s.logger.Info("fetch complete",
		"source", src.Name(),
		"users", len(data.Totals),
		"warnings", len(data.Warnings),
	)
	return data, nil
}

func validate(req Request) error {
	if len(req.TargetDates) == 0 {
		return fmt.Errorf("%w: targetDates must not be empty", ErrInvalidInput)
	}
	for _, d := range req.TargetDates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("%w: malformed target date %q", ErrInvalidInput, d)
		}
	}
	if len(req.SelectedUsers) == 0 {
		return fmt.Errorf("%w: selectedUsers must not be empty", ErrInvalidInput)
	}
	if req.DataSource == "" {
		return fmt.Errorf("%w: dataSource must be set", ErrInvalidInput)
	}
	return nil
}
