package timelog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource feeds a fixed record set through the accumulator.
type stubSource struct {
	name    string
	records []Record
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, acc *Accumulator, _ []string) error {
	s.calls++
	if s.err != nil {
		return s.err
	}
	for _, rec := range s.records {
		if err := acc.Add(rec); err != nil {
			return err
		}
	}
	return nil
}

func testService(sources map[string]Source) *Service {
	return NewService(slog.New(slog.DiscardHandler), sources)
}

func TestService_Fetch_Validation(t *testing.T) {
	svc := testService(map[string]Source{"gitlab": &stubSource{name: "GitLab"}})

	tests := []struct {
		name string
		req  Request
	}{
		{"empty dates", Request{SelectedUsers: []string{"alice"}, DataSource: "gitlab"}},
		{"malformed date", Request{TargetDates: []string{"10-01-2024"}, SelectedUsers: []string{"alice"}, DataSource: "gitlab"}},
		{"empty users", Request{TargetDates: []string{"2024-01-10"}, DataSource: "gitlab"}},
		{"missing source", Request{TargetDates: []string{"2024-01-10"}, SelectedUsers: []string{"alice"}}},
		{"unknown source", Request{TargetDates: []string{"2024-01-10"}, SelectedUsers: []string{"alice"}, DataSource: "bitbucket"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Fetch(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Fetch_UnconfiguredKnownSource(t *testing.T) {
	svc := testService(map[string]Source{"gitlab": &stubSource{name: "GitLab"}})

	_, err := svc.Fetch(context.Background(), Request{
		TargetDates:   []string{"2024-01-10"},
		SelectedUsers: []string{"alice"},
		DataSource:    "jira",
	})
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestService_Fetch_DispatchesAndAggregates(t *testing.T) {
	src := &stubSource{
		name: "GitLab",
		records: []Record{
			record("2024-01-10", "alice", 1800),
			record("2024-01-10", "bob", 3600),
		},
	}
	svc := testService(map[string]Source{"gitlab": src})

	data, err := svc.Fetch(context.Background(), Request{
		TargetDates:   []string{"2024-01-10", "2024-01-11"},
		SelectedUsers: []string{"alice"},
		DataSource:    "gitlab",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	require.Len(t, data.Groups, 2)
	require.Len(t, data.Groups["2024-01-10"], 1)
	assert.Empty(t, data.Groups["2024-01-11"])
	assert.Equal(t, UserTotals{"alice": 1800}, data.Totals)
}

func TestService_Fetch_SourceErrorPropagates(t *testing.T) {
	src := &stubSource{name: "GitLab", err: ErrUpstreamStatus}
	svc := testService(map[string]Source{"gitlab": src})

	_, err := svc.Fetch(context.Background(), Request{
		TargetDates:   []string{"2024-01-10"},
		SelectedUsers: []string{"alice"},
		DataSource:    "gitlab",
	})
	assert.ErrorIs(t, err, ErrUpstreamStatus)
}
