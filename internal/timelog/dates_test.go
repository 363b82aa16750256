package timelog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkDate(t *testing.T) {
	utc := time.UTC
	berlin := time.FixedZone("CET", 1*60*60)

	tests := []struct {
		name string
		ts   string
		loc  *time.Location
		want string
	}{
		{"gitlab rfc3339 utc", "2024-01-10T09:30:00Z", utc, "2024-01-10"},
		{"gitlab rfc3339 with offset", "2024-01-10T09:30:00+02:00", utc, "2024-01-10"},
		{"jira millis numeric offset", "2024-02-01T08:15:00.000+0100", utc, "2024-02-01"},
		{"late evening crosses midnight eastward", "2024-01-10T23:30:00Z", berlin, "2024-01-11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WorkDate(tt.ts, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkDate_SameInstantDifferentZones(t *testing.T) {
	// The known bucketing hazard: the same timelog lands on different
	// calendar days depending on the configured zone.
	ts := "2024-01-10T23:30:00Z"

	utcDate, err := WorkDate(ts, time.UTC)
	require.NoError(t, err)
	cetDate, err := WorkDate(ts, time.FixedZone("CET", 3600))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-10", utcDate)
	assert.Equal(t, "2024-01-11", cetDate)
}

func TestWorkDate_Unparseable(t *testing.T) {
	_, err := WorkDate("not a timestamp", time.UTC)
	assert.Error(t, err)
}

func TestDatesToFetch(t *testing.T) {
	// 2024-01-15 is a Monday.
	monday := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-01-12", "2024-01-13", "2024-01-14"}, DatesToFetch(monday))

	// 2024-01-17 is a Wednesday.
	wednesday := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2024-01-16"}, DatesToFetch(wednesday))
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "", FormatDateRange(nil))
	assert.Equal(t, "2024-01-10", FormatDateRange([]string{"2024-01-10"}))
	assert.Equal(t, "2024-01-10 to 2024-01-12", FormatDateRange([]string{"2024-01-10", "2024-01-11", "2024-01-12"}))
}
