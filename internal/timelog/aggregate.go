package timelog

// Record is one normalized source row before filtering. Sources emit
// records; the accumulator decides whether they make it into the result.
type Record struct {
	Date        string // YYYY-MM-DD work date in the configured zone
	UserName    string
	Seconds     int
	IssueTitle  string
	Summary     string
	IssueWebURL string
}

// Accumulator buckets canonical entries by work date and keeps running
// per-user second totals. Records outside the requested date or user
// sets are dropped without accumulation.
type Accumulator struct {
	groups   Groups
	totals   UserTotals
	dates    map[string]struct{}
	users    map[string]struct{}
	warnings []string
}

// NewAccumulator pre-populates a group key for every requested date so
// days with no matches still appear in the result.
func NewAccumulator(targetDates, selectedUsers []string) *Accumulator {
	a := &Accumulator{
		groups: make(Groups, len(targetDates)),
		totals: make(UserTotals),
		dates:  make(map[string]struct{}, len(targetDates)),
		users:  make(map[string]struct{}, len(selectedUsers)),
	}
	for _, d := range targetDates {
		a.groups[d] = []Entry{}
		a.dates[d] = struct{}{}
	}
	for _, u := range selectedUsers {
		a.users[u] = struct{}{}
	}
	return a
}

// Add filters a record against the requested date and user sets and,
// when it passes both, appends an entry in discovery order and adds the
// raw seconds to the user's total.
func (a *Accumulator) Add(rec Record) error {
	if _, ok := a.dates[rec.Date]; !ok {
		return nil
	}
	if _, ok := a.users[rec.UserName]; !ok {
		return nil
	}

	spent, err := FormatDuration(rec.Seconds)
	if err != nil {
		return err
	}

	a.groups[rec.Date] = append(a.groups[rec.Date], Entry{
		IssueTitle:  escapeText(rec.IssueTitle),
		Summary:     Sanitize(rec.Summary),
		TimeSpent:   spent,
		UserName:    rec.UserName,
		IssueWebURL: rec.IssueWebURL,
	})
	a.totals[rec.UserName] += rec.Seconds
	return nil
}

// Warn records a non-fatal fetch problem that is surfaced alongside the
// result instead of aborting the aggregation.
func (a *Accumulator) Warn(msg string) {
	a.warnings = append(a.warnings, msg)
}

// Result finalizes the accumulated state.
func (a *Accumulator) Result() *Data {
	return &Data{Groups: a.groups, Totals: a.totals, Warnings: a.warnings}
}
