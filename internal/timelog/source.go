package timelog

import "context"

// Source fetches timelogs from one upstream tracker and feeds them into
// the accumulator. Implementations own their pagination and timestamp
// normalization; date/user filtering and totals live in the Accumulator.
// All network calls run sequentially: a fetch either completes or fails,
// there is no partial-result fallback beyond the warnings a source
// chooses to record.
type Source interface {
	Name() string
	Fetch(ctx context.Context, acc *Accumulator, targetDates []string) error
}
