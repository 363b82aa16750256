package timelog

import "errors"

var (
	// ErrConfigMissing indicates a required credential or endpoint was
	// not configured. No network call is attempted.
	ErrConfigMissing = errors.New("source configuration missing")

	// ErrInvalidInput indicates the aggregation request failed
	// validation before dispatch.
	ErrInvalidInput = errors.New("invalid aggregation request")

	// ErrUpstreamStatus indicates the tracker API returned a non-success
	// HTTP status. The in-flight fetch is aborted without retry.
	ErrUpstreamStatus = errors.New("upstream returned error status")

	// ErrUpstreamProtocol indicates a successful HTTP response whose
	// body carries an application-level error, such as a GraphQL errors
	// array. Treated the same as ErrUpstreamStatus.
	ErrUpstreamProtocol = errors.New("upstream protocol error")

	// ErrInvalidDuration indicates a negative second count or a
	// malformed HH:MM:SS string.
	ErrInvalidDuration = errors.New("invalid duration")
)

// Kind maps an error to its taxonomy label, so API consumers can branch
// on the failure category instead of parsing message text.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrConfigMissing):
		return "config_missing"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUpstreamStatus):
		return "upstream_http"
	case errors.Is(err, ErrUpstreamProtocol):
		return "upstream_protocol"
	default:
		return "internal"
	}
}
