package timelog

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration renders a second count as zero-padded HH:MM:SS. The
// hours component grows past two digits without truncation.
func FormatDuration(seconds int) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("%w: %d seconds", ErrInvalidDuration, seconds)
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs), nil
}

// ParseDuration is the inverse of FormatDuration. Minutes and seconds
// must be in [0,59]; hours is unbounded.
func ParseDuration(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		nums[i] = n
	}
	if nums[1] > 59 || nums[2] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	return nums[0]*3600 + nums[1]*60 + nums[2], nil
}
