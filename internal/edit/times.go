package edit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTimestamp converts "HH:MM:SS(.mmm)", "MM:SS(.mmm)" or plain seconds
// to float seconds.
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty timestamp", ErrInvalidTimeRange)
	}

	if !strings.Contains(s, ":") {
		sec, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: cannot parse timestamp %q", ErrInvalidTimeRange, s)
		}
		if sec < 0 {
			return 0, fmt.Errorf("%w: negative timestamp %q", ErrInvalidTimeRange, s)
		}
		return sec, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: cannot parse timestamp %q", ErrInvalidTimeRange, s)
	}

	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: cannot parse timestamp %q", ErrInvalidTimeRange, s)
		}
		total = total*60 + v
	}
	return total, nil
}

// FormatSeconds renders a float second count the way filter parameters and
// -ss/-to arguments expect, with millisecond precision and no trailing
// zeros beyond it.
func FormatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
