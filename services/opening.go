package services

import (
	"errors"
	"fmt"
	"strings"
)

var errOpeningFormat = errors.New("unexpected opening hours layout")

var weekdays = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// CompressOpening turns seven "Day: time-range" rows (Monday first) into one
// '|' separated line, merging Monday-Friday and Saturday-Sunday when their
// ranges are identical.
func CompressOpening(rows []string) (string, error) {
	if len(rows) != 7 {
		return "", fmt.Errorf("%w: got %d rows, want 7", errOpeningFormat, len(rows))
	}

	times := make([]string, len(rows))
	for i, row := range rows {
		parts := strings.SplitN(row, ": ", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("%w: row %q has no time range", errOpeningFormat, row)
		}
		times[i] = parts[1]
	}

	weekdaySame := allEqual(times[:5])
	weekendSame := allEqual(times[5:])

	switch {
	case weekdaySame && !weekendSame:
		return fmt.Sprintf("Monday - Friday: %s|Saturday: %s|Sunday: %s", times[0], times[5], times[6]), nil
	case weekdaySame && weekendSame:
		return fmt.Sprintf("Monday - Friday: %s|Saturday - Sunday: %s", times[0], times[5]), nil
	case weekendSame:
		days := make([]string, 0, 6)
		for i, day := range weekdays {
			days = append(days, day+": "+times[i])
		}
		days = append(days, "Saturday - Sunday: "+times[5])
		return strings.Join(days, "|"), nil
	default:
		return strings.Join(rows, "|"), nil
	}
}

func allEqual(values []string) bool {
	for _, v := range values {
		if v != values[0] {
			return false
		}
	}
	return true
}
