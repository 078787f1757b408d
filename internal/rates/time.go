package rates

import (
	"fmt"
	"strconv"
)

// FITScale is the number of device-hours a FIT is measured against.
const FITScale = 1e9

const secondsPerHour = 3600

// unitSeconds maps a time unit suffix to its length in seconds. Lengths are
// kept in seconds so that equivalent spellings ("60m", "1h") convert to
// bit-identical hours.
var unitSeconds = map[byte]float64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': 24 * 60 * 60,
	'w': 7 * 24 * 60 * 60,
	'y': 365.25 * 24 * 60 * 60,
}

// ParseTime converts `<positive integer><unit>` or a bare positive integer
// (hours) into hours.
func ParseTime(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty time value")
	}
	digits, unit := s, byte('h')
	if last := s[len(s)-1]; !isDigit(last) {
		digits, unit = s[:len(s)-1], last
	}
	scale, ok := unitSeconds[unit]
	if !ok {
		return 0, fmt.Errorf("time %q has unknown unit %q (want one of s, m, h, d, w, y)", s, string(unit))
	}
	if !isDigits(digits) {
		return 0, fmt.Errorf("time %q must be <integer><unit>", s)
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("time %q: %w", s, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("time %q must be positive", s)
	}
	return float64(n) * scale / secondsPerHour, nil
}

// FITs converts a mean time to transition, in hours, into a FIT rate.
func FITs(hours float64) float64 {
	return FITScale / hours
}

// FromTime parses a time string and converts it into a FIT rate.
func FromTime(s string) (float64, error) {
	hours, err := ParseTime(s)
	if err != nil {
		return 0, err
	}
	return FITs(hours), nil
}

// ParseFits parses a non-negative integer FIT literal.
func ParseFits(s string) (float64, error) {
	if !isDigits(s) {
		return 0, fmt.Errorf("rate %q must be a non-negative integer", s)
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rate %q: %w", s, err)
	}
	return float64(n), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
