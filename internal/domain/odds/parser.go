package odds

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Evens is fractional 1/1 in decimal form.
const Evens = 2.0

var ErrInvalidOdds = errors.New("invalid odds format, use fractions like 5/1 or decimals like 2.5")

// Parse converts fractional ("N/D") or decimal odds into a decimal multiplier.
// It returns 0 for anything that cannot be used as a multiplier.
func Parse(raw string) float64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	if num, den, ok := strings.Cut(value, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0
		}
		return usable(n/d + 1)
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return usable(out)
}

// Validate parses raw and rejects the 0 sentinel.
func Validate(raw string) (float64, error) {
	out := Parse(raw)
	if out == 0 {
		return 0, ErrInvalidOdds
	}
	return out, nil
}

func usable(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}
