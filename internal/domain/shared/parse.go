package shared

import (
	"math"
	"strconv"
	"strings"
)

// SafeParseFloat parses a user-entered numeric string.
// Empty, malformed, NaN and infinite input all parse to 0.
func SafeParseFloat(s string) float64 {
	return SafeParseFloatOr(s, 0)
}

// SafeParseFloatOr parses s, returning def when s is not a finite number
func SafeParseFloatOr(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsFinite(v) {
		return def
	}
	return v
}

// SafeParseInt parses an integer count; fractional input is truncated ("3.7" -> 3)
func SafeParseInt(s string) int {
	return SafeParseIntOr(s, 0)
}

// SafeParseIntOr parses s as an integer, returning def on malformed input
func SafeParseIntOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		if v > math.MaxInt32 || v < -math.MaxInt32 {
			return def
		}
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !IsFinite(f) || math.Abs(f) > math.MaxInt32 {
		return def
	}
	return int(f)
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PositiveOr returns v when it is a finite positive number, def otherwise
func PositiveOr(v, def float64) float64 {
	if !IsFinite(v) || v <= 0 {
		return def
	}
	return v
}

// NonNegative clamps negative and non-finite values to 0
func NonNegative(v float64) float64 {
	if !IsFinite(v) || v < 0 {
		return 0
	}
	return v
}

// SafeDivide returns num/den, or 0 when den is 0 or the quotient is not finite
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	q := num / den
	if !IsFinite(q) {
		return 0
	}
	return q
}

// CeilCount rounds a count-like quantity up to the next whole unit.
// The value is first rounded to 6 decimals so float noise such as
// 105.00000000000001 does not buy an extra bag.
func CeilCount(v float64) float64 {
	if !IsFinite(v) || v <= 0 {
		return 0
	}
	return math.Ceil(math.Round(v*1e6) / 1e6)
}

// RoundHalfUp rounds half-way values towards +Inf
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Round2 rounds to two decimal places for presentation
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
