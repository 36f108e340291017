package utils

import (
	"math"
	"strconv"
)

// SanitizeCount applies the count sanitization policy: non-finite values
// become 0, fractional parts are truncated (not rounded) and negative
// results clamp to 0
func SanitizeCount(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	n := int(math.Trunc(value))
	if n < 0 {
		return 0
	}
	return n
}

// CoerceNumber converts a decoded JSON value into a float64 at the input
// boundary. Strings are parsed when possible; anything non-numeric
// coerces to 0.
func CoerceNumber(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
