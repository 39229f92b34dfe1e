package util

import (
	"math"
	"strconv"
)

// MustParseUint converts a string to an unsigned integer, returning 0 on failure.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// Round2 rounds to two decimal places, the precision used for accuracy figures.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
