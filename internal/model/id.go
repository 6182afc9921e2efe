package model

import (
	"math"
	"strconv"
)

// ParseID normalizes a loosely typed identifier into a primary key.
// Integers, integral-valued floats, and strings or byte slices made only of
// ASCII digits are accepted. Anything else, and non-positive values, yield false.
func ParseID(v any) (int64, bool) {
	var id int64

	switch t := v.(type) {
	case int:
		id = int64(t)
	case int32:
		id = int64(t)
	case int64:
		id = t
	case uint:
		if uint64(t) > math.MaxInt64 {
			return 0, false
		}
		id = int64(t)
	case uint32:
		id = int64(t)
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		id = int64(t)
	case float32:
		return parseFloatID(float64(t))
	case float64:
		return parseFloatID(t)
	case string:
		return parseDigits(t)
	case []byte:
		return parseDigits(string(t))
	default:
		return 0, false
	}

	if id <= 0 {
		return 0, false
	}
	return id, true
}

func parseFloatID(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
