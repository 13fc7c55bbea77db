// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Int64 converts unsigned integers to int64 with range validation. Ledger
// amounts are stored unsigned but handled as signed lovelace amounts.
func Int64[T ~uint | ~uint32 | ~uint64](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}

// Int converts signed or unsigned 64-bit integers to int with range validation.
func Int[T ~int64 | ~uint64](v T) (int, error) {
	switch value := any(v).(type) {
	case int64:
		if value < math.MinInt || value > math.MaxInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
	case uint64:
		if value > math.MaxInt {
			return 0, fmt.Errorf("value %d out of int range", v)
		}
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	return int(v), nil
}
