package utils

import (
	"fmt"
	"strconv"
)

// MissingValue is shown in place of a field the remote API did not return.
const MissingValue = "-"

// NullValue is shown for a field the remote API returned as null or boolean.
const NullValue = ""

const (
	successLabel  = "✅ Success"
	failurePrefix = "❌ "
)

// FormatPoints renders a points value the way it arrived: integers without a
// decimal point, fractions with the shortest exact representation.
// A nil value renders as MissingValue.
// Example: 10 => "10", 12.5 => "12.5", nil => "-"
func FormatPoints(v *float64) string {
	if v == nil {
		return MissingValue
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatField renders a decoded JSON field for a table cell. An absent field
// is MissingValue, null and booleans are NullValue and numbers go through
// FormatPoints.
func FormatField(v any, present bool) string {
	if !present {
		return MissingValue
	}
	switch val := v.(type) {
	case nil, bool:
		return NullValue
	case float64:
		return FormatPoints(&val)
	case int:
		f := float64(val)
		return FormatPoints(&f)
	case int64:
		f := float64(val)
		return FormatPoints(&f)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// FormatStatus renders the fetch status cell from an error message.
// An empty message means success.
func FormatStatus(errMsg string) string {
	if errMsg == "" {
		return successLabel
	}
	return failurePrefix + errMsg
}
