// Package types defines the validated value types stored in catalog rows.
package types

import (
	"fmt"
	"math"
	"strconv"
)

// ParseError reports text that is not a member of a closed enumeration.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Value)
}

// RangeError reports a numeric value outside its permitted interval.
type RangeError struct {
	Kind  string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	if math.IsInf(e.Max, 1) {
		return fmt.Sprintf("%s %s out of range: must be >= %s", e.Kind, formatBound(e.Value), formatBound(e.Min))
	}
	return fmt.Sprintf("%s %s out of range [%s, %s]", e.Kind, formatBound(e.Value), formatBound(e.Min), formatBound(e.Max))
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CompositeError reports column values that cannot form a composite value.
type CompositeError struct {
	Kind   string
	Reason string
}

func (e *CompositeError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, e.Reason)
}
