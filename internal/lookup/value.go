package lookup

import (
	"fmt"
	"math"
	"strconv"
)

type na struct{}

func (na) String() string { return "NA" }

// NA marks a missing value. nil and floating point NaN are treated the same
// way wherever a value is inspected.
var NA any = na{}

// IsNA reports whether v is a missing value.
func IsNA(v any) bool {
	switch x := v.(type) {
	case nil, na:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// Key is the string form every query and key is compared by. Strings are
// used as-is, integers print in base 10, floats in their shortest decimal
// form without exponent (so 1.0 is "1" and never "1.0"), bools as TRUE or
// FALSE. Anything else goes through fmt.Stringer or fmt.Sprint.
func Key(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// Anys widens a typed slice so it can be passed as queries, keys or values.
func Anys[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// Positions returns 1..n, the values used when none are given.
func Positions(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
