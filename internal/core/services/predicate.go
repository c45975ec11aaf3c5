package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Predicate operators of anoncreds proof requests
const (
	PredicateGE = ">="
	PredicateGT = ">"
	PredicateLE = "<="
	PredicateLT = "<"
)

// EvaluatePredicate compares value against pValue with the integer semantics of anoncreds predicates.
// Values that cannot be read as integers, and unknown operators, never satisfy the predicate.
func EvaluatePredicate(pType string, value any, pValue any) bool {
	v, ok := toInt(value)
	if !ok {
		return false
	}
	p, ok := toInt(pValue)
	if !ok {
		return false
	}
	switch pType {
	case PredicateGE:
		return v >= p
	case PredicateGT:
		return v > p
	case PredicateLE:
		return v <= p
	case PredicateLT:
		return v < p
	default:
		return false
	}
}

// toInt coerces integers, integral strings and json numbers. Fractional numbers are truncated.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(math.Trunc(f)), true
}
