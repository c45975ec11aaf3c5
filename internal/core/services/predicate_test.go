package services

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePredicate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		pType  string
		value  any
		pValue any
		want   bool
	}{
		{name: "ge equal", pType: ">=", value: "18", pValue: 18, want: true},
		{name: "ge greater", pType: ">=", value: "30", pValue: 18, want: true},
		{name: "ge lower", pType: ">=", value: "17", pValue: 18, want: false},
		{name: "gt equal", pType: ">", value: 18, pValue: 18, want: false},
		{name: "gt greater", pType: ">", value: 19, pValue: "18", want: true},
		{name: "le equal", pType: "<=", value: float64(18), pValue: 18, want: true},
		{name: "le greater", pType: "<=", value: "19", pValue: "18", want: false},
		{name: "lt lower", pType: "<", value: "-5", pValue: 0, want: true},
		{name: "lt equal", pType: "<", value: 0, pValue: 0, want: false},
		{name: "json number", pType: ">=", value: json.Number("20"), pValue: json.Number("18"), want: true},
		{name: "fractional number is truncated", pType: ">=", value: 17.9, pValue: 17, want: true},
		{name: "padded string", pType: ">=", value: " 21 ", pValue: 21, want: true},
		{name: "fractional string", pType: ">=", value: "18.5", pValue: 18, want: false},
		{name: "not a number", pType: ">=", value: "eighteen", pValue: 18, want: false},
		{name: "missing value", pType: ">=", value: nil, pValue: 18, want: false},
		{name: "bad threshold", pType: "<", value: 1, pValue: "many", want: false},
		{name: "bool", pType: ">=", value: true, pValue: 0, want: false},
		{name: "nan", pType: "<", value: math.NaN(), pValue: 1, want: false},
		{name: "unknown operator", pType: "==", value: 1, pValue: 1, want: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluatePredicate(tc.pType, tc.value, tc.pValue))
		})
	}
}

func TestEvaluatePredicate_IntegerSemantics(t *testing.T) {
	ops := map[string]func(a, b int64) bool{
		">=": func(a, b int64) bool { return a >= b },
		">":  func(a, b int64) bool { return a > b },
		"<=": func(a, b int64) bool { return a <= b },
		"<":  func(a, b int64) bool { return a < b },
	}
	for op, cmp := range ops {
		for a := int64(-3); a <= 3; a++ {
			for b := int64(-3); b <= 3; b++ {
				assert.Equal(t, cmp(a, b), EvaluatePredicate(op, a, b), "%d %s %d", a, op, b)
			}
		}
	}
}
