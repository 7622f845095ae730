// Package numeric is the single validation boundary for loosely typed form
// input, plus the clamp and rounding primitives shared by the calculators.
package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Value is the tagged result of coercing a form value: either Ok with a
// finite number, or Invalid with a reason. Missing input is Invalid with
// Missing set, so callers can tell "left blank" from "typed garbage".
type Value struct {
	V       float64
	OK      bool
	Missing bool
	Reason  string
}

// Ok wraps a valid number.
func Ok(v float64) Value { return Value{V: v, OK: true} }

// Invalid wraps a rejected input.
func Invalid(reason string) Value { return Value{Reason: reason} }

func missing() Value { return Value{Missing: true, Reason: "missing"} }

// Or returns the value when valid, otherwise def.
func (v Value) Or(def float64) float64 {
	if v.OK {
		return v.V
	}
	return def
}

// Parse coerces v into a finite float64. Strings are trimmed and may carry a
// trailing "%". nil, empty strings and whitespace are reported as missing.
// Booleans are rejected rather than read as 0/1.
func Parse(v any) Value {
	switch x := v.(type) {
	case nil:
		return missing()
	case bool:
		return Invalid(fmt.Sprintf("not a number: %t", x))
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return missing()
		}
		v = s
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return Invalid(fmt.Sprintf("not a number: %v", v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Invalid("not finite")
	}
	return Ok(f)
}

// Positive parses v and additionally rejects values <= 0.
func Positive(v any) Value {
	p := Parse(v)
	if p.OK && p.V <= 0 {
		return Invalid(fmt.Sprintf("must be greater than zero, got %g", p.V))
	}
	return p
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Bound reports which side of a ClampWithFloor call constrained the value.
type Bound int

const (
	BoundNone Bound = iota
	BoundFloor
	BoundCeiling
)

// String returns a human-readable bound.
func (b Bound) String() string {
	switch b {
	case BoundFloor:
		return "floor"
	case BoundCeiling:
		return "ceiling"
	default:
		return "none"
	}
}

// ClampWithFloor bounds value to [floor, ceiling] where the floor is never
// violated: if floor > ceiling the floor wins. This is the "may only
// increase, up to a cap" rule for adjustable fermentables.
func ClampWithFloor(value, floor, ceiling float64) (float64, Bound) {
	if value < floor {
		return floor, BoundFloor
	}
	if floor > ceiling {
		return floor, BoundFloor
	}
	if value > ceiling {
		return ceiling, BoundCeiling
	}
	return value, BoundNone
}

// NormalizePercent treats values below 1 as fractions and rescales them to
// percent. Returns the normalized value and whether a rescale happened.
//
// A genuine sub-1% input (0.5% ABV) is read as 50%. Known limitation.
func NormalizePercent(v float64) (float64, bool) {
	if v > 0 && v < 1 {
		return v * 100, true
	}
	return v, false
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Floor0 returns v, or 0 when v is negative.
func Floor0(v float64) float64 {
	return math.Max(v, 0)
}
