// Package still estimates the low wines produced by a single stripping run.
//
// The model is deliberately simple: one pass with no cuts, where all of the
// ethanol in the charge is recovered at the asserted low-wines strength. No
// heads/tails split and no efficiency loss.
package still

import (
	"fmt"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/numeric"
)

// Charge and low-wines limits. Values outside are clamped, not rejected.
const (
	MinChargeFillPercent     = 50.0
	MaxChargeFillPercent     = 98.0
	DefaultChargeFillPercent = 95.0

	MinLowWinesABV     = 15.0
	MaxLowWinesABV     = 60.0
	DefaultLowWinesABV = 35.0
)

// Params is the loosely typed form input for a standalone estimate.
type Params struct {
	WashABV           any
	FermenterVolume   any
	StillCapacity     any
	ChargeFillPercent any
	LowWinesABV       any
}

// Estimate validates form input and computes a strip estimate. Bad input
// never fails: the estimate comes back zeroed with a warning per problem.
func Estimate(p Params) domain.StripEstimate {
	var warnings []string

	wash := numeric.Parse(p.WashABV)
	if wash.OK && wash.V < 0 {
		wash = numeric.Invalid(fmt.Sprintf("must not be negative, got %g", wash.V))
	}
	fermenter := numeric.Positive(p.FermenterVolume)
	capacity := numeric.Positive(p.StillCapacity)

	for _, f := range []struct {
		name string
		v    numeric.Value
	}{
		{"wash ABV", wash},
		{"fermenter volume", fermenter},
		{"still capacity", capacity},
	} {
		if !f.v.OK {
			warnings = append(warnings, fmt.Sprintf("%s: %s", f.name, f.v.Reason))
		}
	}

	fill, lowWines, settingWarnings := Settings(p.ChargeFillPercent, p.LowWinesABV)
	warnings = append(warnings, settingWarnings...)

	if !wash.OK || !fermenter.OK || !capacity.OK {
		return domain.StripEstimate{Warnings: warnings}
	}

	washABV, _ := numeric.NormalizePercent(wash.V)
	est := Compute(washABV, fermenter.V, capacity.V, fill, lowWines)
	est.Warnings = append(warnings, est.Warnings...)
	return est
}

// Settings coerces the charge-fill and low-wines inputs. Missing values take
// the package defaults; non-numeric values take the defaults with a warning.
// Any finite number, zero and negatives included, is passed through for
// Compute to clamp. Fractions below 1 are read as percentages.
func Settings(chargeFill, lowWines any) (fillPercent, lowWinesABV float64, warnings []string) {
	fillPercent, w := setting("charge fill", chargeFill, DefaultChargeFillPercent)
	warnings = append(warnings, w...)
	lowWinesABV, w = setting("low wines ABV", lowWines, DefaultLowWinesABV)
	warnings = append(warnings, w...)
	return fillPercent, lowWinesABV, warnings
}

func setting(name string, raw any, def float64) (float64, []string) {
	v := numeric.Parse(raw)
	switch {
	case v.OK:
		pct, _ := numeric.NormalizePercent(v.V)
		return pct, nil
	case v.Missing:
		return def, nil
	default:
		return def, []string{fmt.Sprintf("%s: %s; using %g", name, v.Reason, def)}
	}
}

// Compute runs the no-cuts model on already-validated numbers. Charge fill
// and low-wines strength are clamped to their limits, with a warning when
// clamping changed them.
func Compute(washABV, fermenterVolume, stillCapacity, chargeFillPercent, lowWinesABV float64) domain.StripEstimate {
	var warnings []string

	fill := numeric.Clamp(chargeFillPercent, MinChargeFillPercent, MaxChargeFillPercent)
	if fill != chargeFillPercent {
		warnings = append(warnings, fmt.Sprintf("charge fill %g%% clamped to %g%%", chargeFillPercent, fill))
	}
	lw := numeric.Clamp(lowWinesABV, MinLowWinesABV, MaxLowWinesABV)
	if lw != lowWinesABV {
		warnings = append(warnings, fmt.Sprintf("low wines ABV %g%% clamped to %g%%", lowWinesABV, lw))
	}

	planned := stillCapacity * fill / 100
	used := planned
	limited := false
	if fermenterVolume < planned {
		used = fermenterVolume
		limited = true
	}

	ethanol := used * washABV / 100
	return domain.StripEstimate{
		WashABV:            washABV,
		FermenterVolume:    fermenterVolume,
		StillCapacity:      stillCapacity,
		ChargeFillPercent:  fill,
		PlannedCharge:      planned,
		ChargeUsed:         used,
		LimitedByFermenter: limited,
		EthanolInCharge:    ethanol,
		LowWinesABV:        lw,
		LowWinesVolume:     ethanol / (lw / 100),
		Warnings:           warnings,
	}
}
