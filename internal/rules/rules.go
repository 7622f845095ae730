// Package rules holds the per-kind constraints the batch engine must honor
// and renders them as human-readable annotations.
package rules

import (
	"fmt"

	"github.com/hammamikhairi/mashcalc/internal/domain"
)

// Table maps a spirit kind to its rule set. A Table is read-only once built.
type Table map[domain.Kind]domain.RuleSet

// Default returns the built-in rule table.
func Default() Table {
	return Table{
		domain.KindMoonshine: {
			Kind:                domain.KindMoonshine,
			MaxWashABVPercent:   15.0,
			MonotonicAdjust:     true,
			PHMin:               4.5,
			PHMax:               5.5,
			PHNominal:           5.0,
			YeastGramsPerGal:    1.0,
			NutrientGramsPerGal: 1.5,
		},
		domain.KindRum: {
			Kind:                     domain.KindRum,
			MaxWashABVPercent:        12.0,
			MonotonicAdjust:          true,
			IgnoreTargetABVByDefault: true,
			PHMin:                    4.5,
			PHMax:                    5.5,
			PHNominal:                5.0,
			YeastGramsPerGal:         0.75,
			NutrientGramsPerGal:      1.0,
		},
	}
}

// For returns the rule set for a kind.
func (t Table) For(kind domain.Kind) (domain.RuleSet, bool) {
	rs, ok := t[kind]
	return rs, ok
}

// Annotations returns the rule lines shown next to a batch of the given kind.
// adjustMode only matters for kinds that ignore the target ABV by default.
func (t Table) Annotations(kind domain.Kind, adjustMode bool) []string {
	rs, ok := t[kind]
	if !ok {
		return nil
	}

	adjustable := adjustableName(kind)
	out := []string{
		fmt.Sprintf("Wash ABV is capped at %.1f%%.", rs.MaxWashABVPercent),
	}

	switch {
	case rs.IgnoreTargetABVByDefault && !adjustMode:
		out = append(out, "Target ABV is ignored; the recipe is scaled as written.")
	case rs.MonotonicAdjust:
		out = append(out, fmt.Sprintf("%s may only increase from the recipe baseline, never decrease.", adjustable))
	}

	out = append(out,
		fmt.Sprintf("Target pH %.1f-%.1f (nominal %.1f).", rs.PHMin, rs.PHMax, rs.PHNominal),
		fmt.Sprintf("Yeast %.2f g/gal, nutrient %.2f g/gal.", rs.YeastGramsPerGal, rs.NutrientGramsPerGal),
		"Strip runs assume no cuts: all charge ethanol is recovered as low wines.",
	)
	return out
}

func adjustableName(kind domain.Kind) string {
	switch kind {
	case domain.KindRum:
		return "Molasses"
	default:
		return "Sugar"
	}
}
