package engine

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/numeric"
)

// Sugar-equivalence and yield constants. Grain factors are pounds of
// fermentable sugar per pound of grain; rum factors are pounds of sugar per
// gallon of liquid fermentable.
const (
	CornSugarPerLb       = 0.40
	MaltSugarPerLb       = 0.60
	MolassesSugarPerGal  = 5.5
	CaneSyrupSugarPerGal = 7.5

	// EthanolGalPerLbSugar is the practical ethanol yield of one pound of
	// fermentable sugar.
	EthanolGalPerLbSugar = 0.05
)

// scaleFactor is fill/base, or zero when the recipe has no base volume.
func scaleFactor(fill, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return fill / base
}

func abvPercent(ethanolGal, fill float64) float64 {
	if fill <= 0 {
		return 0
	}
	return ethanolGal / fill * 100
}

func grainEthanol(g domain.GrainBill) float64 {
	return (g.CornLb*CornSugarPerLb + g.MaltLb*MaltSugarPerLb) * EthanolGalPerLbSugar
}

// computeMoonshine scales the grain bill and sugar, then raises sugar (never
// lowers it) toward the clamped target ABV.
func computeMoonshine(rec *domain.Recipe, rs domain.RuleSet, fill float64, t target, b *domain.Batch) {
	scale := scaleFactor(fill, rec.BaseVolume)

	grains := domain.GrainBill{
		CornLb: rec.Grains.CornLb * scale,
		MaltLb: rec.Grains.MaltLb * scale,
	}
	grainEth := grainEthanol(grains)

	baseSugar := rec.SugarLb * scale
	baseSugarEth := baseSugar * EthanolGalPerLbSugar
	baseline := abvPercent(grainEth+baseSugarEth, fill)

	b.Grains = grains
	b.BaselineSugarLb = baseSugar
	b.BaselineABV = baseline
	b.TargetABV = baseline
	b.SugarLb = baseSugar

	if t.given && !rec.Adjustable {
		b.Warnings = append(b.Warnings, fmt.Sprintf("recipe %q is not adjustable; target ABV ignored", rec.ID))
	}
	if t.given && rec.Adjustable {
		eff := clampTarget(t.percent, baseline, rs, b)
		required := fill * eff / 100
		sugarEth := math.Max(baseSugarEth, required-grainEth)
		if sugarEth > baseSugarEth {
			b.SugarLb = math.Max(baseSugar, sugarEth/EthanolGalPerLbSugar)
			b.Adjusted = true
		}
	}

	b.EthanolGal = grainEth + b.SugarLb*EthanolGalPerLbSugar
	b.WashABV = finalABV(b.EthanolGal, fill, b)
}

// computeRum scales both liquid fermentables. The target ABV is ignored
// unless the rules allow it or the caller turned on adjust mode; when used,
// only molasses is raised.
func computeRum(rec *domain.Recipe, rs domain.RuleSet, fill float64, t target, adjustMode bool, b *domain.Batch) {
	scale := scaleFactor(fill, rec.BaseVolume)

	base := domain.RumFermentables{
		MolassesGal:  rec.Rum.MolassesGal * scale,
		CaneSyrupGal: rec.Rum.CaneSyrupGal * scale,
	}
	molPerGal := MolassesSugarPerGal * EthanolGalPerLbSugar
	molEth := base.MolassesGal * molPerGal
	syrupEth := base.CaneSyrupGal * CaneSyrupSugarPerGal * EthanolGalPerLbSugar
	baseline := abvPercent(molEth+syrupEth, fill)

	b.BaselineRum = base
	b.Rum = base
	b.BaselineABV = baseline
	b.TargetABV = baseline

	adjust := adjustMode || !rs.IgnoreTargetABVByDefault
	if t.given && adjust && !rec.Adjustable {
		b.Warnings = append(b.Warnings, fmt.Sprintf("recipe %q is not adjustable; target ABV ignored", rec.ID))
	}
	if t.given && adjust && rec.Adjustable {
		eff := clampTarget(t.percent, baseline, rs, b)
		required := fill * eff / 100
		needed := math.Max(molEth, required-syrupEth)
		if needed > molEth {
			b.Rum.MolassesGal = math.Max(base.MolassesGal, needed/molPerGal)
			b.Adjusted = true
		}
	}

	b.EthanolGal = b.Rum.MolassesGal*molPerGal + syrupEth
	b.WashABV = finalABV(b.EthanolGal, fill, b)
}

// clampTarget applies the floor/ceiling rule to a requested ABV and records
// which side bit.
func clampTarget(requested, baseline float64, rs domain.RuleSet, b *domain.Batch) float64 {
	eff, bound := numeric.ClampWithFloor(requested, baseline, rs.MaxWashABVPercent)
	switch bound {
	case numeric.BoundFloor:
		b.RaisedToBaseline = requested < baseline
	case numeric.BoundCeiling:
		b.CappedAtCeiling = true
		b.Warnings = append(b.Warnings, fmt.Sprintf(
			"target ABV %.2f%% capped at the %.1f%% %s ceiling", requested, rs.MaxWashABVPercent, rs.Kind))
	}
	b.TargetABV = eff
	return eff
}

// finalABV recomputes wash ABV from the resolved quantities. After an
// adjustment the result equals the target up to float rounding, which must
// not carry it past the target.
func finalABV(ethanol, fill float64, b *domain.Batch) float64 {
	abv := abvPercent(ethanol, fill)
	if b.Adjusted && abv > b.TargetABV {
		return b.TargetABV
	}
	return abv
}
