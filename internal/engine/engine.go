// Package engine implements the batch engine: recipe scaling, baseline
// alcohol yield, and the monotonic target-ABV adjustment, optionally
// followed by a strip estimate.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
	"github.com/hammamikhairi/mashcalc/internal/numeric"
	"github.com/hammamikhairi/mashcalc/internal/rules"
	"github.com/hammamikhairi/mashcalc/internal/still"
)

// Fill volume bounds in gallons. Out-of-range fills are clamped and the
// clamp is reported on the batch, never rejected.
const (
	DefaultMinFillVolume = 1.0
	DefaultMaxFillVolume = 1000.0
)

// Option configures the engine.
type Option func(*Engine)

// WithFillBounds overrides the fill volume clamp range.
func WithFillBounds(lo, hi float64) Option {
	return func(e *Engine) {
		e.minFill = lo
		e.maxFill = hi
	}
}

// WithStripDefaults sets the charge fill and low-wines ABV used when a strip
// request leaves them blank.
func WithStripDefaults(chargeFillPercent, lowWinesABV float64) Option {
	return func(e *Engine) {
		e.chargeFill = chargeFillPercent
		e.lowWines = lowWinesABV
	}
}

// WithClock sets the time source used to stamp scenarios.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine computes batches. It holds read-only references to the definitions
// and rules and keeps no state between calls, so identical inputs always
// produce identical output.
type Engine struct {
	defs       domain.DefinitionSource
	rules      rules.Table
	log        *logger.Logger
	minFill    float64
	maxFill    float64
	chargeFill float64
	lowWines   float64
	now        func() time.Time
}

// New creates a batch engine with the given dependencies and options.
func New(defs domain.DefinitionSource, table rules.Table, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		defs:       defs,
		rules:      table,
		log:        log,
		minFill:    DefaultMinFillVolume,
		maxFill:    DefaultMaxFillVolume,
		chargeFill: still.DefaultChargeFillPercent,
		lowWines:   still.DefaultLowWinesABV,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recipes returns all available recipes.
func (e *Engine) Recipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	return e.defs.Recipes(ctx)
}

// Recipe returns a full recipe by ID.
func (e *Engine) Recipe(ctx context.Context, id string) (*domain.Recipe, error) {
	rec, err := e.defs.Recipe(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRecipe, id)
	}
	return rec, err
}

// Annotations returns the rule lines for a kind.
func (e *Engine) Annotations(kind domain.Kind, adjustMode bool) []string {
	return e.rules.Annotations(kind, adjustMode)
}

// ComputeBatch scales a recipe to the requested fill volume and, where the
// recipe and rules allow it, raises the adjustable fermentable to approach
// the requested ABV.
//
// Unknown recipe, tank or still ids are returned as errors. Bad numeric
// input is absorbed into Batch.Warnings.
func (e *Engine) ComputeBatch(ctx context.Context, in domain.BatchInput) (*domain.Batch, error) {
	rec, err := e.Recipe(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	rs, ok := e.rules.For(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s (recipe %q)", domain.ErrUnsupportedRecipeKind, rec.Kind, rec.ID)
	}

	var st *domain.Still
	if in.Strip != nil {
		st, err = e.lookupStill(ctx, in.Strip.StillID)
		if err != nil {
			return nil, err
		}
	}

	b := &domain.Batch{
		RecipeID: rec.ID,
		Kind:     rec.Kind,
		Yeast:    rec.Yeast,
		Notes:    rec.Notes,
	}

	fill, err := e.resolveFill(ctx, in, rec, b)
	if err != nil {
		return nil, err
	}
	b.FillVolume = fill

	target := resolveTarget(in.TargetABV, b)

	switch rec.Kind {
	case domain.KindMoonshine:
		computeMoonshine(rec, rs, fill, target, b)
	case domain.KindRum:
		computeRum(rec, rs, fill, target, in.AdjustMode, b)
	default:
		return nil, fmt.Errorf("%w: %s (recipe %q)", domain.ErrUnsupportedRecipeKind, rec.Kind, rec.ID)
	}

	if b.BaselineABV > rs.MaxWashABVPercent {
		b.Warnings = append(b.Warnings, fmt.Sprintf(
			"recipe baseline %.2f%% exceeds the %.1f%% %s ceiling; fermentables are never reduced",
			b.BaselineABV, rs.MaxWashABVPercent, rec.Kind))
	}

	b.Guidance = domain.Guidance{
		PHMin:         rs.PHMin,
		PHMax:         rs.PHMax,
		PHNominal:     rs.PHNominal,
		YeastGrams:    rs.YeastGramsPerGal * fill,
		NutrientGrams: rs.NutrientGramsPerGal * fill,
		Rules:         e.rules.Annotations(rec.Kind, in.AdjustMode),
	}

	if st != nil {
		b.Strip = e.strip(b, st, in.Strip)
	}

	e.log.Debug("batch %s: fill=%.2f baseline=%.3f%% target=%.3f%% wash=%.3f%% warnings=%d",
		rec.ID, fill, b.BaselineABV, b.TargetABV, b.WashABV, len(b.Warnings))
	return b, nil
}

// EstimateStrip runs a standalone strip estimate. When stillID is set, the
// still's capacity replaces p.StillCapacity.
func (e *Engine) EstimateStrip(ctx context.Context, stillID string, p still.Params) (domain.StripEstimate, error) {
	if stillID != "" {
		st, err := e.lookupStill(ctx, stillID)
		if err != nil {
			return domain.StripEstimate{}, err
		}
		p.StillCapacity = st.Capacity
	}
	if numeric.Parse(p.ChargeFillPercent).Missing {
		p.ChargeFillPercent = e.chargeFill
	}
	if numeric.Parse(p.LowWinesABV).Missing {
		p.LowWinesABV = e.lowWines
	}
	est := still.Estimate(p)
	est.StillID = stillID
	return est, nil
}

func (e *Engine) lookupStill(ctx context.Context, id string) (*domain.Still, error) {
	st, err := e.defs.Still(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStill, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting still: %w", err)
	}
	return st, nil
}

func (e *Engine) strip(b *domain.Batch, st *domain.Still, req *domain.StripRequest) *domain.StripEstimate {
	chargeFill, lowWines := req.ChargeFillPercent, req.LowWinesABV
	if numeric.Parse(chargeFill).Missing {
		chargeFill = e.chargeFill
	}
	if numeric.Parse(lowWines).Missing {
		lowWines = e.lowWines
	}
	fill, lw, warnings := still.Settings(chargeFill, lowWines)

	est := still.Compute(b.WashABV, b.FillVolume, st.Capacity, fill, lw)
	est.StillID = st.ID
	est.Warnings = append(warnings, est.Warnings...)
	return &est
}

// resolveFill picks the fill volume: explicit input, else the tank's working
// fill, else the recipe base volume. The result is clamped to the engine's
// fill bounds.
func (e *Engine) resolveFill(ctx context.Context, in domain.BatchInput, rec *domain.Recipe, b *domain.Batch) (float64, error) {
	def := rec.BaseVolume
	if in.TankID != "" {
		tank, err := e.defs.Tank(ctx, in.TankID)
		if errors.Is(err, domain.ErrNotFound) {
			return 0, fmt.Errorf("%w: %q", domain.ErrUnknownTank, in.TankID)
		}
		if err != nil {
			return 0, fmt.Errorf("getting tank: %w", err)
		}
		def = tank.FillVolume
	}

	v := numeric.Parse(in.FillVolume)
	fill := v.Or(def)
	if !v.OK && !v.Missing {
		b.Warnings = append(b.Warnings, fmt.Sprintf("fill volume: %s; using %g gal", v.Reason, def))
	}

	clamped := numeric.Clamp(fill, e.minFill, e.maxFill)
	if clamped != fill {
		b.FillClamped = true
		b.Warnings = append(b.Warnings, fmt.Sprintf("fill volume %g gal clamped to %g gal", fill, clamped))
	}
	return clamped, nil
}

// target is the caller's requested ABV after boundary coercion.
type target struct {
	percent float64
	given   bool
}

// resolveTarget coerces the requested ABV once, normalizing fractions to
// percent. Missing or invalid targets are treated as "not given".
func resolveTarget(raw any, b *domain.Batch) target {
	v := numeric.Parse(raw)
	switch {
	case v.Missing:
		return target{}
	case !v.OK:
		b.Warnings = append(b.Warnings, fmt.Sprintf("target ABV: %s; using recipe baseline", v.Reason))
		return target{}
	case v.V < 0:
		b.Warnings = append(b.Warnings, fmt.Sprintf("target ABV: must not be negative, got %g; using recipe baseline", v.V))
		return target{}
	}

	pct, normalized := numeric.NormalizePercent(v.V)
	b.RequestedABV = pct
	b.ABVNormalized = normalized
	return target{percent: pct, given: true}
}
