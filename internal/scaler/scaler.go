// Package scaler computes bottling quantities for a product: how much base
// spirit, water and (optionally) sugar volume make a target volume at a
// target proof.
package scaler

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
	"github.com/hammamikhairi/mashcalc/internal/numeric"
)

// SugarGalPerLb is the volume one pound of dissolved sugar displaces.
const SugarGalPerLb = 0.075

// ProductSource looks up bottling products by key.
type ProductSource interface {
	Product(ctx context.Context, key string) (*domain.Product, error)
}

// Option configures the scaler.
type Option func(*Scaler)

// WithSugarDisplacement turns on sugar-volume displacement for products that
// allow sugar. Off by default: sugar volume is then always zero.
func WithSugarDisplacement(on bool) Option {
	return func(s *Scaler) {
		s.sugarDisplacement = on
	}
}

// Scaler turns a product and target into bottling quantities.
type Scaler struct {
	products          ProductSource
	log               *logger.Logger
	sugarDisplacement bool
}

// New creates a recipe scaler.
func New(products ProductSource, log *logger.Logger, opts ...Option) *Scaler {
	s := &Scaler{products: products, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request is the loosely typed form input. TargetProof and SugarWeight may
// be left empty.
type Request struct {
	ProductKey   string `json:"product_key"`
	TargetVolume any    `json:"target_volume"`
	TargetProof  any    `json:"target_proof,omitempty"`
	SugarWeight  any    `json:"sugar_weight,omitempty"`
}

// Result holds the scaled quantities, rounded to two decimals.
type Result struct {
	ProductKey    string   `json:"product_key"`
	ProductName   string   `json:"product_name"`
	TargetVolume  float64  `json:"target_volume"`
	TargetProof   float64  `json:"target_proof"`
	BaseProof     float64  `json:"base_proof"`
	ProofGallons  float64  `json:"proof_gallons"`
	AlcoholVolume float64  `json:"alcohol_volume"`
	SugarVolume   float64  `json:"sugar_volume"`
	WaterVolume   float64  `json:"water_volume"`
	Warnings      []string `json:"warnings"`
}

// Scale computes proof gallons, base spirit volume, sugar displacement and
// water for a product. An unknown product key is an error; bad numbers are
// reported as warnings on a zeroed or defaulted result.
func (s *Scaler) Scale(ctx context.Context, req Request) (*Result, error) {
	p, err := s.products.Product(ctx, req.ProductKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProduct, req.ProductKey)
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}

	res := &Result{
		ProductKey:  p.Key,
		ProductName: p.Name,
		BaseProof:   p.BaseProof,
	}

	volume := numeric.Positive(req.TargetVolume)
	if !volume.OK {
		res.Warnings = append(res.Warnings, fmt.Sprintf("target volume: %s", volume.Reason))
		return res, nil
	}

	// Blank or zero proof means "use the product default".
	targetProof := p.DefaultProof
	switch proof := numeric.Parse(req.TargetProof); {
	case proof.Missing || proof.OK && proof.V == 0:
	case !proof.OK:
		res.Warnings = append(res.Warnings, fmt.Sprintf("target proof: %s; using default %g", proof.Reason, p.DefaultProof))
	case proof.V < 0:
		res.Warnings = append(res.Warnings, fmt.Sprintf("target proof: must not be negative, got %g; using default %g", proof.V, p.DefaultProof))
	default:
		targetProof = proof.V
	}
	if targetProof > p.BaseProof {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"target proof %g is above the %g proof base spirit", targetProof, p.BaseProof))
	}

	sugarVolume := s.sugarVolume(p, req.SugarWeight, res)

	proofGallons := volume.V * targetProof / 100
	alcohol := proofGallons / (p.BaseProof / 100)
	water := volume.V - alcohol - sugarVolume
	if water < 0 {
		res.Warnings = append(res.Warnings, "spirit and sugar exceed the target volume; water would be negative")
	}

	res.TargetVolume = volume.V
	res.TargetProof = targetProof
	res.ProofGallons = numeric.Round(proofGallons, 2)
	res.AlcoholVolume = numeric.Round(alcohol, 2)
	res.SugarVolume = numeric.Round(sugarVolume, 2)
	res.WaterVolume = numeric.Round(water, 2)

	s.log.Debug("scaled %s: %g gal @ %g proof -> alcohol=%.2f water=%.2f sugar=%.2f",
		p.Key, volume.V, targetProof, alcohol, water, sugarVolume)
	return res, nil
}

func (s *Scaler) sugarVolume(p *domain.Product, raw any, res *Result) float64 {
	sugar := numeric.Parse(raw)
	switch {
	case sugar.Missing:
		return 0
	case !sugar.OK:
		res.Warnings = append(res.Warnings, fmt.Sprintf("sugar weight: %s; ignored", sugar.Reason))
		return 0
	case sugar.V < 0:
		res.Warnings = append(res.Warnings, fmt.Sprintf("sugar weight: must not be negative, got %g; ignored", sugar.V))
		return 0
	case sugar.V > 0 && !p.AllowsSugar:
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s does not take sugar; sugar weight ignored", p.Name))
		return 0
	case !s.sugarDisplacement:
		return 0
	}
	return sugar.V * SugarGalPerLb
}
