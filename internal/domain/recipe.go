// Package domain defines the core types and interfaces for the mash calculator.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is an immutable mash definition. Every quantity is ground truth at
// BaseVolume gallons and must be rescaled by fill/BaseVolume before use.
type Recipe struct {
	ID         string          `yaml:"id" json:"id"`
	Label      string          `yaml:"label" json:"label"`
	Kind       Kind            `yaml:"kind" json:"kind"`
	BaseVolume float64         `yaml:"base_volume" json:"base_volume"`
	Grains     GrainBill       `yaml:"grains" json:"grains"`
	SugarLb    float64         `yaml:"sugar_lb" json:"sugar_lb"`
	Rum        RumFermentables `yaml:"rum" json:"rum"`
	Adjustable bool            `yaml:"adjustable" json:"adjustable"` // target ABV may raise the adjustable fermentable
	Yeast      string          `yaml:"yeast" json:"yeast"`
	Notes      string          `yaml:"notes" json:"notes"`
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Kind       Kind    `json:"kind"`
	BaseVolume float64 `json:"base_volume"`
}

// GrainBill holds grain weights in pounds.
type GrainBill struct {
	CornLb float64 `yaml:"corn_lb" json:"corn_lb"`
	MaltLb float64 `yaml:"malt_lb" json:"malt_lb"`
}

// RumFermentables holds liquid fermentable volumes in gallons.
type RumFermentables struct {
	MolassesGal  float64 `yaml:"molasses_gal" json:"molasses_gal"`
	CaneSyrupGal float64 `yaml:"cane_syrup_gal" json:"cane_syrup_gal"`
}

// Tank is a fermenter. FillVolume is the working fill used as a default.
type Tank struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	FillVolume float64 `yaml:"fill_volume" json:"fill_volume"`
}

// Still is a pot still; only its capacity matters to the strip estimator.
type Still struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Capacity float64 `yaml:"capacity" json:"capacity"`
}

// Product is a finished spirit the recipe scaler can proof down.
type Product struct {
	Key          string  `yaml:"key" json:"key"`
	Name         string  `yaml:"name" json:"name"`
	BaseProof    float64 `yaml:"base_proof" json:"base_proof"`       // proof of the spirit on hand
	DefaultProof float64 `yaml:"default_proof" json:"default_proof"` // bottling proof when none is given
	AllowsSugar  bool    `yaml:"allows_sugar" json:"allows_sugar"`
}

// RuleSet holds the non-negotiable constraints and advisory values for one
// spirit kind.
type RuleSet struct {
	Kind                     Kind    `json:"kind"`
	MaxWashABVPercent        float64 `json:"max_wash_abv_percent"`
	MonotonicAdjust          bool    `json:"monotonic_adjust"` // the adjustable fermentable may only increase
	IgnoreTargetABVByDefault bool    `json:"ignore_target_abv_by_default"`
	PHMin                    float64 `json:"ph_min"`
	PHMax                    float64 `json:"ph_max"`
	PHNominal                float64 `json:"ph_nominal"`
	YeastGramsPerGal         float64 `json:"yeast_grams_per_gal"`
	NutrientGramsPerGal      float64 `json:"nutrient_grams_per_gal"`
}
