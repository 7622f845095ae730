package domain

// BatchInput is what a form hands to the batch engine. Numeric fields are
// loosely typed: they may arrive as numbers or display-layer strings and are
// coerced once at the engine boundary.
type BatchInput struct {
	RecipeID   string        `json:"recipe_id"`
	TankID     string        `json:"tank_id,omitempty"`
	FillVolume any           `json:"fill_volume,omitempty"`
	TargetABV  any           `json:"target_abv,omitempty"`
	AdjustMode bool          `json:"adjust_mode,omitempty"`
	Strip      *StripRequest `json:"strip,omitempty"`
}

// StripRequest asks the engine to follow the batch with a strip estimate.
type StripRequest struct {
	StillID           string `json:"still_id"`
	ChargeFillPercent any    `json:"charge_fill_percent,omitempty"`
	LowWinesABV       any    `json:"low_wines_abv,omitempty"`
}

// Batch is the computed, ephemeral result of one recalculation.
type Batch struct {
	RecipeID    string  `json:"recipe_id"`
	Kind        Kind    `json:"kind"`
	FillVolume  float64 `json:"fill_volume"`
	FillClamped bool    `json:"fill_clamped"`

	BaselineABV      float64 `json:"baseline_abv"`
	RequestedABV     float64 `json:"requested_abv"` // after fraction normalization, before clamping
	ABVNormalized    bool    `json:"abv_normalized"`
	TargetABV        float64 `json:"target_abv"`
	RaisedToBaseline bool    `json:"raised_to_baseline"`
	CappedAtCeiling  bool    `json:"capped_at_ceiling"`
	WashABV          float64 `json:"wash_abv"`
	Adjusted         bool    `json:"adjusted"`

	Grains          GrainBill       `json:"grains"`
	BaselineSugarLb float64         `json:"baseline_sugar_lb"`
	SugarLb         float64         `json:"sugar_lb"`
	BaselineRum     RumFermentables `json:"baseline_rum"`
	Rum             RumFermentables `json:"rum"`
	EthanolGal      float64         `json:"ethanol_gal"`

	Yeast    string         `json:"yeast"`
	Notes    string         `json:"notes"`
	Guidance Guidance       `json:"guidance"`
	Strip    *StripEstimate `json:"strip,omitempty"`
	Warnings []string       `json:"warnings"`
}

// Guidance is advisory metadata for a batch at its resolved fill volume.
type Guidance struct {
	PHMin         float64  `json:"ph_min"`
	PHMax         float64  `json:"ph_max"`
	PHNominal     float64  `json:"ph_nominal"`
	YeastGrams    float64  `json:"yeast_grams"`
	NutrientGrams float64  `json:"nutrient_grams"`
	Rules         []string `json:"rules"`
}

// StripEstimate is the result of a single no-cuts stripping run.
type StripEstimate struct {
	StillID            string   `json:"still_id,omitempty"`
	WashABV            float64  `json:"wash_abv"`
	FermenterVolume    float64  `json:"fermenter_volume"`
	StillCapacity      float64  `json:"still_capacity"`
	ChargeFillPercent  float64  `json:"charge_fill_percent"`
	PlannedCharge      float64  `json:"planned_charge"`
	ChargeUsed         float64  `json:"charge_used"`
	LimitedByFermenter bool     `json:"limited_by_fermenter"`
	EthanolInCharge    float64  `json:"ethanol_in_charge"`
	LowWinesABV        float64  `json:"low_wines_abv"`
	LowWinesVolume     float64  `json:"low_wines_volume"`
	Warnings           []string `json:"warnings"`
}
