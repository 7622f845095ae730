package still

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePlannedChargeBoundedByFermenter(t *testing.T) {
	est := Compute(10, 40, 53, 95, 35)

	assert.InDelta(t, 50.35, est.PlannedCharge, 1e-9)
	assert.Equal(t, 40.0, est.ChargeUsed)
	assert.True(t, est.LimitedByFermenter)
	assert.InDelta(t, 4.0, est.EthanolInCharge, 1e-9)
	assert.InDelta(t, 4.0/0.35, est.LowWinesVolume, 1e-9)
	assert.Empty(t, est.Warnings)
}

func TestComputeBoundedByStill(t *testing.T) {
	est := Compute(12, 55, 53, 95, 30)

	assert.InDelta(t, 50.35, est.ChargeUsed, 1e-9)
	assert.False(t, est.LimitedByFermenter)
	assert.InDelta(t, 50.35*0.12/0.30, est.LowWinesVolume, 1e-9)
}

func TestComputeClamps(t *testing.T) {
	tests := []struct {
		name         string
		fill, lw     float64
		wantFill     float64
		wantLW       float64
		wantWarnings int
	}{
		{"in range", 80, 35, 80, 35, 0},
		{"fill too low", 20, 35, 50, 35, 1},
		{"fill too high", 100, 35, 98, 35, 1},
		{"low wines too weak", 80, 5, 80, 15, 1},
		{"low wines too strong", 80, 90, 80, 60, 1},
		{"both", 10, 90, 50, 60, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Compute(10, 1000, 50, tt.fill, tt.lw)
			assert.Equal(t, tt.wantFill, est.ChargeFillPercent)
			assert.Equal(t, tt.wantLW, est.LowWinesABV)
			assert.Len(t, est.Warnings, tt.wantWarnings)
			assert.InDelta(t, 50*tt.wantFill/100, est.PlannedCharge, 1e-9)
		})
	}
}

func TestComputeRecoversAllEthanol(t *testing.T) {
	est := Compute(8, 100, 53, 90, 25)
	assert.InDelta(t, est.EthanolInCharge, est.LowWinesVolume*est.LowWinesABV/100, 1e-9)
}

func TestEstimateFromFormValues(t *testing.T) {
	est := Estimate(Params{
		WashABV:           "0.10",
		FermenterVolume:   "40",
		StillCapacity:     53,
		ChargeFillPercent: "95",
		LowWinesABV:       "",
	})

	assert.InDelta(t, 10.0, est.WashABV, 1e-9, "fractional ABV read as percent")
	assert.InDelta(t, 50.35, est.PlannedCharge, 1e-9)
	assert.Equal(t, 40.0, est.ChargeUsed)
	assert.Equal(t, DefaultLowWinesABV, est.LowWinesABV)
	assert.Empty(t, est.Warnings)
}

func TestEstimateInvalidInputIsZeroedWithWarnings(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"missing wash", Params{FermenterVolume: 40, StillCapacity: 53}},
		{"negative wash", Params{WashABV: -1, FermenterVolume: 40, StillCapacity: 53}},
		{"garbage fermenter", Params{WashABV: 10, FermenterVolume: "lots", StillCapacity: 53}},
		{"zero capacity", Params{WashABV: 10, FermenterVolume: 40, StillCapacity: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Estimate(tt.params)
			assert.Zero(t, est.ChargeUsed)
			assert.Zero(t, est.LowWinesVolume)
			assert.NotEmpty(t, est.Warnings)
		})
	}
}

func TestSettingsDefaults(t *testing.T) {
	fill, lw, warnings := Settings(nil, nil)
	assert.Equal(t, DefaultChargeFillPercent, fill)
	assert.Equal(t, DefaultLowWinesABV, lw)
	assert.Empty(t, warnings)

	fill, lw, warnings = Settings("oops", 0.4)
	assert.Equal(t, DefaultChargeFillPercent, fill)
	assert.InDelta(t, 40.0, lw, 1e-12)
	assert.Len(t, warnings, 1)
}

func TestEstimateClampsNonPositiveSettings(t *testing.T) {
	tests := []struct {
		name         string
		chargeFill   any
		lowWines     any
		wantFill     float64
		wantLW       float64
		wantWarnings int
	}{
		{"fill 10", 10, 35, 50, 35, 1},
		{"fill 0", 0, 35, 50, 35, 1},
		{"fill -5", -5, 35, 50, 35, 1},
		{"low wines 0", 95, 0, 95, 15, 1},
		{"low wines -5", 95, "-5", 95, 15, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Estimate(Params{
				WashABV:           10,
				FermenterVolume:   100,
				StillCapacity:     53,
				ChargeFillPercent: tt.chargeFill,
				LowWinesABV:       tt.lowWines,
			})
			assert.Equal(t, tt.wantFill, est.ChargeFillPercent)
			assert.Equal(t, tt.wantLW, est.LowWinesABV)
			assert.InDelta(t, 53*tt.wantFill/100, est.PlannedCharge, 1e-9)
			assert.Len(t, est.Warnings, tt.wantWarnings, "warnings: %v", est.Warnings)
			assert.Contains(t, est.Warnings[0], "clamped")
		})
	}
}

func TestEstimateChargeIsMonotonicInFill(t *testing.T) {
	prev := -1.0
	for _, cf := range []float64{-5, 0, 10, 50, 70, 95, 98, 120} {
		est := Estimate(Params{WashABV: 10, FermenterVolume: 100, StillCapacity: 53, ChargeFillPercent: cf})
		assert.GreaterOrEqual(t, est.PlannedCharge, prev, "charge fill %g", cf)
		prev = est.PlannedCharge
	}
}
