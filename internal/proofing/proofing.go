// Package proofing splits a sample into base spirit and water so the blend
// lands on a target proof at a fixed final volume.
package proofing

import (
	"fmt"

	"github.com/hammamikhairi/mashcalc/internal/numeric"
)

// Result is the spirit/water split. Volumes are rounded to one decimal
// because callers feed them back in as inputs for the next edit.
type Result struct {
	SampleVolume     float64  `json:"sample_volume"`
	BaseProof        float64  `json:"base_proof"`
	TargetProof      float64  `json:"target_proof"`
	BaseSpiritVolume float64  `json:"base_spirit_volume"`
	WaterVolume      float64  `json:"water_volume"`
	Warnings         []string `json:"warnings"`
}

// ProofToTarget computes how much base spirit and water make up volume at
// targetProof. It never fails: invalid input yields a zeroed result with a
// warning. A target above the base proof is physically impossible with
// water alone; the split is still computed and returned with a warning so
// the caller can show the contradiction.
func ProofToTarget(volume, baseProof, targetProof any) Result {
	var res Result
	inputs := []struct {
		name string
		v    numeric.Value
		dst  *float64
	}{
		{"sample volume", numeric.Positive(volume), &res.SampleVolume},
		{"base proof", numeric.Positive(baseProof), &res.BaseProof},
		{"target proof", numeric.Positive(targetProof), &res.TargetProof},
	}

	valid := true
	for _, in := range inputs {
		if !in.v.OK {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %s", in.name, in.v.Reason))
			valid = false
			continue
		}
		*in.dst = in.v.V
	}
	if !valid {
		return Result{Warnings: res.Warnings}
	}

	if res.TargetProof > res.BaseProof {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"target proof %g is above base proof %g: water alone cannot raise proof", res.TargetProof, res.BaseProof))
	}

	spirit := res.SampleVolume * (res.TargetProof / res.BaseProof)
	water := res.SampleVolume - spirit

	res.BaseSpiritVolume = numeric.Round(numeric.Floor0(spirit), 1)
	res.WaterVolume = numeric.Round(numeric.Floor0(water), 1)
	return res
}
