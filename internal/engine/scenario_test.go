package engine

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mashcalc/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func TestCaptureScenario(t *testing.T) {
	eng, ctx := setupEngine(t, WithClock(fixedClock))

	in := domain.BatchInput{RecipeID: "corn-sugar-55", FillVolume: 55, TargetABV: 0.2}
	sc, err := eng.Capture(ctx, "  ceiling test  ", in)
	require.NoError(t, err)

	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, "ceiling test", sc.Name)
	assert.Equal(t, fixedClock(), sc.CreatedAt)
	assert.Equal(t, 15.0, sc.Output.TargetABV)

	other, err := eng.Capture(ctx, "", in)
	require.NoError(t, err)
	assert.NotEqual(t, sc.ID, other.ID)
	assert.Equal(t, "corn-sugar-55 @ 55 gal", other.Name)
}

func TestCaptureUnknownRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)

	_, err := eng.Capture(ctx, "x", domain.BatchInput{RecipeID: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnknownRecipe)
}

func TestReplayAfterPersistenceRoundTrip(t *testing.T) {
	eng, ctx := setupEngine(t)

	tests := []struct {
		name string
		in   domain.BatchInput
	}{
		{"moonshine int fill", domain.BatchInput{RecipeID: "corn-sugar-55", FillVolume: 55, TargetABV: 13}},
		{"string inputs", domain.BatchInput{RecipeID: "corn-sugar-55", FillVolume: "110", TargetABV: "0.2"}},
		{"rum adjust with strip", domain.BatchInput{
			RecipeID: "molasses-rum-55", TargetABV: 10, AdjustMode: true,
			Strip: &domain.StripRequest{StillID: "still-53", LowWinesABV: 0.3},
		}},
		{"warnings survive", domain.BatchInput{RecipeID: "all-grain-55", FillVolume: 5000, TargetABV: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := eng.Capture(ctx, tt.name, tt.in)
			require.NoError(t, err)

			data, err := json.Marshal(sc)
			require.NoError(t, err)
			var loaded domain.Scenario
			require.NoError(t, json.Unmarshal(data, &loaded))

			b, err := eng.Replay(ctx, &loaded)
			require.NoError(t, err)
			if diff := cmp.Diff(&sc.Output, b); diff != "" {
				t.Fatalf("replay differs (-stored +fresh):\n%s", diff)
			}
		})
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	eng, ctx := setupEngine(t)

	sc, err := eng.Capture(ctx, "tampered", domain.BatchInput{RecipeID: "corn-sugar-55", TargetABV: 14})
	require.NoError(t, err)
	want := sc.Output.SugarLb
	sc.Output.SugarLb = 1

	b, err := eng.Replay(ctx, sc)
	if !errors.Is(err, domain.ErrScenarioDiverged) {
		t.Fatalf("expected ErrScenarioDiverged, got %v", err)
	}
	require.NotNil(t, b)
	assert.Equal(t, want, b.SugarLb, "fresh batch is the source of truth")
}

func TestReplayUnknownRecipe(t *testing.T) {
	eng, ctx := setupEngine(t)

	_, err := eng.Replay(ctx, &domain.Scenario{ID: "s1", Input: domain.BatchInput{RecipeID: "gone"}})
	assert.ErrorIs(t, err, domain.ErrUnknownRecipe)
}
