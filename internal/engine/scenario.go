package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hammamikhairi/mashcalc/internal/domain"
)

// Capture computes a batch and wraps input and output in a named scenario.
// The scenario is not persisted; hand it to a domain.ScenarioStore.
func (e *Engine) Capture(ctx context.Context, name string, in domain.BatchInput) (*domain.Scenario, error) {
	b, err := e.ComputeBatch(ctx, in)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("%s @ %g gal", b.RecipeID, b.FillVolume)
	}

	sc := &domain.Scenario{
		ID:        generateID(),
		Name:      name,
		Input:     in,
		Output:    *b,
		CreatedAt: e.now().UTC(),
	}
	e.log.Info("captured scenario %s (%q)", sc.ID, sc.Name)
	return sc, nil
}

// Replay recomputes a scenario from its stored input. The stored output is
// only a cache: if the recomputed batch does not encode to the same bytes,
// the fresh batch is returned together with ErrScenarioDiverged.
func (e *Engine) Replay(ctx context.Context, sc *domain.Scenario) (*domain.Batch, error) {
	b, err := e.ComputeBatch(ctx, sc.Input)
	if err != nil {
		return nil, fmt.Errorf("replaying scenario %s: %w", sc.ID, err)
	}

	fresh, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding batch: %w", err)
	}
	stored, err := json.Marshal(sc.Output)
	if err != nil {
		return nil, fmt.Errorf("encoding stored batch: %w", err)
	}

	if !bytes.Equal(fresh, stored) {
		e.log.Warn("scenario %s diverged from recomputation", sc.ID)
		return b, fmt.Errorf("%w: %s", domain.ErrScenarioDiverged, sc.ID)
	}
	e.log.Debug("scenario %s replayed identically", sc.ID)
	return b, nil
}
