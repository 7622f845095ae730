// Package storage provides scenario persistence implementations.
package storage

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
)

// Compile-time interface check.
var _ domain.ScenarioStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory scenario store. Safe for concurrent access.
type MemoryStore struct {
	mu        sync.RWMutex
	scenarios map[string]*domain.Scenario
	log       *logger.Logger
}

// NewMemoryStore creates an empty in-memory scenario store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		scenarios: make(map[string]*domain.Scenario),
		log:       log,
	}
}

// Save persists a scenario. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, sc *domain.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving scenario %s (recipe=%s)", sc.ID, sc.Input.RecipeID)
	s.scenarios[sc.ID] = cloneScenario(sc)
	return nil
}

// Load retrieves a scenario by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scenarios[id]
	if !ok {
		s.log.Debug("scenario not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return cloneScenario(sc), nil
}

// Delete removes a scenario by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenarios[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.scenarios, id)
	s.log.Debug("deleted scenario %s", id)
	return nil
}

// List returns all scenarios, oldest first.
func (s *MemoryStore) List(ctx context.Context) ([]*domain.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Scenario, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		out = append(out, cloneScenario(sc))
	}
	sortScenarios(out)
	s.log.Debug("listing scenarios, count=%d", len(out))
	return out, nil
}

// cloneScenario copies sc including the slices and pointers it holds, so
// neither the caller nor the store can change the other's copy.
func cloneScenario(sc *domain.Scenario) *domain.Scenario {
	cp := *sc
	if sc.Input.Strip != nil {
		strip := *sc.Input.Strip
		cp.Input.Strip = &strip
	}
	cp.Output.Warnings = slices.Clone(sc.Output.Warnings)
	cp.Output.Guidance.Rules = slices.Clone(sc.Output.Guidance.Rules)
	if sc.Output.Strip != nil {
		est := *sc.Output.Strip
		est.Warnings = slices.Clone(sc.Output.Strip.Warnings)
		cp.Output.Strip = &est
	}
	return &cp
}

func sortScenarios(list []*domain.Scenario) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
