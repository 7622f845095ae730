// Package definitions provides the static catalog of recipes, tanks, stills
// and bottling products.
package definitions

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
)

// Compile-time interface check.
var _ domain.DefinitionSource = (*Registry)(nil)

// Registry holds definitions in memory. It is populated at startup (built-ins
// plus an optional overlay file) and only read afterwards. Lookups hand out
// copies so callers cannot mutate the catalog.
type Registry struct {
	mu       sync.RWMutex
	recipes  map[string]domain.Recipe
	tanks    map[string]domain.Tank
	stills   map[string]domain.Still
	products map[string]domain.Product
	log      *logger.Logger
}

// NewRegistry creates a registry preloaded with the built-in catalog.
func NewRegistry(log *logger.Logger) *Registry {
	r := newEmpty(log)
	r.seed()
	return r
}

func newEmpty(log *logger.Logger) *Registry {
	return &Registry{
		recipes:  make(map[string]domain.Recipe),
		tanks:    make(map[string]domain.Tank),
		stills:   make(map[string]domain.Still),
		products: make(map[string]domain.Product),
		log:      log,
	}
}

// Recipe returns a recipe by ID.
func (r *Registry) Recipe(ctx context.Context, id string) (*domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recipes[id]
	if !ok {
		r.log.Debug("recipe not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// Tank returns a tank by ID.
func (r *Registry) Tank(ctx context.Context, id string) (*domain.Tank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tanks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// Still returns a still by ID.
func (r *Registry) Still(ctx context.Context, id string) (*domain.Still, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stills[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

// Product returns a bottling product by key.
func (r *Registry) Product(ctx context.Context, key string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// Recipes returns summaries of all recipes, sorted by label.
func (r *Registry) Recipes(ctx context.Context) ([]domain.RecipeSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	r.log.Debug("listing all recipes, count=%d", len(r.recipes))

	out := make([]domain.RecipeSummary, 0, len(r.recipes))
	for _, rec := range r.recipes {
		out = append(out, summarize(rec))
	}
	sortSummaries(out)
	return out, nil
}

// Search returns recipes whose id, label, kind or notes contain the query.
func (r *Registry) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	r.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, rec := range r.recipes {
		if matches(rec, q) {
			out = append(out, summarize(rec))
		}
	}
	sortSummaries(out)
	return out, nil
}

// Tanks returns all tanks sorted by ID.
func (r *Registry) Tanks() []domain.Tank {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Tank, 0, len(r.tanks))
	for _, t := range r.tanks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stills returns all stills sorted by ID.
func (r *Registry) Stills() []domain.Still {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Still, 0, len(r.stills))
	for _, s := range r.stills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Products returns all products sorted by key.
func (r *Registry) Products() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func summarize(rec domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		ID:         rec.ID,
		Label:      rec.Label,
		Kind:       rec.Kind,
		BaseVolume: rec.BaseVolume,
	}
}

func sortSummaries(s []domain.RecipeSummary) {
	sort.Slice(s, func(i, j int) bool { return s[i].Label < s[j].Label })
}

func matches(rec domain.Recipe, query string) bool {
	for _, field := range []string{rec.ID, rec.Label, rec.Kind.String(), rec.Notes} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
