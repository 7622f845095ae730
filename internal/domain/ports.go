package domain

import "context"

// DefinitionSource provides the static catalog of recipes, tanks, stills and
// products. Implementations are read-only once loaded. Lookups return
// ErrNotFound for unregistered ids.
type DefinitionSource interface {
	Recipe(ctx context.Context, id string) (*Recipe, error)
	Tank(ctx context.Context, id string) (*Tank, error)
	Still(ctx context.Context, id string) (*Still, error)
	Product(ctx context.Context, key string) (*Product, error)
	Recipes(ctx context.Context) ([]RecipeSummary, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// ScenarioStore persists scenarios. Implementations can be in-memory,
// bbolt, or any other backend. The engine never depends on a store.
type ScenarioStore interface {
	Save(ctx context.Context, scenario *Scenario) error
	Load(ctx context.Context, id string) (*Scenario, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Scenario, error)
}
