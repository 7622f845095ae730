package definitions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
)

func TestRegistryRecipes(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	reg := NewRegistry(log)
	ctx := context.Background()

	recipes, err := reg.Recipes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recipes) < 4 {
		t.Fatalf("expected at least 4 recipes, got %d", len(recipes))
	}
	for i := 1; i < len(recipes); i++ {
		if recipes[i-1].Label > recipes[i].Label {
			t.Fatalf("recipes not sorted by label: %q before %q", recipes[i-1].Label, recipes[i].Label)
		}
	}
}

func TestRegistryRecipe(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	reg := NewRegistry(log)
	ctx := context.Background()

	tests := []struct {
		id       string
		wantKind domain.Kind
		wantErr  error
	}{
		{"corn-sugar-55", domain.KindMoonshine, nil},
		{"all-grain-55", domain.KindMoonshine, nil},
		{"molasses-rum-55", domain.KindRum, nil},
		{"nonexistent", domain.KindUnknown, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec, err := reg.Recipe(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Kind != tt.wantKind {
				t.Fatalf("expected kind %s, got %s", tt.wantKind, rec.Kind)
			}
			if rec.BaseVolume <= 0 {
				t.Fatal("recipe has no base volume")
			}
		})
	}
}

func TestRegistryLookupsReturnCopies(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	rec, err := reg.Recipe(ctx, "corn-sugar-55")
	require.NoError(t, err)
	rec.SugarLb = 9999

	again, err := reg.Recipe(ctx, "corn-sugar-55")
	require.NoError(t, err)
	assert.Equal(t, 100.0, again.SugarLb)
}

func TestRegistrySearch(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	tests := []struct {
		query    string
		minCount int
	}{
		{"rum", 2},
		{"corn", 1},
		{"BOURBON", 1},
		{"nonexistent-query-xyz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := reg.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(results), tt.minCount)
			if tt.minCount == 0 {
				assert.Empty(t, results)
			}
		})
	}
}

func TestRegistryEquipment(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	still, err := reg.Still(ctx, "still-53")
	require.NoError(t, err)
	assert.Equal(t, 53.0, still.Capacity)

	tank, err := reg.Tank(ctx, "ferm-1")
	require.NoError(t, err)
	assert.Equal(t, 55.0, tank.FillVolume)

	_, err = reg.Still(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = reg.Tank(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = reg.Product(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NotEmpty(t, reg.Tanks())
	assert.NotEmpty(t, reg.Stills())
	assert.NotEmpty(t, reg.Products())
}

const overlay = `
stills:
  - id: still-100
    name: 100 gal Pot Still
    capacity: 100
recipes:
  - id: corn-sugar-55
    label: Corn & Sugar Shine (heavy)
    kind: moonshine
    base_volume: 55
    grains: {corn_lb: 40, malt_lb: 10}
    sugar_lb: 120
    adjustable: true
  - id: spiced-rum-55
    label: Spiced Rum Base
    kind: rum
    base_volume: 55
    rum: {molasses_gal: 9, cane_syrup_gal: 4}
products:
  - key: spiced-rum
    name: Spiced Rum
    base_proof: 150
    default_proof: 70
    allows_sugar: true
`

func TestRegistryLoadFileOverlay(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "definitions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))
	require.NoError(t, reg.LoadFile(path))

	rec, err := reg.Recipe(ctx, "corn-sugar-55")
	require.NoError(t, err)
	assert.Equal(t, 120.0, rec.SugarLb, "file entry replaces built-in")

	rum, err := reg.Recipe(ctx, "spiced-rum-55")
	require.NoError(t, err)
	assert.Equal(t, domain.KindRum, rum.Kind)
	assert.Equal(t, 9.0, rum.Rum.MolassesGal)

	still, err := reg.Still(ctx, "still-100")
	require.NoError(t, err)
	assert.Equal(t, 100.0, still.Capacity)

	p, err := reg.Product(ctx, "spiced-rum")
	require.NoError(t, err)
	assert.True(t, p.AllowsSugar)

	_, err = reg.Still(ctx, "still-53")
	assert.NoError(t, err, "built-ins survive an overlay")
}

func TestRegistryLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", "recipes:\n  - id: x\n    kind: whisky\n    base_volume: 10\n"},
		{"missing kind", "recipes:\n  - id: x\n    base_volume: 10\n"},
		{"zero base volume", "recipes:\n  - id: x\n    kind: rum\n"},
		{"zero capacity", "stills:\n  - id: s\n"},
		{"unknown field", "tanks:\n  - id: t\n    fill_volume: 5\n    colour: red\n"},
		{"product without proof", "products:\n  - key: p\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry(logger.New(logger.LevelOff, nil))
			before := len(reg.Stills())
			assert.Error(t, reg.Load([]byte(tt.doc)))
			assert.Len(t, reg.Stills(), before)
		})
	}
}

func TestRegistryLoadFileMissing(t *testing.T) {
	reg := NewRegistry(logger.New(logger.LevelOff, nil))
	err := reg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
