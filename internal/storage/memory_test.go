package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/logger"
)

func testScenario(id string, created time.Time) *domain.Scenario {
	return &domain.Scenario{
		ID:   id,
		Name: "scenario " + id,
		Input: domain.BatchInput{
			RecipeID:   "corn-sugar-55",
			FillVolume: 55.0,
			TargetABV:  8.0,
		},
		Output: domain.Batch{
			RecipeID:   "corn-sugar-55",
			Kind:       domain.KindMoonshine,
			FillVolume: 55,
			WashABV:    11.09,
		},
		CreatedAt: created,
	}
}

// exerciseStore runs the same CRUD sequence against any ScenarioStore.
func exerciseStore(t *testing.T, store domain.ScenarioStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Save out of order.
	for _, sc := range []*domain.Scenario{
		testScenario("b", base.Add(time.Hour)),
		testScenario("a", base),
		testScenario("c", base.Add(2*time.Hour)),
	} {
		if err := store.Save(ctx, sc); err != nil {
			t.Fatalf("save %s: %v", sc.ID, err)
		}
	}

	// Load.
	loaded, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "scenario a" || loaded.Output.WashABV != 11.09 {
		t.Fatalf("unexpected scenario: %+v", loaded)
	}
	if !loaded.CreatedAt.Equal(base) {
		t.Fatalf("expected created %v, got %v", base, loaded.CreatedAt)
	}

	// Load nonexistent.
	_, err = store.Load(ctx, "nonexistent")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// List is ordered by creation time.
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Fatalf("list[%d]: expected %s, got %s", i, want, list[i].ID)
		}
	}

	// Overwrite.
	updated := testScenario("a", base)
	updated.Name = "renamed"
	if err := store.Save(ctx, updated); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, _ = store.Load(ctx, "a")
	if loaded.Name != "renamed" {
		t.Fatalf("expected overwrite, got %q", loaded.Name)
	}

	// Delete.
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	exerciseStore(t, NewMemoryStore(logger.New(logger.LevelOff, nil)))
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))

	sc := testScenario("x", time.Now())
	if err := store.Save(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	sc.Name = "mutated after save"

	loaded, _ := store.Load(ctx, "x")
	if loaded.Name != "scenario x" {
		t.Fatalf("store aliased caller's scenario: %q", loaded.Name)
	}
}

func TestMemoryStoreDeepCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))

	sc := testScenario("deep", time.Now())
	sc.Input.Strip = &domain.StripRequest{StillID: "still-53"}
	sc.Output.Warnings = []string{"fill volume clamped"}
	sc.Output.Guidance.Rules = []string{"Wash ABV is capped at 15.0%."}
	sc.Output.Strip = &domain.StripEstimate{StillID: "still-53", ChargeUsed: 40, Warnings: []string{"charge fill clamped"}}
	if err := store.Save(ctx, sc); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutate the caller's copy after saving.
	sc.Input.Strip.StillID = "mutated"
	sc.Output.Warnings[0] = "mutated"
	sc.Output.Guidance.Rules[0] = "mutated"
	sc.Output.Strip.ChargeUsed = 0
	sc.Output.Strip.Warnings[0] = "mutated"

	loaded, err := store.Load(ctx, "deep")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Input.Strip.StillID != "still-53" {
		t.Fatalf("input strip aliased: %q", loaded.Input.Strip.StillID)
	}
	if loaded.Output.Warnings[0] != "fill volume clamped" {
		t.Fatalf("warnings aliased: %q", loaded.Output.Warnings[0])
	}
	if loaded.Output.Guidance.Rules[0] != "Wash ABV is capped at 15.0%." {
		t.Fatalf("rules aliased: %q", loaded.Output.Guidance.Rules[0])
	}
	if loaded.Output.Strip.ChargeUsed != 40 || loaded.Output.Strip.Warnings[0] != "charge fill clamped" {
		t.Fatalf("strip aliased: %+v", loaded.Output.Strip)
	}

	// Mutating a loaded copy must not reach the store either.
	loaded.Output.Warnings[0] = "mutated"
	again, _ := store.Load(ctx, "deep")
	if again.Output.Warnings[0] != "fill volume clamped" {
		t.Fatalf("load returned stored slice: %q", again.Output.Warnings[0])
	}
}

func TestBoltStoreCRUD(t *testing.T) {
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "scenarios.db"), logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)
}

func TestBoltStorePersists(t *testing.T) {
	ctx := context.Background()
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "scenarios.db")

	store, err := NewBoltStore(path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(ctx, testScenario("keep", time.Now().UTC())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewBoltStore(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	sc, err := reopened.Load(ctx, "keep")
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if sc.Input.RecipeID != "corn-sugar-55" {
		t.Fatalf("unexpected recipe %q", sc.Input.RecipeID)
	}
	if sc.Output.Kind != domain.KindMoonshine {
		t.Fatalf("expected moonshine kind, got %v", sc.Output.Kind)
	}
}
