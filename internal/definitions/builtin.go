package definitions

import "github.com/hammamikhairi/mashcalc/internal/domain"

// seed populates the registry with the house catalog.
func (r *Registry) seed() {
	for _, rec := range builtinRecipes() {
		r.recipes[rec.ID] = rec
	}
	for _, t := range builtinTanks() {
		r.tanks[t.ID] = t
	}
	for _, s := range builtinStills() {
		r.stills[s.ID] = s
	}
	for _, p := range builtinProducts() {
		r.products[p.Key] = p
	}
	r.log.Debug("seeded %d recipes, %d tanks, %d stills, %d products",
		len(r.recipes), len(r.tanks), len(r.stills), len(r.products))
}

func builtinRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:         "corn-sugar-55",
			Label:      "Corn & Sugar Shine",
			Kind:       domain.KindMoonshine,
			BaseVolume: 55,
			Grains:     domain.GrainBill{CornLb: 40, MaltLb: 10},
			SugarLb:    100,
			Adjustable: true,
			Yeast:      "Distiller's active dry yeast",
			Notes:      "Cracked corn and malted barley for flavor, table sugar for the bulk of the alcohol.",
		},
		{
			ID:         "all-grain-55",
			Label:      "All-Grain Bourbon Mash",
			Kind:       domain.KindMoonshine,
			BaseVolume: 55,
			Grains:     domain.GrainBill{CornLb: 120, MaltLb: 25},
			Yeast:      "Bourbon strain",
			Notes:      "No added sugar. Target ABV is not adjustable.",
		},
		{
			ID:         "molasses-rum-55",
			Label:      "Molasses Rum",
			Kind:       domain.KindRum,
			BaseVolume: 55,
			Rum:        domain.RumFermentables{MolassesGal: 10, CaneSyrupGal: 3},
			Adjustable: true,
			Yeast:      "Rum yeast, rehydrated",
			Notes:      "Blackstrap molasses with cane syrup. Dunder optional.",
		},
		{
			ID:         "cane-rum-30",
			Label:      "Cane Syrup Rum (small)",
			Kind:       domain.KindRum,
			BaseVolume: 30,
			Rum:        domain.RumFermentables{MolassesGal: 4, CaneSyrupGal: 3},
			Yeast:      "Rum yeast, rehydrated",
			Notes:      "Lighter rum for the small fermenter.",
		},
	}
}

func builtinTanks() []domain.Tank {
	return []domain.Tank{
		{ID: "ferm-1", Name: "Fermenter 1", FillVolume: 55},
		{ID: "ferm-2", Name: "Fermenter 2", FillVolume: 55},
		{ID: "ferm-small", Name: "Small Fermenter", FillVolume: 30},
		{ID: "tote-1", Name: "IBC Tote", FillVolume: 250},
	}
}

func builtinStills() []domain.Still {
	return []domain.Still{
		{ID: "still-53", Name: "53 gal Pot Still", Capacity: 53},
		{ID: "still-26", Name: "26 gal Pot Still", Capacity: 26},
	}
}

func builtinProducts() []domain.Product {
	return []domain.Product{
		{Key: "vodka", Name: "Vodka", BaseProof: 190, DefaultProof: 80},
		{Key: "moonshine", Name: "Moonshine", BaseProof: 130, DefaultProof: 100},
		{Key: "apple-pie", Name: "Apple Pie Moonshine", BaseProof: 190, DefaultProof: 40, AllowsSugar: true},
		{Key: "white-rum", Name: "White Rum", BaseProof: 160, DefaultProof: 80},
	}
}
