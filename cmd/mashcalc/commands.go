package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mashcalc/internal/display"
	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/proofing"
	"github.com/hammamikhairi/mashcalc/internal/scaler"
	"github.com/hammamikhairi/mashcalc/internal/still"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "mashcalc",
		Short: "Mash, strip, proofing and bottling calculator",
		Long: `mashcalc scales fermentation recipes to a tank, nudges the adjustable
fermentable toward a target wash ABV within the spirit's rules, estimates
the low wines from a stripping run, and works out proofing and bottling
quantities.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), display.RenderBanner(0))
			return cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./mashcalc.yaml)")
	pf.String("log-level", "normal", "log level: off, normal, verbose")
	pf.String("log-format", "console", "log format: console, json")
	pf.String("log-file", "stderr", "file to write logs to")
	pf.StringP("output", "o", "table", "output format: table, json")
	pf.String("definitions", "", "YAML file with extra tanks, stills, recipes and products")
	pf.String("scenario-db", ".mashcalc/scenarios.db", `scenario database path (":memory:" for none)`)
	pf.Bool("sugar-displacement", false, "count dissolved sugar volume when scaling sweetened products")

	root.AddCommand(
		newRecipesCmd(a),
		newDefsCmd(a),
		newRulesCmd(a),
		newBatchCmd(a),
		newStripCmd(a),
		newProofCmd(a),
		newScaleCmd(a),
		newScenarioCmd(a),
	)
	return root
}

// optional turns an unset string flag into nil so it reads as "not given"
// and stays out of saved scenarios.
func optional(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// ── Catalog ──────────────────────────────────────────────────────

func newRecipesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.defs.Recipes(cmd.Context())
			if err != nil {
				return err
			}
			return a.out.Recipes(list)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes by id, label or notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.defs.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return a.out.Recipes(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <recipe>",
		Short: "Show a recipe definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.engine.Recipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.out.Recipe(rec)
		},
	})
	return cmd
}

func newDefsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "defs",
		Short: "List tanks, stills and products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.out.Definitions(a.defs.Tanks(), a.defs.Stills(), a.defs.Products())
		},
	}
}

func newRulesCmd(a *app) *cobra.Command {
	var adjust bool
	cmd := &cobra.Command{
		Use:   "rules <moonshine|rum>",
		Short: "Show the fermentation rules for a spirit kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := domain.KindFromString(strings.ToLower(args[0]))
			rs, ok := a.rules.For(kind)
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrUnsupportedRecipeKind, args[0])
			}
			return a.out.Rules(rs, a.engine.Annotations(kind, adjust))
		},
	}
	cmd.Flags().BoolVar(&adjust, "adjust", false, "show the rules as they apply in adjust mode")
	return cmd
}

// ── Batch ────────────────────────────────────────────────────────

// batchFlags are shared by "batch" and "scenario save".
type batchFlags struct {
	tank       string
	fill       string
	abv        string
	adjust     bool
	still      string
	chargeFill string
	lowWines   string
}

func (f *batchFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.tank, "tank", "", "tank id; its working fill is used when --fill is empty")
	fs.StringVar(&f.fill, "fill", "", "fill volume in gallons")
	fs.StringVar(&f.abv, "abv", "", "target wash ABV (percent, or a fraction like 0.08)")
	fs.BoolVar(&f.adjust, "adjust", false, "rum: let the target ABV raise the molasses")
	fs.StringVar(&f.still, "still", "", "still id; adds a strip estimate for the batch")
	fs.StringVar(&f.chargeFill, "charge-fill", "", "still charge fill percent")
	fs.StringVar(&f.lowWines, "low-wines", "", "expected low-wines ABV")
}

func (f *batchFlags) input(recipeID string) domain.BatchInput {
	in := domain.BatchInput{
		RecipeID:   recipeID,
		TankID:     f.tank,
		FillVolume: optional(f.fill),
		TargetABV:  optional(f.abv),
		AdjustMode: f.adjust,
	}
	if f.still != "" {
		in.Strip = &domain.StripRequest{
			StillID:           f.still,
			ChargeFillPercent: optional(f.chargeFill),
			LowWinesABV:       optional(f.lowWines),
		}
	}
	return in
}

func newBatchCmd(a *app) *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "batch <recipe>",
		Short: "Scale a recipe to a fill volume and target ABV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.engine.ComputeBatch(cmd.Context(), flags.input(args[0]))
			if err != nil {
				return err
			}
			return a.out.Batch(b)
		},
	}
	flags.register(cmd)
	return cmd
}

// ── Calculators ──────────────────────────────────────────────────

func newStripCmd(a *app) *cobra.Command {
	var stillID, abv, volume, capacity, chargeFill, lowWines string
	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Estimate low wines from one stripping run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := a.engine.EstimateStrip(cmd.Context(), stillID, still.Params{
				WashABV:           optional(abv),
				FermenterVolume:   optional(volume),
				StillCapacity:     optional(capacity),
				ChargeFillPercent: optional(chargeFill),
				LowWinesABV:       optional(lowWines),
			})
			if err != nil {
				return err
			}
			return a.out.Strip(est)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&stillID, "still", "", "still id (replaces --capacity)")
	fs.StringVar(&abv, "abv", "", "wash ABV")
	fs.StringVar(&volume, "volume", "", "wash volume available in the fermenter, gallons")
	fs.StringVar(&capacity, "capacity", "", "still capacity, gallons")
	fs.StringVar(&chargeFill, "charge-fill", "", "charge fill percent")
	fs.StringVar(&lowWines, "low-wines", "", "expected low-wines ABV")
	return cmd
}

func newProofCmd(a *app) *cobra.Command {
	var volume, base, target string
	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Split a final volume into base spirit and water at a target proof",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.out.Proof(proofing.ProofToTarget(optional(volume), optional(base), optional(target)))
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&volume, "volume", "", "final volume")
	fs.StringVar(&base, "base", "", "proof of the spirit on hand")
	fs.StringVar(&target, "target", "", "target proof")
	return cmd
}

func newScaleCmd(a *app) *cobra.Command {
	var volume, proof, sugar string
	cmd := &cobra.Command{
		Use:   "scale <product>",
		Short: "Compute spirit, water and sugar for a bottling run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.scaler.Scale(cmd.Context(), scaler.Request{
				ProductKey:   args[0],
				TargetVolume: optional(volume),
				TargetProof:  optional(proof),
				SugarWeight:  optional(sugar),
			})
			if err != nil {
				return err
			}
			return a.out.Scale(res)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&volume, "volume", "", "target volume, gallons")
	fs.StringVar(&proof, "proof", "", "target proof (default: the product's)")
	fs.StringVar(&sugar, "sugar", "", "sugar weight, lb")
	return cmd
}

// ── Scenarios ────────────────────────────────────────────────────

func newScenarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scenario",
		Aliases: []string{"scenarios"},
		Short:   "Save, inspect and replay batch scenarios",
	}

	var flags batchFlags
	var name string
	save := &cobra.Command{
		Use:   "save <recipe>",
		Short: "Compute a batch and save it as a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.scenarios()
			if err != nil {
				return err
			}
			sc, err := a.engine.Capture(cmd.Context(), name, flags.input(args[0]))
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), sc); err != nil {
				return fmt.Errorf("saving scenario: %w", err)
			}
			return a.out.Scenario(sc)
		},
	}
	flags.register(save)
	save.Flags().StringVar(&name, "name", "", "scenario name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.scenarios()
			if err != nil {
				return err
			}
			all, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			return a.out.Scenarios(all)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.findScenario(cmd, args[0])
			if err != nil {
				return err
			}
			return a.out.Scenario(sc)
		},
	}

	replay := &cobra.Command{
		Use:   "replay <id>",
		Short: "Recompute a scenario and check it still matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.findScenario(cmd, args[0])
			if err != nil {
				return err
			}
			b, err := a.engine.Replay(cmd.Context(), sc)
			if errors.Is(err, domain.ErrScenarioDiverged) {
				if rerr := a.out.Batch(b); rerr != nil {
					return rerr
				}
				return err
			}
			if err != nil {
				return err
			}
			return a.out.Message("scenario %s replays identically", sc.ID)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := a.findScenario(cmd, args[0])
			if err != nil {
				return err
			}
			if err := a.store.Delete(cmd.Context(), sc.ID); err != nil {
				return err
			}
			return a.out.Message("deleted scenario %s", sc.ID)
		},
	}

	cmd.AddCommand(save, list, show, replay, del)
	return cmd
}

// findScenario loads a scenario by full id, or by a unique id prefix as
// shown in "scenario list".
func (a *app) findScenario(cmd *cobra.Command, id string) (*domain.Scenario, error) {
	store, err := a.scenarios()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	sc, err := store.Load(ctx, id)
	if err == nil {
		return sc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	all, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Scenario
	for _, s := range all {
		if strings.HasPrefix(s.ID, id) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("scenario %q: %w", id, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("scenario prefix %q matches %d scenarios", id, len(matches))
	}
}
