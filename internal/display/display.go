// Package display renders engine results for the terminal.
//
// Results are printed as go-pretty tables, or as indented JSON when the
// renderer is built with [WithJSON]. Warnings and headings are styled with
// lipgloss; under a non-TTY writer lipgloss drops the colours.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/proofing"
	"github.com/hammamikhairi/mashcalc/internal/scaler"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle is muted slate, used for the banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	// Secondary text: dimmed zinc for rule lines and hints.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	// Urgent: soft coral for errors.
	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))
)

// ── Renderer ─────────────────────────────────────────────────────

// Option configures a Renderer.
type Option func(*Renderer)

// WithJSON switches output to indented JSON.
func WithJSON(on bool) Option {
	return func(r *Renderer) { r.json = on }
}

// WithWidth caps table rows at cols columns. Zero means unlimited.
func WithWidth(cols int) Option {
	return func(r *Renderer) { r.width = cols }
}

// Renderer writes results to w.
type Renderer struct {
	w     io.Writer
	json  bool
	width int
}

// New creates a renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSON reports whether the renderer emits JSON.
func (r *Renderer) JSON() bool { return r.json }

func (r *Renderer) encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	if r.width > 0 {
		t.SetAllowedRowLength(r.width)
	}
	return t
}

func (r *Renderer) heading(s string) {
	fmt.Fprintln(r.w, headingStyle.Render(s))
}

// Warnings prints one styled line per warning.
func (r *Renderer) Warnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(r.w, warnStyle.Render("  ! "+w))
	}
}

// Error prints a styled error line. Always plain text, even in JSON mode,
// so it can go to stderr.
func (r *Renderer) Error(err error) {
	fmt.Fprintln(r.w, urgentStyle.Render("error: "+err.Error()))
}

// Message prints a plain status line, or {"message": ...} in JSON mode.
func (r *Renderer) Message(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if r.json {
		return r.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// ── Catalog ──────────────────────────────────────────────────────

// Recipes renders recipe summaries.
func (r *Renderer) Recipes(list []domain.RecipeSummary) error {
	if r.json {
		return r.encode(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(r.w, "(no recipes)")
		return nil
	}
	t := r.newTable("")
	t.AppendHeader(table.Row{"ID", "Label", "Kind", "Base (gal)"})
	for _, s := range list {
		t.AppendRow(table.Row{s.ID, s.Label, s.Kind, gal(s.BaseVolume)})
	}
	setAlignRight(t, 4)
	t.Render()
	return nil
}

// Recipe renders a full recipe definition.
func (r *Renderer) Recipe(rec *domain.Recipe) error {
	if r.json {
		return r.encode(rec)
	}
	t := r.newTable(rec.Label)
	t.AppendRow(table.Row{"ID", rec.ID})
	t.AppendRow(table.Row{"Kind", rec.Kind})
	t.AppendRow(table.Row{"Base volume", gal(rec.BaseVolume)})
	switch rec.Kind {
	case domain.KindRum:
		t.AppendRow(table.Row{"Molasses", gal(rec.Rum.MolassesGal)})
		t.AppendRow(table.Row{"Cane syrup", gal(rec.Rum.CaneSyrupGal)})
	default:
		t.AppendRow(table.Row{"Corn", lb(rec.Grains.CornLb)})
		t.AppendRow(table.Row{"Malt", lb(rec.Grains.MaltLb)})
		t.AppendRow(table.Row{"Sugar", lb(rec.SugarLb)})
	}
	t.AppendRow(table.Row{"Adjustable", yesNo(rec.Adjustable)})
	if rec.Yeast != "" {
		t.AppendRow(table.Row{"Yeast", rec.Yeast})
	}
	if rec.Notes != "" {
		t.AppendRow(table.Row{"Notes", rec.Notes})
	}
	t.Render()
	return nil
}

// Definitions renders the equipment and product catalogs.
func (r *Renderer) Definitions(tanks []domain.Tank, stills []domain.Still, products []domain.Product) error {
	if r.json {
		return r.encode(struct {
			Tanks    []domain.Tank    `json:"tanks"`
			Stills   []domain.Still   `json:"stills"`
			Products []domain.Product `json:"products"`
		}{tanks, stills, products})
	}

	t := r.newTable("Tanks")
	t.AppendHeader(table.Row{"ID", "Name", "Fill (gal)"})
	for _, tk := range tanks {
		t.AppendRow(table.Row{tk.ID, tk.Name, gal(tk.FillVolume)})
	}
	setAlignRight(t, 3)
	t.Render()

	t = r.newTable("Stills")
	t.AppendHeader(table.Row{"ID", "Name", "Capacity (gal)"})
	for _, st := range stills {
		t.AppendRow(table.Row{st.ID, st.Name, gal(st.Capacity)})
	}
	setAlignRight(t, 3)
	t.Render()

	t = r.newTable("Products")
	t.AppendHeader(table.Row{"Key", "Name", "Base proof", "Default proof", "Sugar"})
	for _, p := range products {
		t.AppendRow(table.Row{p.Key, p.Name, num(p.BaseProof), num(p.DefaultProof), yesNo(p.AllowsSugar)})
	}
	t.Render()
	return nil
}

// Rules renders a rule set with its annotation lines.
func (r *Renderer) Rules(rs domain.RuleSet, annotations []string) error {
	if r.json {
		return r.encode(struct {
			domain.RuleSet
			Annotations []string `json:"annotations"`
		}{rs, annotations})
	}
	t := r.newTable(fmt.Sprintf("Rules: %s", rs.Kind))
	t.AppendRow(table.Row{"Wash ABV ceiling", pct(rs.MaxWashABVPercent)})
	t.AppendRow(table.Row{"Increase only", yesNo(rs.MonotonicAdjust)})
	t.AppendRow(table.Row{"Target ignored by default", yesNo(rs.IgnoreTargetABVByDefault)})
	t.AppendRow(table.Row{"pH", fmt.Sprintf("%.1f-%.1f (aim %.1f)", rs.PHMin, rs.PHMax, rs.PHNominal)})
	t.AppendRow(table.Row{"Yeast", fmt.Sprintf("%g g/gal", rs.YeastGramsPerGal)})
	t.AppendRow(table.Row{"Nutrient", fmt.Sprintf("%g g/gal", rs.NutrientGramsPerGal)})
	t.Render()
	r.ruleLines(annotations)
	return nil
}

func (r *Renderer) ruleLines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(r.w, secondaryStyle.Render("  - "+l))
	}
}

// ── Calculators ──────────────────────────────────────────────────

// Batch renders a computed batch, followed by its strip estimate if any.
func (r *Renderer) Batch(b *domain.Batch) error {
	if r.json {
		return r.encode(b)
	}
	r.batchTables(b)
	return nil
}

func (r *Renderer) batchTables(b *domain.Batch) {
	t := r.newTable(fmt.Sprintf("Batch: %s (%s)", b.RecipeID, b.Kind))
	fill := gal(b.FillVolume)
	if b.FillClamped {
		fill += " (clamped)"
	}
	t.AppendRow(table.Row{"Fill volume", fill})
	t.AppendRow(table.Row{"Baseline ABV", pct(b.BaselineABV)})
	if b.RequestedABV > 0 {
		req := pct(b.RequestedABV)
		if b.ABVNormalized {
			req += " (from fraction)"
		}
		t.AppendRow(table.Row{"Requested ABV", req})
	}
	if b.TargetABV > 0 {
		t.AppendRow(table.Row{"Target ABV", pct(b.TargetABV) + targetFlags(b)})
	}
	t.AppendRow(table.Row{"Wash ABV", pct(b.WashABV)})
	t.AppendRow(table.Row{"Ethanol", gal(b.EthanolGal)})
	t.AppendSeparator()
	switch b.Kind {
	case domain.KindRum:
		t.AppendRow(table.Row{"Molasses", change(b.BaselineRum.MolassesGal, b.Rum.MolassesGal, "gal")})
		t.AppendRow(table.Row{"Cane syrup", change(b.BaselineRum.CaneSyrupGal, b.Rum.CaneSyrupGal, "gal")})
	default:
		t.AppendRow(table.Row{"Corn", lb(b.Grains.CornLb)})
		t.AppendRow(table.Row{"Malt", lb(b.Grains.MaltLb)})
		t.AppendRow(table.Row{"Sugar", change(b.BaselineSugarLb, b.SugarLb, "lb")})
	}
	t.AppendSeparator()
	g := b.Guidance
	t.AppendRow(table.Row{"pH", fmt.Sprintf("%.1f-%.1f (aim %.1f)", g.PHMin, g.PHMax, g.PHNominal)})
	t.AppendRow(table.Row{"Yeast", grams(g.YeastGrams) + yeastName(b.Yeast)})
	t.AppendRow(table.Row{"Nutrient", grams(g.NutrientGrams)})
	if b.Notes != "" {
		t.AppendRow(table.Row{"Notes", b.Notes})
	}
	t.Render()
	r.ruleLines(g.Rules)
	r.Warnings(b.Warnings)

	if b.Strip != nil {
		r.stripTable(*b.Strip)
	}
}

// Strip renders a standalone strip estimate.
func (r *Renderer) Strip(est domain.StripEstimate) error {
	if r.json {
		return r.encode(est)
	}
	r.stripTable(est)
	return nil
}

func (r *Renderer) stripTable(est domain.StripEstimate) {
	title := "Strip run"
	if est.StillID != "" {
		title += ": " + est.StillID
	}
	t := r.newTable(title)
	t.AppendRow(table.Row{"Wash ABV", pct(est.WashABV)})
	t.AppendRow(table.Row{"Fermenter", gal(est.FermenterVolume)})
	t.AppendRow(table.Row{"Still capacity", gal(est.StillCapacity)})
	t.AppendRow(table.Row{"Charge fill", pct(est.ChargeFillPercent)})
	t.AppendRow(table.Row{"Planned charge", gal(est.PlannedCharge)})
	used := gal(est.ChargeUsed)
	if est.LimitedByFermenter {
		used += " (limited by fermenter)"
	}
	t.AppendRow(table.Row{"Charge used", used})
	t.AppendRow(table.Row{"Ethanol in charge", gal(est.EthanolInCharge)})
	t.AppendRow(table.Row{"Low wines", fmt.Sprintf("%s @ %s", gal(est.LowWinesVolume), pct(est.LowWinesABV))})
	t.Render()
	r.Warnings(est.Warnings)
}

// Proof renders a proofing split.
func (r *Renderer) Proof(res proofing.Result) error {
	if r.json {
		return r.encode(res)
	}
	t := r.newTable("Proofing")
	t.AppendRow(table.Row{"Sample volume", num(res.SampleVolume)})
	t.AppendRow(table.Row{"Base proof", num(res.BaseProof)})
	t.AppendRow(table.Row{"Target proof", num(res.TargetProof)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Base spirit", fmt.Sprintf("%.1f", res.BaseSpiritVolume)})
	t.AppendRow(table.Row{"Water", fmt.Sprintf("%.1f", res.WaterVolume)})
	t.Render()
	r.Warnings(res.Warnings)
	return nil
}

// Scale renders a scaled bottling recipe.
func (r *Renderer) Scale(res *scaler.Result) error {
	if r.json {
		return r.encode(res)
	}
	t := r.newTable(fmt.Sprintf("Scale: %s", res.ProductName))
	t.AppendRow(table.Row{"Target", fmt.Sprintf("%s @ %s proof", gal(res.TargetVolume), num(res.TargetProof))})
	t.AppendRow(table.Row{"Base proof", num(res.BaseProof)})
	t.AppendRow(table.Row{"Proof gallons", fmt.Sprintf("%.2f", res.ProofGallons)})
	t.AppendSeparator()
	t.AppendRow(table.Row{"Base spirit", gal(res.AlcoholVolume)})
	if res.SugarVolume > 0 {
		t.AppendRow(table.Row{"Sugar displacement", gal(res.SugarVolume)})
	}
	t.AppendRow(table.Row{"Water", gal(res.WaterVolume)})
	t.Render()
	r.Warnings(res.Warnings)
	return nil
}

// ── Scenarios ────────────────────────────────────────────────────

// Scenarios renders a scenario listing.
func (r *Renderer) Scenarios(list []*domain.Scenario) error {
	if r.json {
		return r.encode(list)
	}
	if len(list) == 0 {
		fmt.Fprintln(r.w, "(no scenarios)")
		return nil
	}
	t := r.newTable("")
	t.AppendHeader(table.Row{"ID", "Name", "Recipe", "Wash ABV", "Created"})
	for _, sc := range list {
		t.AppendRow(table.Row{
			shortID(sc.ID), sc.Name, sc.Input.RecipeID, pct(sc.Output.WashABV),
			sc.CreatedAt.Local().Format(time.DateTime),
		})
	}
	t.Render()
	return nil
}

// Scenario renders one scenario: its header followed by the stored batch.
func (r *Renderer) Scenario(sc *domain.Scenario) error {
	if r.json {
		return r.encode(sc)
	}
	r.heading(fmt.Sprintf("%s  [%s]", sc.Name, sc.ID))
	fmt.Fprintln(r.w, secondaryStyle.Render("  saved "+sc.CreatedAt.Local().Format(time.DateTime)))
	r.batchTables(&sc.Output)
	return nil
}

// ── Formatting ───────────────────────────────────────────────────

func setAlignRight(t table.Writer, col int) {
	t.SetColumnConfigs([]table.ColumnConfig{{Number: col, Align: text.AlignRight}})
}

func targetFlags(b *domain.Batch) string {
	var flags []string
	if b.RaisedToBaseline {
		flags = append(flags, "raised to baseline")
	}
	if b.CappedAtCeiling {
		flags = append(flags, "capped")
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ", ") + ")"
}

func change(before, after float64, unit string) string {
	if after == before {
		return fmt.Sprintf("%.2f %s", after, unit)
	}
	return fmt.Sprintf("%.2f -> %.2f %s", before, after, unit)
}

func yeastName(name string) string {
	if name == "" {
		return ""
	}
	return " " + name
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func pct(v float64) string   { return fmt.Sprintf("%.2f%%", v) }
func gal(v float64) string   { return fmt.Sprintf("%.2f gal", v) }
func lb(v float64) string    { return fmt.Sprintf("%.2f lb", v) }
func grams(v float64) string { return fmt.Sprintf("%.0f g", v) }
func num(v float64) string   { return fmt.Sprintf("%g", v) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
