package definitions

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/mashcalc/internal/domain"
)

// Document is the on-disk shape of a definitions overlay.
type Document struct {
	Tanks    []domain.Tank    `yaml:"tanks"`
	Stills   []domain.Still   `yaml:"stills"`
	Recipes  []domain.Recipe  `yaml:"recipes"`
	Products []domain.Product `yaml:"products"`
}

// LoadFile reads a YAML overlay and merges it over the current catalog.
// Entries replace existing ones with the same id. Call it during startup,
// before the registry is handed to the engine.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading definitions: %w", err)
	}
	if err := r.Load(data); err != nil {
		return fmt.Errorf("definitions %s: %w", path, err)
	}
	r.log.Info("loaded definitions from %s", path)
	return nil
}

// Load parses a YAML overlay and merges it. Nothing is merged if any entry
// fails validation.
func (r *Registry) Load(data []byte) error {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range doc.Tanks {
		r.tanks[t.ID] = t
	}
	for _, s := range doc.Stills {
		r.stills[s.ID] = s
	}
	for _, rec := range doc.Recipes {
		r.recipes[rec.ID] = rec
	}
	for _, p := range doc.Products {
		r.products[p.Key] = p
	}
	r.log.Debug("merged %d recipes, %d tanks, %d stills, %d products",
		len(doc.Recipes), len(doc.Tanks), len(doc.Stills), len(doc.Products))
	return nil
}

// Validate checks every entry and reports all problems at once.
func (d *Document) Validate() error {
	var errs []error
	for i, t := range d.Tanks {
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("tanks[%d]: id is required", i))
		}
		if t.FillVolume <= 0 {
			errs = append(errs, fmt.Errorf("tank %q: fill_volume must be positive", t.ID))
		}
	}
	for i, s := range d.Stills {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("stills[%d]: id is required", i))
		}
		if s.Capacity <= 0 {
			errs = append(errs, fmt.Errorf("still %q: capacity must be positive", s.ID))
		}
	}
	for i, rec := range d.Recipes {
		if rec.ID == "" {
			errs = append(errs, fmt.Errorf("recipes[%d]: id is required", i))
		}
		if rec.Kind == domain.KindUnknown {
			errs = append(errs, fmt.Errorf("recipe %q: kind is required", rec.ID))
		}
		if rec.BaseVolume <= 0 {
			errs = append(errs, fmt.Errorf("recipe %q: base_volume must be positive", rec.ID))
		}
	}
	for i, p := range d.Products {
		if p.Key == "" {
			errs = append(errs, fmt.Errorf("products[%d]: key is required", i))
		}
		if p.BaseProof <= 0 || p.DefaultProof <= 0 {
			errs = append(errs, fmt.Errorf("product %q: base_proof and default_proof must be positive", p.Key))
		}
	}
	return errors.Join(errs...)
}
