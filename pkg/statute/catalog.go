package statute

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/penal_code.yaml
var dataFS embed.FS

const defaultDataPath = "data/penal_code.yaml"

// ErrNotFound is returned when a statute id is not in the catalog.
var ErrNotFound = errors.New("statute not found")

// Catalog is the immutable, validated set of statutes in load order.
type Catalog struct {
	statutes []Statute
	byID     map[int]int
}

// NewCatalog validates statutes and builds a catalog from them. The input is
// copied; later changes to it do not affect the catalog.
func NewCatalog(statutes []Statute) (*Catalog, error) {
	if errs := Validate(statutes); len(errs) > 0 {
		return nil, errs
	}

	catalog := &Catalog{
		statutes: make([]Statute, len(statutes)),
		byID:     make(map[int]int, len(statutes)),
	}
	for i, s := range statutes {
		catalog.statutes[i] = s.clone()
		catalog.byID[s.ID] = i
	}
	return catalog, nil
}

// Parse decodes a YAML dataset and builds a validated catalog from it.
func Parse(data []byte) (*Catalog, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse statute dataset: %w", err)
	}
	catalog, err := NewCatalog(ds.Statutes)
	if err != nil {
		return nil, fmt.Errorf("invalid statute dataset: %w", err)
	}
	return catalog, nil
}

// Load reads the embedded sample dataset.
func Load() (*Catalog, error) {
	data, err := dataFS.ReadFile(defaultDataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded dataset: %w", err)
	}
	return Parse(data)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded sample catalog, loading it on first use.
// It panics if the embedded data is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		catalog, err := Load()
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// All returns a copy of every statute in load order.
func (c *Catalog) All() []Statute {
	out := make([]Statute, len(c.statutes))
	for i, s := range c.statutes {
		out[i] = s.clone()
	}
	return out
}

// Len returns the number of statutes.
func (c *Catalog) Len() int {
	return len(c.statutes)
}

// Get returns the statute with the given id.
func (c *Catalog) Get(id int) (Statute, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Statute{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return c.statutes[idx].clone(), nil
}

// PenaltyCount returns the number of penalties across both penalty sets.
func (c *Catalog) PenaltyCount() int {
	total := 0
	for _, s := range c.statutes {
		total += len(s.Penalties) + len(s.AttemptPenalties)
	}
	return total
}
