package modules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FixtureConfig describes one module in a fixture set.
type FixtureConfig struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Brand       string `yaml:"brand,omitempty" json:"brand,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
	Email       string `yaml:"email,omitempty" json:"email,omitempty"`
	Website     string `yaml:"website,omitempty" json:"website,omitempty"`
}

func (c FixtureConfig) info() ModuleInfo {
	return ModuleInfo{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Brand:       c.Brand,
		Author:      c.Author,
		Email:       c.Email,
		Website:     c.Website,
	}
}

// FixtureSet is a named list of modules scaffolded together, typically for
// repeatable test setups.
type FixtureSet struct {
	Name    string          `yaml:"name,omitempty" json:"name,omitempty"`
	Modules []FixtureConfig `yaml:"modules" json:"modules"`
}

// LoadFixtureSet reads a fixture set definition from a YAML file.
func LoadFixtureSet(path string) (FixtureSet, error) {
	var set FixtureSet
	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("failed to read fixture set %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("failed to parse fixture set %s: %w", path, err)
	}
	if len(set.Modules) == 0 {
		return set, fmt.Errorf("fixture set %s defines no modules", path)
	}
	for i, cfg := range set.Modules {
		if cfg.ID == "" {
			return set, fmt.Errorf("fixture set %s: module %d has no id", path, i+1)
		}
	}
	return set, nil
}

// DefaultFixtureSet returns the built-in development fixtures: a basic TEST
// module and a VERB reverb module.
func DefaultFixtureSet() FixtureSet {
	return FixtureSet{
		Name: "development",
		Modules: []FixtureConfig{
			{
				ID:          "TEST",
				Name:        "Test Module",
				Description: "Basic test module for development",
				Brand:       "TestBrand",
				Author:      "Test Developer",
				Email:       "test@example.com",
				Website:     "https://test.example.com",
			},
			{
				ID:          "VERB",
				Name:        "Reverb Effect",
				Description: "Digital reverb processor with multiple algorithms",
				Brand:       "AudioDev",
				Author:      "Audio Engineer",
				Email:       "audio@example.com",
				Website:     "https://audiodev.example.com",
			},
		},
	}
}

// BatchResult aggregates the per-item outcomes of a batch run.
type BatchResult struct {
	Succeeded int
	Total     int
	Errors    map[string]error
}

// AllSucceeded reports whether every item in the batch completed.
func (r BatchResult) AllSucceeded() bool {
	return r.Succeeded == r.Total
}

// Batch drives lifecycle operations over many modules, isolating failures
// per entry: one failed module never halts the rest of the batch.
type Batch struct {
	Orch *Orchestrator
}

// CreateFixtureSet creates every module in the set independently.
func (b Batch) CreateFixtureSet(set FixtureSet) BatchResult {
	res := BatchResult{Total: len(set.Modules), Errors: make(map[string]error)}
	for _, cfg := range set.Modules {
		if _, err := b.Orch.Create(cfg.info()); err != nil {
			res.Errors[cfg.ID] = err
			b.Orch.Log.Error("fixture create failed", "module", cfg.ID, "err", err)
			continue
		}
		res.Succeeded++
	}
	return res
}

// RemoveAll removes every listed module independently.
func (b Batch) RemoveAll(ids []string) BatchResult {
	res := BatchResult{Total: len(ids), Errors: make(map[string]error)}
	for _, id := range ids {
		if _, err := b.Orch.Remove(id); err != nil {
			res.Errors[id] = err
			b.Orch.Log.Error("remove failed", "module", id, "err", err)
			continue
		}
		res.Succeeded++
	}
	return res
}
