// Package generate grows synthetic multilayer networks step by step. Each
// layer combines an internal generative model (preferential attachment or
// uniform random attachment) with cross-layer edge importation from declared
// dependency layers.
package generate

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-multinet/pkg/validation"
)

// Internal model kinds
const (
	ModelPreferentialAttachment = "pa"
	ModelErdosRenyi             = "er"
)

// LayerConfig configures the growth dynamics of one layer. At each step the
// layer draws one action: internal with ProbInternal, external with
// ProbExternal, and no action with the remaining probability.
type LayerConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Directed bool   `yaml:"directed"`
	Model    string `yaml:"model" validate:"required,oneof=pa er"`
	// EdgesPerStep is the number of edges attached on an internal
	// preferential-attachment action (ignored by the er model)
	EdgesPerStep int     `yaml:"edges_per_step" validate:"min=0"`
	ProbInternal float64 `yaml:"prob_internal" validate:"min=0,max=1"`
	ProbExternal float64 `yaml:"prob_external" validate:"min=0,max=1"`
	// DependsOn lists the layers external actions may import edges from
	DependsOn []string `yaml:"depends_on"`
}

// Config is a full growth simulation configuration
type Config struct {
	NumActors int           `yaml:"num_actors" validate:"min=1"`
	Steps     int           `yaml:"steps" validate:"min=1"`
	Seed      int64         `yaml:"seed"`
	Layers    []LayerConfig `yaml:"layers" validate:"required,min=1,dive"`
}

// LoadConfig reads and validates a YAML growth configuration
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode growth config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads and validates a YAML growth configuration file
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open growth config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks field ranges and the cross-field rules: per-layer
// probabilities may not sum above 1, and a layer with a positive external
// probability must declare at least one dependency on an existing layer.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	declared := make(map[string]bool, len(c.Layers))
	cv := validation.NewConfigValidator("GrowthConfig")
	for _, l := range c.Layers {
		cv.Check(!declared[l.Name], "layer %q declared twice", l.Name)
		declared[l.Name] = true
	}
	for _, l := range c.Layers {
		cv.Check(l.ProbInternal+l.ProbExternal <= 1,
			"layer %q: prob_internal + prob_external = %g exceeds 1", l.Name, l.ProbInternal+l.ProbExternal)
		if l.ProbExternal > 0 {
			cv.Check(len(l.DependsOn) > 0,
				"layer %q: external actions configured without dependencies", l.Name)
		}
		for _, dep := range l.DependsOn {
			cv.Check(declared[dep], "layer %q: dependency %q not declared", l.Name, dep)
			cv.Check(dep != l.Name, "layer %q: depends on itself", l.Name)
		}
	}
	return cv.Err()
}
