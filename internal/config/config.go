// Package config loads and validates simulation configuration from YAML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/invasion/internal/agents"
	"github.com/talgya/invasion/internal/engine"
	"github.com/talgya/invasion/internal/world"
)

// GridConfig sets the grid bounds.
type GridConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// KindConfig sets the tunables for one character kind. Slugs and ReloadTurns
// are only meaningful for hunters.
type KindConfig struct {
	Initial     int `yaml:"initial"`
	Paces       int `yaml:"paces"`
	Slugs       int `yaml:"slugs"`
	ReloadTurns int `yaml:"reload_turns"`
}

// Config is the full simulator configuration. Zero values fall back to the
// class defaults, so a partial file only overrides what it names.
type Config struct {
	Grid           GridConfig `yaml:"grid"`
	Seed           int64      `yaml:"seed"`
	MaxTurns       uint64     `yaml:"max_turns"`
	CharacterTypes []string   `yaml:"character_types"`
	Human          KindConfig `yaml:"human"`
	Hunter         KindConfig `yaml:"hunter"`
	Zombie         KindConfig `yaml:"zombie"`
}

// Default returns the canonical invasion configuration.
func Default() Config {
	p := engine.DefaultParams()
	return Config{
		Grid:           GridConfig{X: p.Bounds.X, Y: p.Bounds.Y},
		Seed:           42,
		CharacterTypes: []string{"human", "hunter", "zombie"},
		Human:          KindConfig{Initial: p.Human.Initial, Paces: p.Human.Paces},
		Hunter: KindConfig{
			Initial:     p.Hunter.Initial,
			Paces:       p.Hunter.Paces,
			Slugs:       p.Hunter.Slugs,
			ReloadTurns: p.Hunter.ReloadTurns,
		},
		Zombie: KindConfig{Initial: p.Zombie.Initial, Paces: p.Zombie.Paces},
	}
}

// Load reads a YAML config file on top of the defaults. Unknown keys are
// rejected rather than silently ignored.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML config bytes on top of the defaults.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Params converts the configuration into engine parameters, validating the
// character type list. Grid bounds and per-kind values are validated by the
// engine at construction.
func (c Config) Params() (engine.Params, error) {
	if len(c.CharacterTypes) == 0 {
		return engine.Params{}, fmt.Errorf("character_types must not be empty")
	}
	kinds := make([]agents.Kind, 0, len(c.CharacterTypes))
	for _, name := range c.CharacterTypes {
		k, err := agents.ParseKind(name)
		if err != nil {
			return engine.Params{}, fmt.Errorf("character_types: %w", err)
		}
		kinds = append(kinds, k)
	}

	return engine.Params{
		Bounds: world.Bounds{X: c.Grid.X, Y: c.Grid.Y},
		Kinds:  kinds,
		Human:  engine.KindParams{Initial: c.Human.Initial, Paces: c.Human.Paces},
		Hunter: engine.KindParams{
			Initial:     c.Hunter.Initial,
			Paces:       c.Hunter.Paces,
			Slugs:       c.Hunter.Slugs,
			ReloadTurns: c.Hunter.ReloadTurns,
		},
		Zombie: engine.KindParams{Initial: c.Zombie.Initial, Paces: c.Zombie.Paces},
	}, nil
}
