package config

import (
	"strings"
	"testing"

	"github.com/talgya/invasion/internal/agents"
)

func TestDefaultsProduceValidParams(t *testing.T) {
	p, err := Default().Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.Bounds.X != 60 || p.Bounds.Y != 40 {
		t.Errorf("bounds = %v, want 60x40", p.Bounds)
	}
	want := []agents.Kind{agents.KindHuman, agents.KindHunter, agents.KindZombie}
	if len(p.Kinds) != len(want) {
		t.Fatalf("kinds = %v", p.Kinds)
	}
	for i, k := range want {
		if p.Kinds[i] != k {
			t.Errorf("kinds[%d] = %s, want %s", i, p.Kinds[i], k)
		}
	}
	if p.Hunter.Slugs != 3 || p.Hunter.ReloadTurns != 3 {
		t.Errorf("hunter params = %+v", p.Hunter)
	}
}

func TestParseOverridesOnTopOfDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
grid: {x: 20, y: 10}
seed: 7
max_turns: 500
character_types: [human, zombie]
zombie: {initial: 5, paces: 2}
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Grid.X != 20 || cfg.Grid.Y != 10 {
		t.Errorf("grid = %+v, want 20x10", cfg.Grid)
	}
	if cfg.Seed != 7 || cfg.MaxTurns != 500 {
		t.Errorf("seed/max_turns = %d/%d", cfg.Seed, cfg.MaxTurns)
	}
	if cfg.Zombie.Initial != 5 || cfg.Zombie.Paces != 2 {
		t.Errorf("zombie = %+v", cfg.Zombie)
	}
	// Untouched sections keep their defaults.
	if cfg.Human.Initial != 30 || cfg.Hunter.Slugs != 3 {
		t.Errorf("defaults lost: human=%+v hunter=%+v", cfg.Human, cfg.Hunter)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Kinds) != 2 || p.Kinds[1] != agents.KindZombie {
		t.Errorf("kinds = %v, want [human zombie]", p.Kinds)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("gird: {x: 20, y: 10}\n"))
	if err == nil {
		t.Fatal("misspelled key was silently accepted")
	}
}

func TestParamsRejectsUnknownKind(t *testing.T) {
	cfg := Default()
	cfg.CharacterTypes = []string{"human", "werewolf"}
	_, err := cfg.Params()
	if err == nil || !strings.Contains(err.Error(), "werewolf") {
		t.Fatalf("err = %v, want unknown kind error naming werewolf", err)
	}
}

func TestParamsRejectsEmptyCharacterTypes(t *testing.T) {
	cfg := Default()
	cfg.CharacterTypes = nil
	if _, err := cfg.Params(); err == nil {
		t.Fatal("empty character_types accepted")
	}
}

func TestParseEmptyInputKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.X != 60 || len(cfg.CharacterTypes) != 3 {
		t.Errorf("empty input changed defaults: %+v", cfg)
	}
}
