// Package agents provides the agent data model and the per-kind movement and
// interaction rules.
package agents

import "fmt"

// Kind is the behavioral category of an agent.
type Kind uint8

const (
	KindHuman  Kind = iota // Unarmed, flees at random
	KindHunter             // Human with a shotgun
	KindZombie             // Pursues the nearest Human
)

// String returns the kind's lowercase name.
func (k Kind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindHunter:
		return "hunter"
	case KindZombie:
		return "zombie"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Is reports whether this kind matches a query kind. A Hunter is a Human for
// every population query: zombies hunt Hunters, and the run loop counts them
// among the living.
func (k Kind) Is(query Kind) bool {
	if k == query {
		return true
	}
	return k == KindHunter && query == KindHuman
}

// ParseKind maps a configuration name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "human":
		return KindHuman, nil
	case "hunter":
		return KindHunter, nil
	case "zombie":
		return KindZombie, nil
	}
	return 0, fmt.Errorf("unknown character kind %q", name)
}
