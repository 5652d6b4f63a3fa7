package bot

import (
	"fmt"

	"github.com/morganrivers/DisasterGame/internal/cards"
	"github.com/morganrivers/DisasterGame/internal/game"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// Strategy is a target-seeking Policy. During preparation it works
// down a wanted-resource list, visiting the location that stocks the
// first target missing from hand; once every target is held, or the
// stock has run out, it falls back to the base Policy. A hoarding
// strategy defends every round instead.
type Strategy struct {
	*Policy

	hoard   bool
	targets func(models.Player) []string
	origins map[string]string
}

var _ game.Decider = (*Strategy)(nil)

// Strategies lists the built-in strategy names, baseline last.
func Strategies() []string {
	return []string{"go-kit", "prepper", "tokens", "plus", "mult", "random"}
}

// NewStrategy builds the named strategy around a Default policy
// seeded with seed. The names are those returned by Strategies:
// chase the Portable Go-Kit or Prepper Kit combo, hoard tokens, or
// secure the character's plus or multiplier resource; "random" is the
// plain Default policy.
func NewStrategy(name string, seed int64) (game.Decider, error) {
	base := Default(seed)
	base.Name = name

	switch name {
	case "random":
		return base, nil
	case "tokens":
		return &Strategy{Policy: base, hoard: true}, nil
	case "go-kit":
		return newChaser(base, fixedTargets(comboRequires("Portable Go-Kit"))), nil
	case "prepper":
		return newChaser(base, fixedTargets(comboRequires("Prepper Kit"))), nil
	case "plus":
		return newChaser(base, func(p models.Player) []string {
			return []string{p.Character.PlusResource}
		}), nil
	case "mult":
		return newChaser(base, func(p models.Player) []string {
			return []string{p.Character.MultiplierResource}
		}), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func newChaser(base *Policy, targets func(models.Player) []string) *Strategy {
	return &Strategy{Policy: base, targets: targets, origins: resourceOrigins()}
}

func fixedTargets(names []string) func(models.Player) []string {
	return func(models.Player) []string { return names }
}

// comboRequires returns the resource list of the named scoring kit.
func comboRequires(name string) []string {
	for _, c := range cards.Combos() {
		if c.Name == name {
			return c.Requires
		}
	}
	return nil
}

// resourceOrigins maps every resource name to the location stocking it.
func resourceOrigins() map[string]string {
	origins := make(map[string]string)
	for _, loc := range cards.Locations() {
		for _, c := range loc.Cards {
			origins[c.Name] = loc.Name
		}
	}
	return origins
}

// PrepChoice visits the origin of the first missing target whose deck
// still has cards. Targets already in hand are skipped; a target that
// is the token resource itself means defend, since tokens come from
// defending rather than any deck. With nothing left to chase the base
// Policy decides.
func (s *Strategy) PrepChoice(v game.PrepView) game.PrepDecision {
	if s.hoard || v.Rejected != nil {
		return game.PrepDecision{Action: game.PrepDefend}
	}
	for _, want := range s.targets(v.Player) {
		if want == models.TokenName {
			return game.PrepDecision{Action: game.PrepDefend}
		}
		if v.Player.HasResource(want) {
			continue
		}
		loc, ok := s.origins[want]
		if !ok {
			continue
		}
		for _, d := range v.Decks {
			if d.Location == loc && d.Cards > 0 {
				return game.PrepDecision{Action: game.PrepVisit, Location: loc}
			}
		}
	}
	return s.Policy.PrepChoice(v)
}
