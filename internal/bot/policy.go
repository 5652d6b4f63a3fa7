// Package bot provides automated players for unattended games. A
// Policy answers every decision from fixed probabilities, which makes
// large simulation runs cheap and, for a fixed seed, reproducible.
package bot

import (
	"math/rand"

	"github.com/morganrivers/DisasterGame/internal/game"
)

// Policy is a probabilistic Decider serving every seat of a game. It
// draws its choices from its own random stream, so two games with the
// same game seed and the same policy seed play out identically.
type Policy struct {
	// Name labels the policy in simulation output.
	Name string

	// VisitProb is the chance a preparation round is spent visiting a
	// location instead of defending home.
	VisitProb float64

	// SpendProb is the chance a held Neighborly Token is spent when
	// the engine offers the boost.
	SpendProb float64

	// BlockProb is the chance a blockable hazard is blocked.
	BlockProb float64

	rng *rand.Rand
}

var _ game.Decider = (*Policy)(nil)

// New builds a policy with the given probabilities, each in [0,1].
func New(name string, visit, spend, block float64, seed int64) *Policy {
	return &Policy{
		Name:      name,
		VisitProb: visit,
		SpendProb: spend,
		BlockProb: block,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Default is the baseline policy: usually visits, spends tokens half
// the time, and blocks most hazards.
func Default(seed int64) *Policy {
	return New("default", 0.75, 0.5, 0.8, seed)
}

// PrepChoice visits a random stocked location with probability
// VisitProb and defends home otherwise. When every deck is empty a
// visit earns nothing, so the policy defends.
func (b *Policy) PrepChoice(v game.PrepView) game.PrepDecision {
	if v.Rejected != nil {
		// Defending is always legal; bail out rather than loop.
		return game.PrepDecision{Action: game.PrepDefend}
	}
	if b.rng.Float64() >= b.VisitProb {
		return game.PrepDecision{Action: game.PrepDefend}
	}
	stocked := make([]string, 0, len(v.Decks))
	for _, d := range v.Decks {
		if d.Cards > 0 {
			stocked = append(stocked, d.Location)
		}
	}
	if len(stocked) == 0 {
		return game.PrepDecision{Action: game.PrepDefend}
	}
	return game.PrepDecision{
		Action:   game.PrepVisit,
		Location: stocked[b.rng.Intn(len(stocked))],
	}
}

// SpendToken spends with probability SpendProb.
func (b *Policy) SpendToken(game.TurnView) bool {
	return b.rng.Float64() < b.SpendProb
}

// BlockHazard discards the first eligible copy with probability
// BlockProb.
func (b *Policy) BlockHazard(v game.HazardView) game.BlockDecision {
	if v.Rejected != nil || len(v.Eligible) == 0 {
		return game.BlockDecision{}
	}
	if b.rng.Float64() >= b.BlockProb {
		return game.BlockDecision{}
	}
	return game.BlockDecision{Discard: true, HandIndex: v.Eligible[0]}
}

// ProposeTrade always passes. Valuing a one-for-one swap needs combo
// planning the probabilistic policy does not attempt.
func (b *Policy) ProposeTrade(game.TradeView) (game.TradeOffer, bool) {
	return game.TradeOffer{}, false
}

// AcceptTrade always declines.
func (b *Policy) AcceptTrade(game.OfferView) bool {
	return false
}
