package models

import "github.com/google/uuid"

// TokenName is the display name for Neighborly Tokens. It appears as
// the Community Leader's multiplier resource even though tokens are
// counters, not cards.
const TokenName = "Neighborly Token"

// Kind discriminates resource cards from action (hazard) cards.
type Kind int

const (
	KindResource Kind = iota
	KindAction
)

// Effect is what an action card does to the player who drew it when it
// is not blocked.
type Effect int

const (
	EffectNone Effect = iota
	EffectSkipTurn
	EffectLimitMove
	EffectLosePoints
	EffectLoseCard
)

func (e Effect) String() string {
	switch e {
	case EffectSkipTurn:
		return "skip_turn"
	case EffectLimitMove:
		return "limit_move"
	case EffectLosePoints:
		return "lose_points"
	case EffectLoseCard:
		return "lose_card"
	default:
		return "none"
	}
}

// Card is one physical card. Resource cards carry a point value and
// the location they were stocked at; action cards carry an effect, a
// magnitude for effects that need one, and the name of the resource
// that blocks them.
type Card struct {
	ID      uuid.UUID `json:"id"`
	Kind    Kind      `json:"kind"`
	Name    string    `json:"name"`
	Value   int       `json:"value,omitempty"`
	Origin  string    `json:"origin,omitempty"`
	Effect  Effect    `json:"effect,omitempty"`
	Blocker string    `json:"blocker,omitempty"`

	// Amount is the move cap for EffectLimitMove and the point loss
	// for EffectLosePoints; zero otherwise.
	Amount int `json:"amount,omitempty"`
}

func (c Card) IsResource() bool { return c.Kind == KindResource }
func (c Card) IsAction() bool   { return c.Kind == KindAction }
