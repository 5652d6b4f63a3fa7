// internal/game/decider.go
package game

import "github.com/morganrivers/DisasterGame/internal/models"

// Decider answers the choices a game asks of its players. The engine
// calls it synchronously with snapshot views and validates every
// answer; an invalid answer is re-asked with Rejected set, and a
// decider that keeps answering invalidly aborts the game with
// ErrInvalidChoice.
//
// One Decider serves all seats. Views carry the acting player, so an
// implementation can route per player (hot-seat prompts, per-seat
// bots).
type Decider interface {
	// PrepChoice picks a preparation action: visit a location or
	// defend home for a token.
	PrepChoice(PrepView) PrepDecision

	// SpendToken decides whether to spend a Neighborly Token for
	// bonus movement this turn. Only asked when the player has one.
	SpendToken(TurnView) bool

	// BlockHazard decides whether to discard a blocker card to cancel
	// the drawn hazard, and which copy. Only asked when the player
	// holds at least one.
	BlockHazard(HazardView) BlockDecision

	// ProposeTrade offers a one-for-one card trade between disaster
	// rounds. Returning ok=false passes.
	ProposeTrade(TradeView) (TradeOffer, bool)

	// AcceptTrade is the partner's consent to an offer.
	AcceptTrade(OfferView) bool
}

// PrepAction selects what a player does with a preparation round.
type PrepAction int

const (
	PrepVisit PrepAction = iota
	PrepDefend
)

// PrepDecision is the answer to PrepChoice. Location is required for
// PrepVisit and ignored for PrepDefend.
type PrepDecision struct {
	Action   PrepAction
	Location string
}

// DeckCount reports how many cards remain at one location.
type DeckCount struct {
	Location string `json:"location"`
	Cards    int    `json:"cards"`
}

// PrepView is the state shown for a preparation choice.
type PrepView struct {
	Round    int
	Rounds   int
	Player   models.Player
	Decks    []DeckCount
	Rejected error
}

// TurnView is the state shown for the token-spend choice, after the
// movement roll.
type TurnView struct {
	Round  int
	Player models.Player
	Roll   int
	// Movement is the distance about to be travelled without the
	// token; it differs from Roll when a road block capped it.
	Movement int
	Limited  bool
}

// HazardView is the state shown when a drawn hazard can be blocked.
// Eligible lists the hand indices holding the blocker resource.
type HazardView struct {
	Round    int
	Player   models.Player
	Hazard   models.Card
	Eligible []int
	Rejected error
}

// BlockDecision is the answer to BlockHazard. Discard=false lets the
// hazard resolve; Discard=true spends the copy at HandIndex, which
// must be one of the eligible indices.
type BlockDecision struct {
	Discard   bool
	HandIndex int
}

// TradeView is the state shown when a player may propose a trade.
// Others holds snapshots of the other players still on the road.
type TradeView struct {
	Round    int
	Player   models.Player
	Others   []models.Player
	Rejected error
}

// TradeOffer names a partner, the resource the proposer gives, and
// the resource the proposer wants back.
type TradeOffer struct {
	Partner string
	Give    string
	Want    string
}

// OfferView is the offer as presented to the partner for consent.
type OfferView struct {
	Round    int
	Player   models.Player // the partner being asked
	Proposer models.Player
	// Give is the card arriving if accepted; Want is the card given up.
	Give string
	Want string
}
