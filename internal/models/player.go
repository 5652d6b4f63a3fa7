package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Player is the full mutable state of one participant across both
// phases of a game.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Character Character `json:"character"`
	Hand      []Card    `json:"hand"`
	Tokens    int       `json:"tokens"`

	// Position runs 0..14 along the road and never decreases; once a
	// player is out it holds the Safe Zone sentinel.
	Position          int  `json:"position"`
	SkipNextTurn      bool `json:"skipNextTurn"`
	MoveLimitNextTurn int  `json:"moveLimitNextTurn,omitempty"` // 0 = no cap
	ReachedSafeZone   bool `json:"reachedSafeZone"`
	ArrivalRank       int  `json:"arrivalRank,omitempty"` // 1 = first out
	ScorePenalty      int  `json:"scorePenalty,omitempty"`
}

func (p *Player) AddCard(c Card) {
	p.Hand = append(p.Hand, c)
}

// RemoveCard takes the card at hand index i out of the hand.
func (p *Player) RemoveCard(i int) (Card, error) {
	if i < 0 || i >= len(p.Hand) {
		return Card{}, fmt.Errorf("hand index %d out of range (hand size %d)", i, len(p.Hand))
	}
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return c, nil
}

// IndicesOf returns the hand indices of every resource card named name.
func (p *Player) IndicesOf(name string) []int {
	var idx []int
	for i, c := range p.Hand {
		if c.IsResource() && c.Name == name {
			idx = append(idx, i)
		}
	}
	return idx
}

func (p *Player) HasResource(name string) bool {
	return len(p.IndicesOf(name)) > 0
}

func (p *Player) CountResource(name string) int {
	return len(p.IndicesOf(name))
}

func (p *Player) AddToken() {
	p.Tokens++
}

// SpendToken decrements the token count. It reports false at zero so a
// spend can never drive the count negative.
func (p *Player) SpendToken() bool {
	if p.Tokens <= 0 {
		return false
	}
	p.Tokens--
	return true
}

// Advance moves the player forward. Non-positive distances are
// ignored; nothing in the game moves a player backward.
func (p *Player) Advance(spaces int) {
	if spaces > 0 {
		p.Position += spaces
	}
}

// Snapshot returns a deep copy safe to hand to deciders and event
// consumers; mutating it never touches live state.
func (p *Player) Snapshot() Player {
	cp := *p
	cp.Hand = make([]Card, len(p.Hand))
	copy(cp.Hand, p.Hand)
	return cp
}
