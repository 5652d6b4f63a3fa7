// Package deck implements a face-down draw pile of cards.
package deck

import (
	"errors"
	"math/rand"

	"github.com/morganrivers/DisasterGame/internal/models"
)

// ErrEmpty is returned by Draw when no cards remain.
var ErrEmpty = errors.New("deck is empty")

// Deck is a face-down pile. The zero value is an empty deck.
type Deck struct {
	cards []models.Card
}

// New builds a deck from cards. The slice is copied; callers keep
// ownership of theirs.
func New(cards []models.Card) *Deck {
	d := &Deck{cards: make([]models.Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the pile using rng so seeded games replay
// identically.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (models.Card, error) {
	if len(d.cards) == 0 {
		return models.Card{}, ErrEmpty
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// Len reports how many cards remain.
func (d *Deck) Len() int { return len(d.cards) }

// Refill shuffles cards back into the pile. Used to rebuild the hazard
// deck from its discard once it runs dry.
func (d *Deck) Refill(cards []models.Card, rng *rand.Rand) {
	d.cards = append(d.cards, cards...)
	d.Shuffle(rng)
}

// Remaining returns a copy of the pile, top card last.
func (d *Deck) Remaining() []models.Card {
	out := make([]models.Card, len(d.cards))
	copy(out, d.cards)
	return out
}
