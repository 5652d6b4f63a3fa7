// internal/game/preparation.go
package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/deck"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// RunPreparation plays the preparation rounds. Each round, every
// player in seat order either visits a location or defends home, and
// the disaster die is thrown after every choice. A 6 latches the
// early trigger; the round in progress still completes so everyone
// gets the same number of choices, then the phase ends.
func (s *Session) RunPreparation() error {
	if err := s.requirePhase(PhaseSetup); err != nil {
		return err
	}
	if s.Decider == nil {
		return ErrNoDecider
	}
	s.setPhase(PhasePreparation)

	for round := 1; round <= s.prepRounds; round++ {
		s.emit(Event{Type: EventRoundStarted, Phase: s.phase.String(), Round: round})
		if err := s.runPreparationRound(round); err != nil {
			return err
		}
		if s.triggered {
			break
		}
	}

	s.setPhase(PhaseDisaster)
	return nil
}

func (s *Session) runPreparationRound(round int) error {
	for _, p := range s.Players {
		if err := s.prepTurn(round, p); err != nil {
			return err
		}

		roll := s.roll()
		s.emit(Event{Type: EventTriggerRoll, Player: p.Name, Round: round, Roll: roll})
		if roll == triggerValue && !s.triggered {
			s.triggered = true
			s.emit(Event{Type: EventDisasterTriggered, Player: p.Name, Round: round})
			s.log.WithFields(logrus.Fields{
				"round":  round,
				"player": p.Name,
			}).Info("disaster triggered early")
		}
	}
	return nil
}

// prepTurn asks one player for their preparation choice and applies
// it. Visiting an empty location wastes the visit; naming an unknown
// location or action is invalid and re-asked.
func (s *Session) prepTurn(round int, p *models.Player) error {
	view := PrepView{
		Round:  round,
		Rounds: s.prepRounds,
		Player: p.Snapshot(),
		Decks:  s.DeckCounts(),
	}

	for attempt := 0; attempt < maxChoiceRetries; attempt++ {
		choice := s.Decider.PrepChoice(view)

		switch choice.Action {
		case PrepDefend:
			p.AddToken()
			s.emit(Event{Type: EventTokenEarned, Player: p.Name, Round: round, Amount: p.Tokens})
			s.log.WithFields(logrus.Fields{
				"round":  round,
				"player": p.Name,
				"tokens": p.Tokens,
			}).Debug("defended home")
			return nil

		case PrepVisit:
			d, ok := s.decks[choice.Location]
			if !ok {
				view.Rejected = fmt.Errorf("%w: unknown location %q", ErrInvalidChoice, choice.Location)
				continue
			}
			card, err := d.Draw()
			if errors.Is(err, deck.ErrEmpty) {
				s.emit(Event{Type: EventDeckEmpty, Player: p.Name, Round: round, Location: choice.Location})
				return nil
			}
			if err != nil {
				return err
			}
			p.AddCard(card)
			s.emit(Event{Type: EventCardDrawn, Player: p.Name, Round: round, Location: choice.Location, Card: &card})
			s.log.WithFields(logrus.Fields{
				"round":    round,
				"player":   p.Name,
				"location": choice.Location,
				"card":     card.Name,
			}).Debug("visited location")
			return nil

		default:
			view.Rejected = fmt.Errorf("%w: unknown preparation action %d", ErrInvalidChoice, choice.Action)
		}
	}

	return fmt.Errorf("%s round %d: %w", p.Name, round, ErrInvalidChoice)
}
