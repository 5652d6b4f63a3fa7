// internal/game/disaster.go
package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/deck"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// RunDisaster races every player to the Safe Zone. A round is one
// turn per player still on the road, in seat order, followed by a
// trading window. The phase ends when the last player arrives.
func (s *Session) RunDisaster() error {
	if err := s.requirePhase(PhaseDisaster); err != nil {
		return err
	}
	if s.Decider == nil {
		return ErrNoDecider
	}

	for round := 1; !s.allArrived(); round++ {
		if round > s.maxDisasterRounds {
			return fmt.Errorf("%w after %d rounds", ErrStalled, s.maxDisasterRounds)
		}
		s.round = round
		s.emit(Event{Type: EventRoundStarted, Phase: s.phase.String(), Round: round})

		for _, p := range s.Players {
			if p.ReachedSafeZone {
				continue
			}
			if err := s.disasterTurn(round, p); err != nil {
				return err
			}
		}

		if !s.allArrived() {
			if err := s.tradeWindow(round); err != nil {
				return err
			}
		}
	}

	s.setPhase(PhaseScoring)
	return nil
}

// disasterTurn runs the fixed turn protocol for one player: skip
// check, movement roll, optional token boost, move, then shortcut or
// hazard resolution on the landing space.
func (s *Session) disasterTurn(round int, p *models.Player) error {
	s.emit(Event{Type: EventTurnStarted, Phase: s.phase.String(), Round: round, Player: p.Name})

	if p.SkipNextTurn {
		p.SkipNextTurn = false
		s.emit(Event{Type: EventTurnSkipped, Player: p.Name, Round: round})
		s.log.WithFields(logrus.Fields{"round": round, "player": p.Name}).Debug("turn skipped")
		return nil
	}

	roll := s.roll()
	movement := roll
	limited := false
	if p.MoveLimitNextTurn > 0 {
		if movement > p.MoveLimitNextTurn {
			movement = p.MoveLimitNextTurn
		}
		limited = true
		p.MoveLimitNextTurn = 0
	}
	s.emit(Event{Type: EventMoveRolled, Player: p.Name, Round: round, Roll: roll, Amount: movement})

	// The token boost is offered once per turn and never at zero
	// tokens.
	if p.Tokens > 0 {
		view := TurnView{
			Round:    round,
			Player:   p.Snapshot(),
			Roll:     roll,
			Movement: movement,
			Limited:  limited,
		}
		if s.Decider.SpendToken(view) && p.SpendToken() {
			movement += TokenBoost
			s.emit(Event{Type: EventTokenSpent, Player: p.Name, Round: round, Amount: TokenBoost})
		}
	}

	if s.moveForward(p, movement) {
		return nil
	}

	// A won shortcut can drop the player on a hazard space, so the
	// hazard check runs on wherever they ended up.
	if s.Board.Kind(p.Position) == SpaceShortcut && s.resolveShortcut(round, p) {
		return nil
	}
	if s.Board.Kind(p.Position) == SpaceHazard {
		return s.resolveHazard(round, p)
	}
	return nil
}

// moveForward advances the player and reports whether they left the
// road. Landing at or past the final space transitions straight to
// the Safe Zone and assigns the next arrival rank.
func (s *Session) moveForward(p *models.Player, spaces int) bool {
	from := p.Position
	if s.Board.EntersSafeZone(from + spaces) {
		p.Position = SafeZone
		p.ReachedSafeZone = true
		s.arrived++
		p.ArrivalRank = s.arrived
		s.emit(Event{Type: EventMoved, Player: p.Name, From: from, To: SafeZone, Amount: spaces})
		s.emit(Event{Type: EventSafeZoneReached, Player: p.Name, Rank: p.ArrivalRank})
		s.log.WithFields(logrus.Fields{
			"player": p.Name,
			"rank":   p.ArrivalRank,
		}).Info("reached safe zone")
		return true
	}
	p.Advance(spaces)
	s.emit(Event{Type: EventMoved, Player: p.Name, From: from, To: p.Position, Amount: spaces})
	return false
}

// resolveShortcut runs the mandatory shortcut gamble: a high roll
// jumps the player forward right away, a low roll costs them their
// next turn. Reports whether the jump carried them into the Safe
// Zone.
func (s *Session) resolveShortcut(round int, p *models.Player) bool {
	roll := s.roll()
	if roll >= shortcutWin {
		s.emit(Event{Type: EventShortcutRoll, Player: p.Name, Round: round, Roll: roll, Amount: ShortcutBonus})
		return s.moveForward(p, ShortcutBonus)
	}
	p.SkipNextTurn = true
	s.emit(Event{Type: EventShortcutRoll, Player: p.Name, Round: round, Roll: roll, Reason: "skip_next_turn"})
	return false
}

// resolveHazard draws an action card and gives the player the chance
// to block it before the effect lands.
func (s *Session) resolveHazard(round int, p *models.Player) error {
	card, err := s.drawAction()
	if errors.Is(err, deck.ErrEmpty) {
		s.emit(Event{Type: EventDeckEmpty, Player: p.Name, Round: round, Location: actionDeckName})
		return nil
	}
	if err != nil {
		return err
	}
	s.emit(Event{Type: EventHazardDrawn, Player: p.Name, Round: round, Card: &card})

	blocked, err := s.offerBlock(round, p, card)
	if err != nil {
		return err
	}
	if !blocked {
		s.applyHazard(round, p, card)
	}
	s.actionDiscard = append(s.actionDiscard, card)
	return nil
}

// offerBlock asks the player whether to discard a blocker copy. The
// player names the copy; with no eligible copy in hand the question is
// never asked.
func (s *Session) offerBlock(round int, p *models.Player, card models.Card) (bool, error) {
	eligible := p.IndicesOf(card.Blocker)
	if len(eligible) == 0 {
		return false, nil
	}

	view := HazardView{
		Round:    round,
		Player:   p.Snapshot(),
		Hazard:   card,
		Eligible: append([]int(nil), eligible...),
	}
	for attempt := 0; attempt < maxChoiceRetries; attempt++ {
		choice := s.Decider.BlockHazard(view)
		if !choice.Discard {
			return false, nil
		}
		ok := false
		for _, i := range eligible {
			if i == choice.HandIndex {
				ok = true
				break
			}
		}
		if !ok {
			view.Rejected = fmt.Errorf("%w: hand index %d does not hold %s",
				ErrInvalidChoice, choice.HandIndex, card.Blocker)
			continue
		}
		discarded, err := p.RemoveCard(choice.HandIndex)
		if err != nil {
			return false, err
		}
		s.resourceDiscard = append(s.resourceDiscard, discarded)
		s.emit(Event{Type: EventHazardBlocked, Player: p.Name, Round: round, Card: &card, Gave: discarded.Name})
		s.log.WithFields(logrus.Fields{
			"player":  p.Name,
			"hazard":  card.Name,
			"blocker": discarded.Name,
		}).Debug("hazard blocked")
		return true, nil
	}
	return false, fmt.Errorf("%s blocking %s: %w", p.Name, card.Name, ErrInvalidChoice)
}

// applyHazard lands an unblocked action card's effect.
func (s *Session) applyHazard(round int, p *models.Player, card models.Card) {
	s.emit(Event{Type: EventHazardApplied, Player: p.Name, Round: round, Card: &card})

	switch card.Effect {
	case models.EffectSkipTurn:
		p.SkipNextTurn = true
	case models.EffectLimitMove:
		p.MoveLimitNextTurn = card.Amount
	case models.EffectLosePoints:
		p.ScorePenalty += card.Amount
		s.emit(Event{Type: EventPointsLost, Player: p.Name, Round: round, Amount: card.Amount})
	case models.EffectLoseCard:
		if len(p.Hand) == 0 {
			return
		}
		lost, err := p.RemoveCard(s.rng.Intn(len(p.Hand)))
		if err != nil {
			return
		}
		s.resourceDiscard = append(s.resourceDiscard, lost)
		s.emit(Event{Type: EventCardLost, Player: p.Name, Round: round, Card: &lost})
	}
}

// drawAction draws the top hazard, rebuilding the deck from its
// discard when it runs dry.
func (s *Session) drawAction() (models.Card, error) {
	if s.actions.Len() == 0 && len(s.actionDiscard) > 0 {
		s.actions.Refill(s.actionDiscard, s.rng)
		s.actionDiscard = nil
		s.emit(Event{Type: EventDeckReshuffled, Location: actionDeckName})
	}
	return s.actions.Draw()
}
