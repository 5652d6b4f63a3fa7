// internal/game/trading.go
package game

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/models"
)

// tradeWindow polls each player still on the road, in seat order, for
// one optional trade proposal. Passing and refused offers are no-ops;
// invalid offers are re-asked.
func (s *Session) tradeWindow(round int) error {
	if s.liveCount() < 2 {
		return nil
	}
	for _, p := range s.Players {
		if p.ReachedSafeZone || len(p.Hand) == 0 {
			continue
		}
		view := TradeView{
			Round:  round,
			Player: p.Snapshot(),
			Others: s.otherLiveSnapshots(p),
		}
		for attempt := 0; ; attempt++ {
			if attempt == maxChoiceRetries {
				return fmt.Errorf("%s proposing trade: %w", p.Name, ErrInvalidChoice)
			}
			offer, ok := s.Decider.ProposeTrade(view)
			if !ok {
				break
			}
			if _, err := s.executeTrade(round, p, offer); err != nil {
				if errors.Is(err, ErrInvalidTrade) {
					view.Rejected = err
					continue
				}
				return err
			}
			break
		}
	}
	return nil
}

// Trade performs one consented card-for-card exchange between two
// players. It is callable while the session is in the disaster phase;
// a declined offer is a clean no-op, and validation failures return
// ErrInvalidTrade without touching either hand.
func (s *Session) Trade(proposer, partner, give, want string) error {
	if err := s.requirePhase(PhaseDisaster); err != nil {
		return err
	}
	p := s.player(proposer)
	if p == nil {
		return fmt.Errorf("%w: unknown player %q", ErrInvalidTrade, proposer)
	}
	_, err := s.executeTrade(s.round, p, TradeOffer{Partner: partner, Give: give, Want: want})
	return err
}

// executeTrade validates the offer, asks the partner for consent, and
// swaps exactly one card each way. The swap is atomic: both cards
// move or neither does.
func (s *Session) executeTrade(round int, p *models.Player, offer TradeOffer) (bool, error) {
	q := s.player(offer.Partner)
	switch {
	case q == nil:
		return false, fmt.Errorf("%w: unknown partner %q", ErrInvalidTrade, offer.Partner)
	case q == p:
		return false, fmt.Errorf("%w: cannot trade with yourself", ErrInvalidTrade)
	case p.ReachedSafeZone || q.ReachedSafeZone:
		return false, fmt.Errorf("%w: both players must still be on the road", ErrInvalidTrade)
	case !p.HasResource(offer.Give):
		return false, fmt.Errorf("%w: %s does not hold %q", ErrInvalidTrade, p.Name, offer.Give)
	case !q.HasResource(offer.Want):
		return false, fmt.Errorf("%w: %s does not hold %q", ErrInvalidTrade, q.Name, offer.Want)
	}

	accepted := s.Decider.AcceptTrade(OfferView{
		Round:    round,
		Player:   q.Snapshot(),
		Proposer: p.Snapshot(),
		Give:     offer.Give,
		Want:     offer.Want,
	})
	if !accepted {
		return false, nil
	}

	gave, err := p.RemoveCard(p.IndicesOf(offer.Give)[0])
	if err != nil {
		return false, err
	}
	got, err := q.RemoveCard(q.IndicesOf(offer.Want)[0])
	if err != nil {
		p.AddCard(gave)
		return false, err
	}
	p.AddCard(got)
	q.AddCard(gave)

	s.emit(Event{
		Type:    EventTradeCompleted,
		Player:  p.Name,
		Partner: q.Name,
		Gave:    gave.Name,
		Got:     got.Name,
		Round:   round,
	})
	s.log.WithFields(logrus.Fields{
		"proposer": p.Name,
		"partner":  q.Name,
		"gave":     gave.Name,
		"got":      got.Name,
	}).Info("trade completed")
	return true, nil
}

func (s *Session) liveCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.ReachedSafeZone {
			n++
		}
	}
	return n
}

func (s *Session) otherLiveSnapshots(p *models.Player) []models.Player {
	var out []models.Player
	for _, q := range s.Players {
		if q != p && !q.ReachedSafeZone {
			out = append(out, q.Snapshot())
		}
	}
	return out
}
