package bot

import "github.com/morganrivers/DisasterGame/internal/game"

// Seats routes every decision to a per-player decider by seat name,
// so one table can mix strategies. Views carry the acting player;
// a name without an entry plays inert: defend, hold tokens, let
// hazards land, never trade.
type Seats map[string]game.Decider

var _ game.Decider = Seats(nil)

func (s Seats) PrepChoice(v game.PrepView) game.PrepDecision {
	if d, ok := s[v.Player.Name]; ok {
		return d.PrepChoice(v)
	}
	return game.PrepDecision{Action: game.PrepDefend}
}

func (s Seats) SpendToken(v game.TurnView) bool {
	if d, ok := s[v.Player.Name]; ok {
		return d.SpendToken(v)
	}
	return false
}

func (s Seats) BlockHazard(v game.HazardView) game.BlockDecision {
	if d, ok := s[v.Player.Name]; ok {
		return d.BlockHazard(v)
	}
	return game.BlockDecision{}
}

func (s Seats) ProposeTrade(v game.TradeView) (game.TradeOffer, bool) {
	if d, ok := s[v.Player.Name]; ok {
		return d.ProposeTrade(v)
	}
	return game.TradeOffer{}, false
}

func (s Seats) AcceptTrade(v game.OfferView) bool {
	if d, ok := s[v.Player.Name]; ok {
		return d.AcceptTrade(v)
	}
	return false
}
