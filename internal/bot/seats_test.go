package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganrivers/DisasterGame/internal/game"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// fixedTrader is a Policy that always proposes the same swap.
type fixedTrader struct {
	*Policy
	offer game.TradeOffer
}

func (f fixedTrader) ProposeTrade(game.TradeView) (game.TradeOffer, bool) { return f.offer, true }
func (f fixedTrader) AcceptTrade(game.OfferView) bool                     { return true }

func TestSeatsRouteByPlayerName(t *testing.T) {
	seats := Seats{
		"ana": New("always", 1, 1, 1, 5),
		"bo":  New("never", 0, 0, 0, 5),
	}

	ana := models.Player{Name: "ana"}
	bo := models.Player{Name: "bo"}

	for i := 0; i < 20; i++ {
		assert.True(t, seats.SpendToken(game.TurnView{Player: ana}))
		assert.False(t, seats.SpendToken(game.TurnView{Player: bo}))
	}

	v := prepView()
	v.Player = ana
	assert.Equal(t, game.PrepVisit, seats.PrepChoice(v).Action)
	v.Player = bo
	assert.Equal(t, game.PrepDefend, seats.PrepChoice(v).Action)

	hazard := game.HazardView{Player: ana, Eligible: []int{1}}
	d := seats.BlockHazard(hazard)
	assert.True(t, d.Discard)
	assert.Equal(t, 1, d.HandIndex)
	hazard.Player = bo
	assert.False(t, seats.BlockHazard(hazard).Discard)
}

func TestSeatsRouteTradeCalls(t *testing.T) {
	offer := game.TradeOffer{Partner: "bo", Give: "Batteries", Want: "Canned Food"}
	seats := Seats{
		"ana": fixedTrader{Policy: New("trader", 0, 0, 0, 5), offer: offer},
		"bo":  New("never", 0, 0, 0, 5),
	}

	got, ok := seats.ProposeTrade(game.TradeView{Player: models.Player{Name: "ana"}})
	require.True(t, ok)
	assert.Equal(t, offer, got)

	_, ok = seats.ProposeTrade(game.TradeView{Player: models.Player{Name: "bo"}})
	assert.False(t, ok)

	assert.True(t, seats.AcceptTrade(game.OfferView{Player: models.Player{Name: "ana"}}))
	assert.False(t, seats.AcceptTrade(game.OfferView{Player: models.Player{Name: "bo"}}))
}

func TestSeatsWithoutAnEntryPlayInert(t *testing.T) {
	seats := Seats{}
	guest := models.Player{Name: "guest"}

	v := prepView()
	v.Player = guest
	assert.Equal(t, game.PrepDefend, seats.PrepChoice(v).Action)
	assert.False(t, seats.SpendToken(game.TurnView{Player: guest}))
	assert.False(t, seats.BlockHazard(game.HazardView{Player: guest, Eligible: []int{0}}).Discard)
	_, ok := seats.ProposeTrade(game.TradeView{Player: guest})
	assert.False(t, ok)
	assert.False(t, seats.AcceptTrade(game.OfferView{Player: guest}))
}

func TestMixedTableFinishesAGame(t *testing.T) {
	names := []string{"ana", "bo", "cai", "dee"}
	seats := Seats{}
	for i, n := range names {
		d, err := NewStrategy(Strategies()[i], int64(100+i))
		require.NoError(t, err)
		seats[n] = d
	}

	s, err := game.New(game.Config{Players: names, Seed: 77})
	require.NoError(t, err)
	s.Decider = seats

	var scores []game.Score
	s.Sink = func(ev game.Event) {
		if ev.Type == game.EventGameEnd {
			scores = ev.Scores
		}
	}

	require.NoError(t, s.Run())
	require.Equal(t, game.PhaseDone, s.Phase())
	require.Len(t, scores, 4)
}
