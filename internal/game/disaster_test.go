// internal/game/disaster_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganrivers/DisasterGame/internal/cards"
	"github.com/morganrivers/DisasterGame/internal/models"
)

func TestMoveForward(t *testing.T) {
	s, col, _ := newTestSession(t, 20, "ana", "bo")
	ana, bo := s.Players[0], s.Players[1]

	ana.Position = 10
	assert.False(t, s.moveForward(ana, 3))
	assert.Equal(t, 13, ana.Position)
	assert.False(t, ana.ReachedSafeZone)

	// Landing exactly on the final space leaves the road.
	assert.True(t, s.moveForward(ana, 1))
	assert.Equal(t, SafeZone, ana.Position)
	assert.True(t, ana.ReachedSafeZone)
	assert.Equal(t, 1, ana.ArrivalRank)

	// Overshoot transitions the same way, and ranks stay dense.
	bo.Position = 12
	assert.True(t, s.moveForward(bo, 6))
	assert.Equal(t, SafeZone, bo.Position)
	assert.Equal(t, 2, bo.ArrivalRank)

	reached := col.byType(EventSafeZoneReached)
	require.Len(t, reached, 2)
	assert.Equal(t, "ana", reached[0].Player)
	assert.Equal(t, 1, reached[0].Rank)
	assert.Equal(t, "bo", reached[1].Player)
	assert.Equal(t, 2, reached[1].Rank)
}

func TestSkipConsumesExactlyOneTurn(t *testing.T) {
	s, col, dec := newTestSession(t, 21, "ana", "bo")
	dec.spend = func(TurnView) bool {
		t.Fatal("no token question on a skipped turn")
		return false
	}
	ana := s.Players[0]
	ana.SkipNextTurn = true

	require.NoError(t, s.disasterTurn(1, ana))

	assert.False(t, ana.SkipNextTurn, "skip flag is one-shot")
	assert.Zero(t, ana.Position)
	assert.Equal(t, 1, col.count(EventTurnSkipped))
	assert.Zero(t, col.count(EventMoveRolled))
}

func TestMoveLimitCapsTheRoll(t *testing.T) {
	s, col, dec := newTestSession(t, 22, "ana", "bo")
	ana := s.Players[0]
	ana.Position = 0
	ana.MoveLimitNextTurn = 1
	ana.Tokens = 1

	var view TurnView
	asked := 0
	dec.spend = func(v TurnView) bool {
		asked++
		view = v
		return false
	}

	require.NoError(t, s.disasterTurn(1, ana))

	require.Equal(t, 1, asked, "token question comes once per turn")
	assert.True(t, view.Limited)
	assert.Equal(t, 1, view.Movement)
	assert.GreaterOrEqual(t, view.Roll, 1)
	assert.LessOrEqual(t, view.Roll, 6)

	assert.Equal(t, 1, ana.Position)
	assert.Zero(t, ana.MoveLimitNextTurn, "limit is one-shot")

	rolled := col.last(EventMoveRolled)
	require.NotNil(t, rolled)
	assert.Equal(t, 1, rolled.Amount)
	assert.Equal(t, view.Roll, rolled.Roll)
}

func TestTokenBoostAddsFiveAndSpends(t *testing.T) {
	s, col, dec := newTestSession(t, 23, "ana", "bo")
	ana := s.Players[0]
	ana.Position = 0
	ana.Tokens = 2
	dec.spend = func(TurnView) bool { return true }

	require.NoError(t, s.disasterTurn(1, ana))

	rolled := col.last(EventMoveRolled)
	require.NotNil(t, rolled)
	want := rolled.Roll + TokenBoost

	// The landing space may chain into a shortcut jump, so check the
	// boosted move itself rather than the final position.
	moved := col.byType(EventMoved)
	require.NotEmpty(t, moved)
	assert.Equal(t, 0, moved[0].From)
	assert.Equal(t, want, moved[0].To)
	assert.Equal(t, want, moved[0].Amount)

	assert.Equal(t, 1, ana.Tokens)
	assert.Equal(t, 1, col.count(EventTokenSpent))
	assert.Equal(t, TokenBoost, col.last(EventTokenSpent).Amount)
}

func TestNoTokenQuestionAtZero(t *testing.T) {
	s, _, dec := newTestSession(t, 24, "ana", "bo")
	ana := s.Players[0]
	ana.Tokens = 0
	dec.spend = func(TurnView) bool {
		t.Fatal("token question asked at zero tokens")
		return false
	}

	require.NoError(t, s.disasterTurn(1, ana))
	assert.Zero(t, ana.Tokens)
}

// A move limit of 1 forces an exact landing, which lets these tests
// steer players onto specific spaces without knowing the die.
func forceStep(t *testing.T, s *Session, p *models.Player, from int) {
	t.Helper()
	p.Position = from
	p.MoveLimitNextTurn = 1
	p.Tokens = 0
	require.NoError(t, s.disasterTurn(1, p))
}

func TestLandingOnHazardDrawsActionCard(t *testing.T) {
	s, col, _ := newTestSession(t, 25, "ana", "bo")
	before := s.actions.Len()

	forceStep(t, s, s.Players[0], 3) // space 4 is a hazard

	require.Equal(t, 1, col.count(EventHazardDrawn))
	ev := col.last(EventHazardDrawn)
	require.NotNil(t, ev.Card)
	assert.True(t, ev.Card.IsAction())
	assert.Equal(t, before-1, s.actions.Len())
	assert.Len(t, s.actionDiscard, 1, "resolved hazards go to the action discard")
}

func TestLandingOnShortcutGambles(t *testing.T) {
	for seed := int64(0); seed < 12; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			s, col, _ := newTestSession(t, seed, "ana", "bo")
			ana := s.Players[0]

			forceStep(t, s, ana, 4) // space 5 is a shortcut

			ev := col.last(EventShortcutRoll)
			require.NotNil(t, ev, "the gamble is mandatory")
			if ev.Roll >= shortcutWin {
				assert.Equal(t, 5+ShortcutBonus, ana.Position, "won gamble jumps to 8")
				// Space 8 is a hazard, so the jump chains into a draw.
				assert.Equal(t, 1, col.count(EventHazardDrawn))
			} else {
				assert.Equal(t, 5, ana.Position)
				assert.True(t, ana.SkipNextTurn, "lost gamble costs next turn")
				assert.Equal(t, "skip_next_turn", ev.Reason)
				assert.Zero(t, col.count(EventHazardDrawn))
			}
		})
	}
}

func TestShortcutWinCanFinishTheRace(t *testing.T) {
	s, col, _ := newTestSession(t, 26, "ana", "bo")
	ana := s.Players[0]
	// From 12, a won gamble lands at 15 and leaves the road.
	ana.Position = 12
	if s.resolveShortcut(1, ana) {
		assert.True(t, ana.ReachedSafeZone)
		assert.Equal(t, SafeZone, ana.Position)
		require.Equal(t, 1, col.count(EventSafeZoneReached))
	} else {
		assert.Equal(t, 12, ana.Position)
		assert.True(t, ana.SkipNextTurn)
	}
}

func newHazard(t *testing.T, name string) models.Card {
	t.Helper()
	c, ok := cards.ActionByName(name)
	require.True(t, ok)
	return c
}

func TestOfferBlockSpendsChosenCopy(t *testing.T) {
	s, col, dec := newTestSession(t, 27, "ana", "bo")
	ana := s.Players[0]
	ana.Hand = []models.Card{
		{ID: uuid.New(), Kind: models.KindResource, Name: "Spare Tire", Value: 3, Origin: "Gas Station"},
		{ID: uuid.New(), Kind: models.KindResource, Name: "Water Bottle", Value: 1, Origin: "Grocery Store"},
		{ID: uuid.New(), Kind: models.KindResource, Name: "Spare Tire", Value: 3, Origin: "Gas Station"},
	}
	keep := ana.Hand[0].ID

	dec.block = func(v HazardView) BlockDecision {
		assert.Equal(t, []int{0, 2}, v.Eligible)
		return BlockDecision{Discard: true, HandIndex: 2}
	}

	blocked, err := s.offerBlock(1, ana, newHazard(t, "Flat Tire"))
	require.NoError(t, err)
	assert.True(t, blocked)

	require.Len(t, ana.Hand, 2)
	assert.Equal(t, keep, ana.Hand[0].ID, "the named copy goes, not the first")
	assert.False(t, ana.SkipNextTurn, "blocked hazards have no effect")
	require.Len(t, s.resourceDiscard, 1)
	assert.Equal(t, "Spare Tire", s.resourceDiscard[0].Name)
	assert.Equal(t, "Spare Tire", col.last(EventHazardBlocked).Gave)
}

func TestOfferBlockDeclined(t *testing.T) {
	s, _, dec := newTestSession(t, 28, "ana", "bo")
	ana := s.Players[0]
	ana.Hand = []models.Card{
		{ID: uuid.New(), Kind: models.KindResource, Name: "Spare Tire", Value: 3},
	}
	dec.block = func(HazardView) BlockDecision { return BlockDecision{} }

	blocked, err := s.offerBlock(1, ana, newHazard(t, "Flat Tire"))
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Len(t, ana.Hand, 1)
}

func TestOfferBlockWithoutBlockerNeverAsks(t *testing.T) {
	s, _, dec := newTestSession(t, 29, "ana", "bo")
	ana := s.Players[0]
	ana.Hand = []models.Card{
		{ID: uuid.New(), Kind: models.KindResource, Name: "Water Bottle", Value: 1},
	}
	dec.block = func(HazardView) BlockDecision {
		t.Fatal("block question without an eligible card")
		return BlockDecision{}
	}

	blocked, err := s.offerBlock(1, ana, newHazard(t, "Flat Tire"))
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestOfferBlockReasksOnBadIndex(t *testing.T) {
	s, _, dec := newTestSession(t, 30, "ana", "bo")
	ana := s.Players[0]
	ana.Hand = []models.Card{
		{ID: uuid.New(), Kind: models.KindResource, Name: "Water Bottle", Value: 1},
		{ID: uuid.New(), Kind: models.KindResource, Name: "Spare Tire", Value: 3},
	}

	calls := 0
	dec.block = func(v HazardView) BlockDecision {
		calls++
		if calls == 1 {
			return BlockDecision{Discard: true, HandIndex: 0} // water bottle, not a blocker
		}
		require.Error(t, v.Rejected)
		assert.ErrorIs(t, v.Rejected, ErrInvalidChoice)
		return BlockDecision{Discard: true, HandIndex: 1}
	}

	blocked, err := s.offerBlock(1, ana, newHazard(t, "Flat Tire"))
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, 2, calls)
}

func TestOfferBlockGivesUpOnStubbornDecider(t *testing.T) {
	s, _, dec := newTestSession(t, 31, "ana", "bo")
	ana := s.Players[0]
	ana.Hand = []models.Card{
		{ID: uuid.New(), Kind: models.KindResource, Name: "Spare Tire", Value: 3},
	}
	dec.block = func(HazardView) BlockDecision {
		return BlockDecision{Discard: true, HandIndex: 99}
	}

	_, err := s.offerBlock(1, ana, newHazard(t, "Flat Tire"))
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Len(t, ana.Hand, 1, "no card is spent on a failed block")
}

func TestApplyHazardEffects(t *testing.T) {
	s, col, _ := newTestSession(t, 32, "ana", "bo")
	ana := s.Players[0]

	s.applyHazard(1, ana, newHazard(t, "Heavy Smoke"))
	assert.True(t, ana.SkipNextTurn)

	s.applyHazard(1, ana, newHazard(t, "Road Block"))
	assert.Equal(t, 1, ana.MoveLimitNextTurn)

	s.applyHazard(1, ana, newHazard(t, "Dehydration"))
	assert.Equal(t, 5, ana.ScorePenalty)
	assert.Equal(t, 5, col.last(EventPointsLost).Amount)

	s.applyHazard(1, ana, newHazard(t, "Food Spoilage"))
	assert.Equal(t, 10, ana.ScorePenalty, "point losses accumulate")
}

func TestApplyHazardLoseCard(t *testing.T) {
	s, col, _ := newTestSession(t, 33, "ana", "bo")
	ana := s.Players[0]
	require.Len(t, ana.Hand, 2)
	discardBefore := len(s.resourceDiscard)

	s.applyHazard(1, ana, newHazard(t, "Car Trouble"))

	assert.Len(t, ana.Hand, 1)
	assert.Len(t, s.resourceDiscard, discardBefore+1)
	ev := col.last(EventCardLost)
	require.NotNil(t, ev)
	require.NotNil(t, ev.Card)
	assert.Equal(t, s.resourceDiscard[len(s.resourceDiscard)-1].ID, ev.Card.ID)

	// An empty hand has nothing to lose.
	ana.Hand = nil
	s.applyHazard(1, ana, newHazard(t, "Car Trouble"))
	assert.Empty(t, ana.Hand)
	assert.Len(t, s.resourceDiscard, discardBefore+1)
}

func TestActionDeckReshufflesFromDiscard(t *testing.T) {
	s, col, _ := newTestSession(t, 34, "ana", "bo")

	// Drain the deck into the discard, as resolved hazards would.
	for s.actions.Len() > 0 {
		c, err := s.actions.Draw()
		require.NoError(t, err)
		s.actionDiscard = append(s.actionDiscard, c)
	}
	require.Len(t, s.actionDiscard, 9)

	c, err := s.drawAction()
	require.NoError(t, err)
	assert.True(t, c.IsAction())
	assert.Equal(t, 1, col.count(EventDeckReshuffled))
	assert.Equal(t, 8, s.actions.Len())
	assert.Empty(t, s.actionDiscard)
}

func TestHazardWithNoCardsLeftIsSkipped(t *testing.T) {
	s, col, _ := newTestSession(t, 35, "ana", "bo")
	for s.actions.Len() > 0 {
		_, err := s.actions.Draw()
		require.NoError(t, err)
	}
	ana := s.Players[0]
	ana.Hand = nil

	require.NoError(t, s.resolveHazard(1, ana))
	assert.Equal(t, 1, col.count(EventDeckEmpty))
	assert.Zero(t, col.count(EventHazardDrawn))
	assert.False(t, ana.SkipNextTurn)
}

func TestArrivedPlayersAreNeverSkippedOrTurned(t *testing.T) {
	s, col, dec := newTestSession(t, 36, "ana", "bo")
	dec.spend = func(TurnView) bool { return false }
	require.NoError(t, s.RunPreparation())
	require.NoError(t, s.RunDisaster())

	for _, ev := range col.byType(EventTurnStarted) {
		if ev.Phase != PhaseDisaster.String() {
			continue
		}
		// No turn may start for a player already ranked at that time.
		// Arrival events for a player always come after their last
		// turn_started record.
		var lastTurn, arrival int
		for i, e := range col.events {
			if e.Player == ev.Player {
				switch e.Type {
				case EventTurnStarted:
					lastTurn = i
				case EventSafeZoneReached:
					arrival = i
				}
			}
		}
		assert.Greater(t, arrival, lastTurn, "%s took a turn after arriving", ev.Player)
	}
}
