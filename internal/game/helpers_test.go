// internal/game/helpers_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// collector gathers the event stream for assertions. The engine emits
// from a single goroutine, so no locking is needed.
type collector struct {
	events []Event
}

func (c *collector) sink(ev Event) {
	c.events = append(c.events, ev)
}

func (c *collector) byType(t EventType) []Event {
	var out []Event
	for _, ev := range c.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

func (c *collector) count(t EventType) int {
	return len(c.byType(t))
}

func (c *collector) last(t EventType) *Event {
	evs := c.byType(t)
	if len(evs) == 0 {
		return nil
	}
	return &evs[len(evs)-1]
}

// scriptDecider implements Decider with pluggable funcs. The zero
// value plays the dullest legal game: always defend home, never spend
// tokens, never block, never trade.
type scriptDecider struct {
	prep    func(PrepView) PrepDecision
	spend   func(TurnView) bool
	block   func(HazardView) BlockDecision
	propose func(TradeView) (TradeOffer, bool)
	accept  func(OfferView) bool
}

func (d *scriptDecider) PrepChoice(v PrepView) PrepDecision {
	if d.prep != nil {
		return d.prep(v)
	}
	return PrepDecision{Action: PrepDefend}
}

func (d *scriptDecider) SpendToken(v TurnView) bool {
	if d.spend != nil {
		return d.spend(v)
	}
	return false
}

func (d *scriptDecider) BlockHazard(v HazardView) BlockDecision {
	if d.block != nil {
		return d.block(v)
	}
	return BlockDecision{}
}

func (d *scriptDecider) ProposeTrade(v TradeView) (TradeOffer, bool) {
	if d.propose != nil {
		return d.propose(v)
	}
	return TradeOffer{}, false
}

func (d *scriptDecider) AcceptTrade(v OfferView) bool {
	if d.accept != nil {
		return d.accept(v)
	}
	return false
}

// newTestSession builds a session with a collector sink and a zero
// scriptDecider installed.
func newTestSession(t *testing.T, seed int64, names ...string) (*Session, *collector, *scriptDecider) {
	t.Helper()
	s, err := New(Config{Players: names, Seed: seed})
	require.NoError(t, err)

	col := &collector{}
	dec := &scriptDecider{}
	s.Sink = col.sink
	s.Decider = dec
	return s, col, dec
}
