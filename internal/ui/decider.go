package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganrivers/DisasterGame/internal/game"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// Messages posted into the program from the engine goroutine. Every
// snapshot inside them is taken while the engine is parked, so the
// model owns what it receives.

// eventMsg delivers one game event together with fresh player and
// deck snapshots for rendering.
type eventMsg struct {
	ev      game.Event
	players []models.Player
	decks   []game.DeckCount
}

// gameDoneMsg reports that the engine goroutine returned.
type gameDoneMsg struct{ err error }

// Decision requests. Each carries a reply channel (buffered, written
// exactly once) that the blocked engine goroutine is reading.

type prepRequestMsg struct {
	view  game.PrepView
	reply chan game.PrepDecision
}

type tokenRequestMsg struct {
	view  game.TurnView
	reply chan bool
}

type blockRequestMsg struct {
	view  game.HazardView
	reply chan game.BlockDecision
}

type tradeAnswer struct {
	offer game.TradeOffer
	ok    bool
}

type tradeRequestMsg struct {
	view  game.TradeView
	reply chan tradeAnswer
}

type acceptRequestMsg struct {
	view  game.OfferView
	reply chan bool
}

// ProgramDecider adapts the engine's synchronous Decider to the
// bubbletea event loop. Each call posts a request into the program and
// blocks the engine goroutine until the player answers on screen.
type ProgramDecider struct {
	send func(tea.Msg)
}

// NewProgramDecider wires a decider to a program's Send function (or
// any stand-in during tests).
func NewProgramDecider(send func(tea.Msg)) *ProgramDecider {
	return &ProgramDecider{send: send}
}

var _ game.Decider = (*ProgramDecider)(nil)

func (d *ProgramDecider) PrepChoice(v game.PrepView) game.PrepDecision {
	reply := make(chan game.PrepDecision, 1)
	d.send(prepRequestMsg{view: v, reply: reply})
	return <-reply
}

func (d *ProgramDecider) SpendToken(v game.TurnView) bool {
	reply := make(chan bool, 1)
	d.send(tokenRequestMsg{view: v, reply: reply})
	return <-reply
}

func (d *ProgramDecider) BlockHazard(v game.HazardView) game.BlockDecision {
	reply := make(chan game.BlockDecision, 1)
	d.send(blockRequestMsg{view: v, reply: reply})
	return <-reply
}

func (d *ProgramDecider) ProposeTrade(v game.TradeView) (game.TradeOffer, bool) {
	reply := make(chan tradeAnswer, 1)
	d.send(tradeRequestMsg{view: v, reply: reply})
	a := <-reply
	return a.offer, a.ok
}

func (d *ProgramDecider) AcceptTrade(v game.OfferView) bool {
	reply := make(chan bool, 1)
	d.send(acceptRequestMsg{view: v, reply: reply})
	return <-reply
}
