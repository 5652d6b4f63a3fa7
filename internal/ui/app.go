// Package ui is the interactive terminal client: a bubbletea program
// that walks players through setup, drives one shared-keyboard game,
// and ends on the scoreboard. The engine runs in its own goroutine and
// every decision it needs arrives here as a message.
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/game"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// AppConfig carries what the binary resolved before the UI starts.
type AppConfig struct {
	// Seed drives the whole game when non-zero; zero picks a fresh
	// seed at start, and the setup screen can override either.
	Seed   int64
	Logger logrus.FieldLogger
}

// App owns the program lifecycle.
type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

// sender forwards messages to the program once it exists. The engine
// goroutine only starts after setup completes, well past attach.
type sender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *sender) attach(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *sender) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (a *App) Run() error {
	fwd := &sender{}
	m := newModel(a.cfg, fwd.send)
	p := tea.NewProgram(m, tea.WithAltScreen())
	fwd.attach(p)
	_, err := p.Run()
	return err
}

// --- Styles (ember palette) ---
var (
	ember  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bright = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faint  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	alert  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	safe   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var divider = strings.Repeat("-", 60)

type screen int

const (
	screenSetup screen = iota
	screenGame
	screenScores
)

type promptKind int

const (
	promptNone promptKind = iota
	promptPrep
	promptToken
	promptBlock
	promptTrade
	promptAccept
)

// promptState is the decision currently waiting for keyboard input.
// Exactly one request field matches kind; its reply channel is written
// once and the whole struct is cleared.
type promptState struct {
	kind   promptKind
	cursor int

	prep   prepRequestMsg
	token  tokenRequestMsg
	block  blockRequestMsg
	trade  tradeRequestMsg
	accept acceptRequestMsg

	// trade builder selections
	partnerIdx int
	giveIdx    int
	wantIdx    int
}

type setupState struct {
	cursor int
	count  int
	seed   string
	names  []string
}

func newSetupState(seed int64) setupState {
	names := make([]string, game.MaxPlayers)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	s := setupState{count: 4, names: names}
	if seed != 0 {
		s.seed = strconv.FormatInt(seed, 10)
	}
	return s
}

type model struct {
	w, h int
	cfg  AppConfig
	send func(tea.Msg)

	screen screen
	setup  setupState

	session *game.Session
	players []models.Player
	decks   []game.DeckCount
	phase   string
	round   int

	log    []string
	prompt promptState
	scores []game.Score
	status string
	errMsg string
}

func newModel(cfg AppConfig, send func(tea.Msg)) model {
	return model{
		cfg:   cfg,
		send:  send,
		setup: newSetupState(cfg.Seed),
		phase: "setup",
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		return m, nil

	case eventMsg:
		return m.applyEvent(msg), nil

	case gameDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.screen = screenScores
		return m, nil

	case prepRequestMsg:
		m.prompt = promptState{kind: promptPrep, prep: msg}
		return m, nil
	case tokenRequestMsg:
		m.prompt = promptState{kind: promptToken, token: msg}
		return m, nil
	case blockRequestMsg:
		m.prompt = promptState{kind: promptBlock, block: msg}
		return m, nil
	case tradeRequestMsg:
		m.prompt = promptState{kind: promptTrade, trade: msg}
		return m, nil
	case acceptRequestMsg:
		m.prompt = promptState{kind: promptAccept, accept: msg}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenSetup:
			return m.updateSetup(msg)
		case screenScores:
			return m.updateScores(msg)
		default:
			return m.updateGame(msg)
		}
	}

	return m, nil
}

func (m model) View() string {
	switch m.screen {
	case screenSetup:
		return m.viewSetup()
	case screenScores:
		return m.viewScores()
	default:
		return m.viewGame()
	}
}

// applyEvent folds one game event into the model: fresh snapshots, a
// log line, and the final scores when they arrive.
func (m model) applyEvent(msg eventMsg) model {
	m.players = msg.players
	m.decks = msg.decks
	if msg.ev.Phase != "" {
		m.phase = msg.ev.Phase
	}
	if msg.ev.Round != 0 {
		m.round = msg.ev.Round
	}
	if line := eventLine(msg.ev); line != "" {
		m.log = append(m.log, line)
	}
	if msg.ev.Type == game.EventGameEnd {
		m.scores = msg.ev.Scores
	}
	return m
}

// --- Setup screen ---

// Setup rows: player count, seed, one name row per seat, start, quit.
const setupFixedRows = 2

func (m model) setupRowCount() int {
	return setupFixedRows + m.setup.count + 2
}

func (m model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.setupRowCount()
	startRow := setupFixedRows + m.setup.count
	quitRow := startRow + 1

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "up":
		m.setup.cursor = wrapIndex(m.setup.cursor, -1, rows)
		return m, nil
	case "down":
		m.setup.cursor = wrapIndex(m.setup.cursor, 1, rows)
		return m, nil
	case "left":
		if m.setup.cursor == 0 {
			m.setup.count = clamp(m.setup.count-1, game.MinPlayers, game.MaxPlayers)
			m.setup.cursor = min(m.setup.cursor, m.setupRowCount()-1)
		}
		return m, nil
	case "right":
		if m.setup.cursor == 0 {
			m.setup.count = clamp(m.setup.count+1, game.MinPlayers, game.MaxPlayers)
		}
		return m, nil
	case "backspace", "ctrl+h":
		if m.setup.cursor == 1 && len(m.setup.seed) > 0 {
			m.setup.seed = m.setup.seed[:len(m.setup.seed)-1]
		}
		if i := m.setup.cursor - setupFixedRows; i >= 0 && i < m.setup.count {
			if name := m.setup.names[i]; len(name) > 0 {
				m.setup.names[i] = name[:len(name)-1]
			}
		}
		return m, nil
	case "enter":
		switch m.setup.cursor {
		case startRow:
			return m.startGame()
		case quitRow:
			return m, tea.Quit
		default:
			m.setup.cursor = wrapIndex(m.setup.cursor, 1, rows)
			return m, nil
		}
	}

	if len(msg.Runes) > 0 {
		if m.setup.cursor == 1 {
			for _, r := range msg.Runes {
				if r >= '0' && r <= '9' {
					m.setup.seed += string(r)
				}
			}
			return m, nil
		}
		if i := m.setup.cursor - setupFixedRows; i >= 0 && i < m.setup.count {
			m.setup.names[i] += string(msg.Runes)
			return m, nil
		}
	}

	return m, nil
}

func (m model) startGame() (tea.Model, tea.Cmd) {
	names := make([]string, 0, m.setup.count)
	for i := 0; i < m.setup.count; i++ {
		name := strings.TrimSpace(m.setup.names[i])
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		names = append(names, name)
	}

	seed := m.cfg.Seed
	if v, err := strconv.ParseInt(m.setup.seed, 10, 64); err == nil && v != 0 {
		seed = v
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := game.New(game.Config{Players: names, Seed: seed, Logger: m.cfg.Logger})
	if err != nil {
		m.status = fmt.Sprintf("Cannot start: %v", err)
		return m, nil
	}

	send := m.send
	s.Decider = NewProgramDecider(send)
	s.Sink = func(ev game.Event) {
		send(eventMsg{ev: ev, players: s.PlayerSnapshots(), decks: s.DeckCounts()})
	}

	m.session = s
	m.players = s.PlayerSnapshots()
	m.decks = s.DeckCounts()
	m.log = introLines(m.players)
	m.screen = screenGame
	m.status = ""

	go func() {
		send(gameDoneMsg{err: s.Run()})
	}()
	return m, nil
}

// --- Game screen ---

func (m model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	if m.prompt.kind == promptNone {
		return m, nil
	}
	if m.prompt.kind == promptTrade {
		return m.updateTradePrompt(msg)
	}

	options := m.promptOptionCount()
	switch msg.String() {
	case "up":
		m.prompt.cursor = wrapIndex(m.prompt.cursor, -1, options)
	case "down":
		m.prompt.cursor = wrapIndex(m.prompt.cursor, 1, options)
	case "enter":
		return m.answerPrompt()
	}
	return m, nil
}

func (m model) promptOptionCount() int {
	switch m.prompt.kind {
	case promptPrep:
		return len(m.prompt.prep.view.Decks) + 1
	case promptBlock:
		return len(m.prompt.block.view.Eligible) + 1
	default: // token, accept
		return 2
	}
}

// answerPrompt resolves the cursor into a reply, wakes the engine, and
// clears the prompt.
func (m model) answerPrompt() (tea.Model, tea.Cmd) {
	p := m.prompt
	switch p.kind {
	case promptPrep:
		decks := p.prep.view.Decks
		if p.cursor < len(decks) {
			p.prep.reply <- game.PrepDecision{Action: game.PrepVisit, Location: decks[p.cursor].Location}
		} else {
			p.prep.reply <- game.PrepDecision{Action: game.PrepDefend}
		}
	case promptToken:
		p.token.reply <- p.cursor == 0
	case promptBlock:
		eligible := p.block.view.Eligible
		if p.cursor < len(eligible) {
			p.block.reply <- game.BlockDecision{Discard: true, HandIndex: eligible[p.cursor]}
		} else {
			p.block.reply <- game.BlockDecision{}
		}
	case promptAccept:
		p.accept.reply <- p.cursor == 0
	}
	m.prompt = promptState{}
	m.status = ""
	return m, nil
}

// Trade builder rows.
const (
	tradeRowPartner = iota
	tradeRowGive
	tradeRowWant
	tradeRowOffer
	tradeRowPass
	tradeRowCount
)

func (m model) updateTradePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := &m.prompt
	view := p.trade.view

	switch msg.String() {
	case "esc":
		p.trade.reply <- tradeAnswer{}
		m.prompt = promptState{}
		return m, nil
	case "up":
		p.cursor = wrapIndex(p.cursor, -1, tradeRowCount)
		return m, nil
	case "down":
		p.cursor = wrapIndex(p.cursor, 1, tradeRowCount)
		return m, nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch p.cursor {
		case tradeRowPartner:
			if n := len(view.Others); n > 0 {
				p.partnerIdx = wrapIndex(p.partnerIdx, delta, n)
				p.wantIdx = 0
			}
		case tradeRowGive:
			if n := len(resourceNames(view.Player)); n > 0 {
				p.giveIdx = wrapIndex(p.giveIdx, delta, n)
			}
		case tradeRowWant:
			if n := len(m.tradeWants()); n > 0 {
				p.wantIdx = wrapIndex(p.wantIdx, delta, n)
			}
		}
		return m, nil
	case "enter":
		switch p.cursor {
		case tradeRowOffer:
			gives := resourceNames(view.Player)
			wants := m.tradeWants()
			if len(view.Others) == 0 || len(gives) == 0 || len(wants) == 0 {
				m.status = "Nothing to offer here; pass instead."
				return m, nil
			}
			p.trade.reply <- tradeAnswer{
				offer: game.TradeOffer{
					Partner: view.Others[p.partnerIdx].Name,
					Give:    gives[p.giveIdx],
					Want:    wants[p.wantIdx],
				},
				ok: true,
			}
			m.prompt = promptState{}
			m.status = ""
			return m, nil
		case tradeRowPass:
			p.trade.reply <- tradeAnswer{}
			m.prompt = promptState{}
			m.status = ""
			return m, nil
		default:
			p.cursor = wrapIndex(p.cursor, 1, tradeRowCount)
			return m, nil
		}
	}
	return m, nil
}

// tradeWants lists what the selected partner could give back.
func (m model) tradeWants() []string {
	view := m.prompt.trade.view
	if len(view.Others) == 0 {
		return nil
	}
	idx := m.prompt.partnerIdx
	if idx >= len(view.Others) {
		idx = 0
	}
	return resourceNames(view.Others[idx])
}

// --- Scores screen ---

func (m model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "enter", "esc":
		return m, tea.Quit
	case "n":
		fresh := newModel(m.cfg, m.send)
		fresh.w, fresh.h = m.w, m.h
		return fresh, nil
	}
	return m, nil
}

func wrapIndex(current, delta, size int) int {
	next := current + delta
	for next < 0 {
		next += size
	}
	return next % size
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
