// internal/game/session.go
package game

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/cards"
	"github.com/morganrivers/DisasterGame/internal/deck"
	"github.com/morganrivers/DisasterGame/internal/models"
)

const (
	MinPlayers = 2
	MaxPlayers = 5

	// TokenBoost is the extra movement bought by spending one
	// Neighborly Token during a disaster turn.
	TokenBoost = 5

	// ShortcutBonus is the extra movement granted by a won shortcut
	// gamble.
	ShortcutBonus = 3

	dieSides          = 6
	triggerValue      = 6
	shortcutWin       = 5
	firstArrivalBonus = 5

	defaultPrepRounds        = 5
	defaultStartingHand      = 2
	defaultMaxDisasterRounds = 200

	// maxChoiceRetries bounds how often one decision is re-asked after
	// invalid answers before the game aborts.
	maxChoiceRetries = 8

	actionDeckName = "Action Deck"
)

// Phase is the lifecycle stage of a session. Phases advance in one
// direction only.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePreparation
	PhaseDisaster
	PhaseScoring
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePreparation:
		return "preparation"
	case PhaseDisaster:
		return "disaster"
	case PhaseScoring:
		return "scoring"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Config carries session construction options. Zero values take
// defaults; Players is required.
type Config struct {
	Players []string

	// Seed drives every shuffle and die roll. The same seed with the
	// same decisions replays the same game.
	Seed int64

	PrepRounds   int
	StartingHand int

	// MaxDisasterRounds is a safety valve against deciders that never
	// let the race finish.
	MaxDisasterRounds int

	Logger logrus.FieldLogger
}

// Session holds the entire state of one game in memory. It is not
// safe for concurrent use; one goroutine drives a game start to
// finish.
type Session struct {
	ID      uuid.UUID
	Players []*models.Player
	Board   Board

	// Decider answers player choices. Required before Run.
	Decider Decider

	// Sink receives every event record. If nil, events are dropped.
	Sink func(Event)

	phase Phase
	rng   *rand.Rand
	log   logrus.FieldLogger

	locations       []string
	decks           map[string]*deck.Deck
	actions         *deck.Deck
	actionDiscard   []models.Card
	resourceDiscard []models.Card

	prepRounds        int
	startingHand      int
	maxDisasterRounds int

	triggered bool // disaster die came up 6 during preparation
	arrived   int  // players in the Safe Zone so far
	round     int  // current disaster round
}

// New builds a session: shuffled location decks, shuffled hazard deck,
// secretly dealt characters, and each player's starting hand. All
// randomness flows through one seeded source.
func New(cfg Config) (*Session, error) {
	if len(cfg.Players) < MinPlayers {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPlayers, len(cfg.Players))
	}
	if len(cfg.Players) > MaxPlayers {
		return nil, fmt.Errorf("%w, got %d", ErrTooManyPlayers, len(cfg.Players))
	}
	seen := map[string]bool{}
	for _, name := range cfg.Players {
		if name == "" {
			return nil, fmt.Errorf("player names must not be empty")
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
	}

	if cfg.PrepRounds == 0 {
		cfg.PrepRounds = defaultPrepRounds
	}
	if cfg.StartingHand == 0 {
		cfg.StartingHand = defaultStartingHand
	}
	if cfg.MaxDisasterRounds == 0 {
		cfg.MaxDisasterRounds = defaultMaxDisasterRounds
	}
	logger := cfg.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	s := &Session{
		ID:                uuid.New(),
		Board:             DefaultBoard(),
		phase:             PhaseSetup,
		rng:               rand.New(rand.NewSource(cfg.Seed)),
		log:               logger,
		decks:             map[string]*deck.Deck{},
		prepRounds:        cfg.PrepRounds,
		startingHand:      cfg.StartingHand,
		maxDisasterRounds: cfg.MaxDisasterRounds,
	}

	for _, loc := range cards.Locations() {
		d := deck.New(loc.Cards)
		d.Shuffle(s.rng)
		s.locations = append(s.locations, loc.Name)
		s.decks[loc.Name] = d
	}

	s.actions = deck.New(cards.Actions())
	s.actions.Shuffle(s.rng)

	pool := cards.Characters()
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for i, name := range cfg.Players {
		s.Players = append(s.Players, &models.Player{
			ID:        uuid.New(),
			Name:      name,
			Character: pool[i],
		})
	}

	s.dealStartingHands()

	s.log.WithFields(logrus.Fields{
		"session": s.ID,
		"players": len(s.Players),
		"seed":    cfg.Seed,
	}).Info("session created")
	return s, nil
}

// dealStartingHands gives each player their starting cards, drawn from
// randomly chosen non-empty location decks.
func (s *Session) dealStartingHands() {
	for _, p := range s.Players {
		for i := 0; i < s.startingHand; i++ {
			var open []string
			for _, name := range s.locations {
				if s.decks[name].Len() > 0 {
					open = append(open, name)
				}
			}
			if len(open) == 0 {
				return
			}
			name := open[s.rng.Intn(len(open))]
			card, err := s.decks[name].Draw()
			if err != nil {
				continue
			}
			p.AddCard(card)
		}
	}
}

// Phase reports the current lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Run plays a full game: preparation, disaster, scoring. Results are
// delivered through FinalScores' game_end event and the returned
// error.
func (s *Session) Run() error {
	if err := s.RunPreparation(); err != nil {
		return err
	}
	if err := s.RunDisaster(); err != nil {
		return err
	}
	_, err := s.FinalScores()
	return err
}

// PlayerSnapshots returns deep copies of every player in seat order.
func (s *Session) PlayerSnapshots() []models.Player {
	out := make([]models.Player, 0, len(s.Players))
	for _, p := range s.Players {
		out = append(out, p.Snapshot())
	}
	return out
}

// DeckCounts reports the remaining size of each location deck in
// stocking order.
func (s *Session) DeckCounts() []DeckCount {
	out := make([]DeckCount, 0, len(s.locations))
	for _, name := range s.locations {
		out = append(out, DeckCount{Location: name, Cards: s.decks[name].Len()})
	}
	return out
}

func (s *Session) setPhase(p Phase) {
	s.phase = p
	s.emit(Event{Type: EventPhaseChanged, Phase: p.String()})
	s.log.WithField("phase", p.String()).Info("phase changed")
}

func (s *Session) requirePhase(want Phase) error {
	if s.phase != want {
		return fmt.Errorf("%w: in %s, want %s", ErrIllegalPhase, s.phase, want)
	}
	return nil
}

// roll throws the six-sided die.
func (s *Session) roll() int {
	return s.rng.Intn(dieSides) + 1
}

func (s *Session) player(name string) *models.Player {
	for _, p := range s.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (s *Session) allArrived() bool {
	return s.arrived == len(s.Players)
}

// resourceCardsInPlay counts resource cards across decks, hands, and
// the discard pile. The total never changes over a game.
func (s *Session) resourceCardsInPlay() int {
	n := len(s.resourceDiscard)
	for _, d := range s.decks {
		n += d.Len()
	}
	for _, p := range s.Players {
		n += len(p.Hand)
	}
	return n
}
