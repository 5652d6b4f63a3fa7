// cmd/wildfire-sim/main.go

// wildfire-sim plays unattended games to probe balance. The hero
// study seats each strategy against a random field and breaks the
// results down by the character the hero was dealt; the tournament
// rotates the strategies through mixed tables and keeps Glicko-2
// standings.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/bot"
	"github.com/morganrivers/DisasterGame/internal/cards"
	"github.com/morganrivers/DisasterGame/internal/config"
	"github.com/morganrivers/DisasterGame/internal/game"
	"github.com/morganrivers/DisasterGame/internal/rating"
)

var (
	heading = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	border  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type sim struct {
	games   int
	players int
	visit   float64
	spend   float64
	block   float64

	// gameSeeds and botSeeds are derived once from the master seed, so
	// every strategy faces the same sequence of tables.
	gameSeeds []int64
	botSeeds  []int64

	log logrus.FieldLogger

	// engine is nil unless debug logging is on; thousands of games at
	// info level would bury the result tables.
	engine logrus.FieldLogger
}

func main() {
	games := flag.Int("games", 500, "games per strategy in the hero study")
	players := flag.Int("players", 4, "players per table (2-5)")
	seed := flag.Int64("seed", 42, "master seed; every game seed derives from it")
	strategy := flag.String("strategy", "all", `strategy to evaluate, or "all"`)
	visit := flag.Float64("visit", 0.75, "random policy: chance to visit instead of defend")
	spend := flag.Float64("spend", 0.5, "random policy: chance to spend a held token")
	block := flag.Float64("block", 0.8, "random policy: chance to block a hazard")
	flag.Parse()

	if *games < 1 {
		log.Fatalf("-games must be positive, got %d", *games)
	}
	if *players < game.MinPlayers || *players > game.MaxPlayers {
		log.Fatalf("-players must be %d to %d, got %d", game.MinPlayers, game.MaxPlayers, *players)
	}

	heroes := bot.Strategies()
	if *strategy != "all" {
		if !knownStrategy(*strategy) {
			log.Fatalf("unknown strategy %q; pick one of %v or \"all\"", *strategy, bot.Strategies())
		}
		heroes = []string{*strategy}
		if *strategy != "random" {
			// The control still runs so the delta column has a baseline.
			heroes = append(heroes, "random")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("bad log level %q: %v", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	s := &sim{
		games:   *games,
		players: *players,
		visit:   *visit,
		spend:   *spend,
		block:   *block,
		log:     logger,
	}
	if logger.IsLevelEnabled(logrus.DebugLevel) {
		s.engine = logger
	}
	master := rand.New(rand.NewSource(*seed))
	s.gameSeeds = make([]int64, *games)
	s.botSeeds = make([]int64, *games)
	for i := range s.gameSeeds {
		s.gameSeeds[i] = master.Int63()
		s.botSeeds[i] = master.Int63()
	}

	if err := s.heroStudy(heroes); err != nil {
		logger.WithError(err).Error("hero study failed")
		os.Exit(1)
	}
	if *strategy == "all" {
		if err := s.tournament(); err != nil {
			logger.WithError(err).Error("tournament failed")
			os.Exit(1)
		}
	}
}

func knownStrategy(name string) bool {
	for _, s := range bot.Strategies() {
		if s == name {
			return true
		}
	}
	return false
}

// newDecider builds the named strategy. The random baseline takes its
// probabilities from the flags; the named strategies keep their
// defaults so the flags tune only the field.
func (s *sim) newDecider(name string, seed int64) (game.Decider, error) {
	if name == "random" {
		return bot.New("random", s.visit, s.spend, s.block, seed), nil
	}
	return bot.NewStrategy(name, seed)
}

// tally is one (strategy, character) cell of the hero study.
type tally struct {
	games int
	wins  int
	total int
}

func (t *tally) avg() float64 { return float64(t.total) / float64(t.games) }

func (s *sim) heroStudy(heroes []string) error {
	results := make(map[string]map[string]*tally, len(heroes))
	for _, hero := range heroes {
		byChar := make(map[string]*tally)
		results[hero] = byChar
		s.log.WithFields(logrus.Fields{"strategy": hero, "games": s.games}).Info("hero study")

		for i := 0; i < s.games; i++ {
			sc, err := s.heroGame(hero, i)
			if err != nil {
				return fmt.Errorf("strategy %s game %d: %w", hero, i, err)
			}
			cell := byChar[sc.Character]
			if cell == nil {
				cell = &tally{}
				byChar[sc.Character] = cell
			}
			cell.games++
			cell.total += sc.Total
			if sc.Rank == 1 {
				cell.wins++
			}
		}
	}
	printHeroStudy(heroes, results)
	return nil
}

// heroGame seats the hero at P0 with a random field and returns the
// hero's final score.
func (s *sim) heroGame(hero string, i int) (game.Score, error) {
	names := make([]string, s.players)
	for j := range names {
		names[j] = fmt.Sprintf("P%d", j)
	}

	seats := bot.Seats{}
	heroDecider, err := s.newDecider(hero, s.botSeeds[i])
	if err != nil {
		return game.Score{}, err
	}
	seats[names[0]] = heroDecider
	for j := 1; j < s.players; j++ {
		seats[names[j]] = bot.New("random", s.visit, s.spend, s.block, s.botSeeds[i]+int64(j))
	}

	sess, err := game.New(game.Config{Players: names, Seed: s.gameSeeds[i], Logger: s.engine})
	if err != nil {
		return game.Score{}, err
	}
	sess.Decider = seats

	var scores []game.Score
	sess.Sink = func(ev game.Event) {
		if ev.Type == game.EventGameEnd {
			scores = ev.Scores
		}
	}
	if err := sess.Run(); err != nil {
		return game.Score{}, err
	}
	for _, sc := range scores {
		if sc.Player == names[0] {
			return sc, nil
		}
	}
	return game.Score{}, fmt.Errorf("no final score for hero seat %s", names[0])
}

func printHeroStudy(heroes []string, results map[string]map[string]*tally) {
	baseline := results["random"]

	var rows [][]string
	for _, hero := range heroes {
		for _, ch := range cards.Characters() {
			cell := results[hero][ch.Name]
			if cell == nil {
				continue
			}
			delta := "-"
			if base, ok := baseline[ch.Name]; ok && base.games > 0 {
				delta = fmt.Sprintf("%+.1f", cell.avg()-base.avg())
			}
			rows = append(rows, []string{
				hero,
				ch.Name,
				fmt.Sprintf("%d", cell.games),
				fmt.Sprintf("%.1f%%", 100*float64(cell.wins)/float64(cell.games)),
				fmt.Sprintf("%.1f", cell.avg()),
				delta,
			})
		}
	}

	fmt.Println(heading.Render("Hero study: seat P0 plays the strategy, the field plays random"))
	fmt.Println(simTable([]string{"Strategy", "Character", "Games", "Win %", "Avg Score", "Vs Random"}, rows))
}

// tournament rotates a window over the strategy list so every game
// seats distinct strategies and appearances stay even, then rates each
// game's finishing order.
func (s *sim) tournament() error {
	names := bot.Strategies()
	tbl := rating.NewTable()
	s.log.WithField("games", s.games).Info("strategy tournament")

	for i := 0; i < s.games; i++ {
		seated := make([]string, s.players)
		for j := range seated {
			seated[j] = names[(i+j)%len(names)]
		}

		seats := bot.Seats{}
		for j, name := range seated {
			d, err := s.newDecider(name, s.botSeeds[i]+int64(j))
			if err != nil {
				return err
			}
			seats[name] = d
		}

		sess, err := game.New(game.Config{Players: seated, Seed: s.gameSeeds[i], Logger: s.engine})
		if err != nil {
			return fmt.Errorf("tournament game %d: %w", i, err)
		}
		sess.Decider = seats

		var scores []game.Score
		sess.Sink = func(ev game.Event) {
			if ev.Type == game.EventGameEnd {
				scores = ev.Scores
			}
		}
		if err := sess.Run(); err != nil {
			return fmt.Errorf("tournament game %d: %w", i, err)
		}

		totals := make(map[string]int, len(scores))
		for _, sc := range scores {
			totals[sc.Player] = sc.Total
		}
		tbl.Record(rating.Fractions(totals))
	}

	var rows [][]string
	for _, st := range tbl.Standings() {
		rows = append(rows, []string{
			st.Name,
			fmt.Sprintf("%.0f", st.Rating.Elo),
			fmt.Sprintf("%.0f", st.Rating.RD),
			fmt.Sprintf("%d", st.Games),
		})
	}
	fmt.Println(heading.Render("Tournament: mixed tables, Glicko-2 standings"))
	fmt.Println(simTable([]string{"Strategy", "Elo", "RD", "Games"}, rows))
	return nil
}

func simTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return heading
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
