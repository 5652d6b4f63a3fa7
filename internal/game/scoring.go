// internal/game/scoring.go
package game

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/morganrivers/DisasterGame/internal/cards"
	"github.com/morganrivers/DisasterGame/internal/models"
)

// Score is one player's final tally, broken down by source so the
// scoreboard can show where the points came from.
type Score struct {
	Player    string `json:"player"`
	Character string `json:"character"`

	Base            int    `json:"base"`
	PlusBonus       int    `json:"plusBonus,omitempty"`
	MultiplierBonus int    `json:"multiplierBonus,omitempty"`
	TokenPoints     int    `json:"tokenPoints,omitempty"`
	ComboName       string `json:"comboName,omitempty"`
	ComboBonus      int    `json:"comboBonus,omitempty"`
	ArrivalBonus    int    `json:"arrivalBonus,omitempty"`
	Penalty         int    `json:"penalty,omitempty"`

	Total  int  `json:"total"`
	Tokens int  `json:"tokens"`
	Rank   int  `json:"rank"`
	Tied   bool `json:"tied,omitempty"`
}

// FinalScores tallies every player once the race is over, emits the
// game_end event, and closes the session. Ranking is by total,
// descending, with remaining tokens as the tie-breaker; players still
// level after that share a rank and carry the Tied flag.
func (s *Session) FinalScores() ([]Score, error) {
	if err := s.requirePhase(PhaseScoring); err != nil {
		return nil, err
	}

	scores := make([]Score, 0, len(s.Players))
	for _, p := range s.Players {
		sc := scorePlayer(p)
		scores = append(scores, sc)
		s.log.WithFields(logrus.Fields{
			"player":    p.Name,
			"character": p.Character.Name,
			"total":     sc.Total,
		}).Info("final score")
	}
	rankScores(scores)

	s.setPhase(PhaseDone)
	s.emit(Event{Type: EventGameEnd, Scores: scores})
	return scores, nil
}

func scorePlayer(p *models.Player) Score {
	sc := Score{
		Player:    p.Name,
		Character: p.Character.Name,
		Tokens:    p.Tokens,
	}

	for _, c := range p.Hand {
		sc.Base += c.Value
		if c.Name == p.Character.PlusResource {
			sc.PlusBonus++
		}
		if !p.Character.TokenMultiplier() && c.Name == p.Character.MultiplierResource {
			// Matching cards count double: face value here on top of
			// the base tally.
			sc.MultiplierBonus += c.Value
		}
	}

	perToken := 1
	if p.Character.TokenMultiplier() {
		perToken = 2
	}
	sc.TokenPoints = p.Tokens * perToken

	// Only the best kit a hand completes pays out.
	for _, combo := range cards.Combos() {
		if holdsAll(p, combo.Requires) {
			sc.ComboName = combo.Name
			sc.ComboBonus = combo.Bonus
			break
		}
	}

	if p.ArrivalRank == 1 {
		sc.ArrivalBonus = firstArrivalBonus
	}
	sc.Penalty = p.ScorePenalty

	sc.Total = sc.Base + sc.PlusBonus + sc.MultiplierBonus +
		sc.TokenPoints + sc.ComboBonus + sc.ArrivalBonus - sc.Penalty
	return sc
}

func holdsAll(p *models.Player, names []string) bool {
	for _, name := range names {
		if !p.HasResource(name) {
			return false
		}
	}
	return true
}

// rankScores orders scores and assigns ranks. Exact ties (total and
// tokens both level) share a rank so the caller can present ex aequo
// places.
func rankScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].Tokens > scores[j].Tokens
	})
	for i := range scores {
		if i > 0 && scores[i].Total == scores[i-1].Total && scores[i].Tokens == scores[i-1].Tokens {
			scores[i].Rank = scores[i-1].Rank
			scores[i].Tied = true
			scores[i-1].Tied = true
			continue
		}
		scores[i].Rank = i + 1
	}
}
