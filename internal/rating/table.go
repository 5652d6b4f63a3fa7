package rating

import "sort"

// Table carries persistent ratings keyed by contender name. Each
// Record call is one game: every named contender is scored against
// the average of the others and moved exactly once, and the moved
// deviation and volatility feed the next game.
type Table struct {
	ratings map[string]Rating
	games   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		ratings: make(map[string]Rating),
		games:   make(map[string]int),
	}
}

// Get returns the current rating for name, the baseline if unseen.
func (t *Table) Get(name string) Rating {
	if r, ok := t.ratings[name]; ok {
		return r
	}
	return NewRating()
}

// Games returns how many rated games name has played.
func (t *Table) Games(name string) int {
	return t.games[name]
}

// Record applies one game's rank fractions. All updates read the
// pre-game ratings, so seat order within a game does not matter. A
// lone contender has no opposition and records nothing.
func (t *Table) Record(fractions map[string]float64) {
	if len(fractions) < 2 {
		return
	}
	var total float64
	for name := range fractions {
		total += t.Get(name).Elo
	}
	updated := make(map[string]Rating, len(fractions))
	for name, score := range fractions {
		cur := t.Get(name)
		oppElo := (total - cur.Elo) / float64(len(fractions)-1)
		opp := Rating{Elo: oppElo, RD: DefaultRD, Sigma: DefaultSigma}
		updated[name] = update(cur, opp, score)
	}
	for name, r := range updated {
		t.ratings[name] = r
		t.games[name]++
	}
}

// Standing is one row of the standings.
type Standing struct {
	Name   string
	Rating Rating
	Games  int
}

// Standings lists every rated contender, best Elo first, ties broken
// by name so output is stable.
func (t *Table) Standings() []Standing {
	out := make([]Standing, 0, len(t.ratings))
	for name, r := range t.ratings {
		out = append(out, Standing{Name: name, Rating: r, Games: t.games[name]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating.Elo != out[j].Rating.Elo {
			return out[i].Rating.Elo > out[j].Rating.Elo
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Fractions converts one game's final scores (higher is better) into
// rank fractions: the top contender scores 1.0, the last 0.0, and a
// tie shares the fraction of the positions it spans.
func Fractions(scores map[string]int) map[string]float64 {
	type row struct {
		name  string
		score int
	}
	rows := make([]row, 0, len(scores))
	for name, sc := range scores {
		rows = append(rows, row{name, sc})
	}
	if len(rows) == 1 {
		return map[string]float64{rows[0].name: 1.0}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].name < rows[j].name
	})

	frac := make(map[string]float64, len(rows))
	i := 0
	for i < len(rows) {
		j := i + 1
		for j < len(rows) && rows[j].score == rows[i].score {
			j++
		}
		// Contenders i..j-1 are tied and share the average position.
		avgPos := float64(i+j-1) / 2
		fr := 1.0 - avgPos/float64(len(rows)-1)
		for k := i; k < j; k++ {
			frac[rows[k].name] = fr
		}
		i = j
	}
	return frac
}
