package rating

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordMovesWinnerUpLoserDown(t *testing.T) {
	tbl := NewTable()
	tbl.Record(map[string]float64{"go-kit": 1.0, "random": 0.0})

	require.Greater(t, tbl.Get("go-kit").Elo, DefaultElo)
	require.Less(t, tbl.Get("random").Elo, DefaultElo)
	require.Equal(t, 1, tbl.Games("go-kit"))
	require.Equal(t, 1, tbl.Games("random"))
}

func TestRecordAccumulatesAcrossGames(t *testing.T) {
	tbl := NewTable()

	lastElo := DefaultElo
	lastRD := DefaultRD
	for i := 0; i < 3; i++ {
		tbl.Record(map[string]float64{"prepper": 1.0, "random": 0.0})
		r := tbl.Get("prepper")
		require.Greater(t, r.Elo, lastElo)
		require.Less(t, r.RD, lastRD)
		lastElo = r.Elo
		lastRD = r.RD
	}
	require.Equal(t, 3, tbl.Games("prepper"))
}

func TestRecordIgnoresALoneContender(t *testing.T) {
	tbl := NewTable()
	tbl.Record(map[string]float64{"tokens": 1.0})

	require.Zero(t, tbl.Games("tokens"))
	require.Equal(t, NewRating(), tbl.Get("tokens"))
	require.Empty(t, tbl.Standings())
}

func TestStandingsSortBestFirst(t *testing.T) {
	tbl := NewTable()
	tbl.Record(map[string]float64{"plus": 1.0, "mult": 0.5, "tokens": 0.0})

	st := tbl.Standings()
	require.Len(t, st, 3)
	require.Equal(t, "plus", st[0].Name)
	require.Equal(t, "mult", st[1].Name)
	require.Equal(t, "tokens", st[2].Name)
	require.Equal(t, 1, st[0].Games)
}

func TestFractionsRankAndShareTies(t *testing.T) {
	frac := Fractions(map[string]int{"a": 10, "b": 7, "c": 7, "d": 2})

	require.InDelta(t, 1.0, frac["a"], 1e-9)
	require.InDelta(t, 0.5, frac["b"], 1e-9)
	require.InDelta(t, 0.5, frac["c"], 1e-9)
	require.InDelta(t, 0.0, frac["d"], 1e-9)
}

func TestFractionsEdges(t *testing.T) {
	pair := Fractions(map[string]int{"a": 5, "b": 5})
	require.InDelta(t, 0.5, pair["a"], 1e-9)
	require.InDelta(t, 0.5, pair["b"], 1e-9)

	solo := Fractions(map[string]int{"a": 1})
	require.InDelta(t, 1.0, solo["a"], 1e-9)
}
