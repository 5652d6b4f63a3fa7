// internal/game/board.go
package game

// PathLength is the number of road spaces, indexed 0 through 14.
// Landing on the final space (or past it) carries the player into the
// Safe Zone, so no player ever rests there.
const PathLength = 15

// SafeZone is the sentinel position a player holds once they are out.
const SafeZone = PathLength

// SpaceKind classifies a road space.
type SpaceKind int

const (
	SpaceNormal SpaceKind = iota
	SpaceHazard
	SpaceShortcut
)

func (k SpaceKind) String() string {
	switch k {
	case SpaceHazard:
		return "hazard"
	case SpaceShortcut:
		return "shortcut"
	default:
		return "normal"
	}
}

// Board is the fixed evacuation route. Space effects trigger on
// landing only; passing over a space does nothing.
type Board struct {
	kinds [PathLength]SpaceKind
}

// DefaultBoard returns the standard route: hazards clustered near the
// end, two shortcut ramps.
func DefaultBoard() Board {
	var b Board
	for _, i := range []int{4, 8, 10, 12, 13} {
		b.kinds[i] = SpaceHazard
	}
	for _, i := range []int{5, 9} {
		b.kinds[i] = SpaceShortcut
	}
	return b
}

// Kind reports the kind of space at pos. Positions off the road are
// normal.
func (b Board) Kind(pos int) SpaceKind {
	if pos < 0 || pos >= PathLength {
		return SpaceNormal
	}
	return b.kinds[pos]
}

// EntersSafeZone reports whether a move landing at pos leaves the
// road.
func (b Board) EntersSafeZone(pos int) bool {
	return pos >= PathLength-1
}
