// internal/game/errors.go
package game

import "errors"

var (
	// ErrTooFewPlayers and ErrTooManyPlayers bound the table size.
	ErrTooFewPlayers  = errors.New("need at least 2 players")
	ErrTooManyPlayers = errors.New("need at most 5 players")

	// ErrNoDecider means Run was called before a Decider was installed.
	ErrNoDecider = errors.New("no decider installed")

	// ErrIllegalPhase marks an operation called outside its phase.
	ErrIllegalPhase = errors.New("illegal phase transition")

	// ErrInvalidChoice marks a decider answer that repeatedly failed
	// validation.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidTrade marks a trade offer that names missing players
	// or cards.
	ErrInvalidTrade = errors.New("invalid trade")

	// ErrStalled means the disaster phase exceeded its round cap
	// without every player reaching the Safe Zone.
	ErrStalled = errors.New("disaster phase stalled")
)
