package models

// Character is the secret role dealt to each player at setup. Cards
// matching PlusResource score a flat bonus each; cards matching
// MultiplierResource score double face value. The Community Leader's
// multiplier names the Neighborly Token itself, so their tokens double
// instead of any card.
type Character struct {
	Name               string `json:"name"`
	PlusResource       string `json:"plusResource"`
	MultiplierResource string `json:"multiplierResource"`
}

// TokenMultiplier reports whether this character doubles tokens rather
// than a resource card.
func (c Character) TokenMultiplier() bool {
	return c.MultiplierResource == TokenName
}
