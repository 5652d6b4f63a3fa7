// Package cards holds the static card set: the five location decks,
// the five characters, the hazard action deck, and the combo kits.
// Constructors return fresh card instances so callers can shuffle and
// deal without sharing state.
package cards

import (
	"github.com/google/uuid"

	"github.com/morganrivers/DisasterGame/internal/models"
)

// Location is a named stop on the preparation map together with the
// resource cards stocked there.
type Location struct {
	Name  string
	Cards []models.Card
}

// Combo is a named set of resources worth a bonus at scoring when the
// whole set is in hand.
type Combo struct {
	Name     string
	Bonus    int
	Requires []string
}

type resourceDef struct {
	name   string
	value  int
	copies int
}

var locationDefs = []struct {
	name  string
	cards []resourceDef
}{
	{"Home", []resourceDef{
		{"Emergency Blanket", 1, 3},
		{"Important Documents", 2, 3},
		{"Extra Clothes", 1, 3},
	}},
	{"Grocery Store", []resourceDef{
		{"Water Bottle", 1, 3},
		{"Extra Cash", 2, 2},
		{"Canned Food", 3, 3},
	}},
	{"Pharmacy", []resourceDef{
		{"N95 Respirator", 2, 2},
		{"First Aid Kit", 1, 3},
		{"1 Month of Medication", 3, 3},
	}},
	{"Gas Station", []resourceDef{
		{"Gas Canister", 1, 3},
		{"Flashlight", 2, 2},
		{"Spare Tire", 3, 1},
	}},
	{"Electronics Store", []resourceDef{
		{"Batteries", 2, 3},
		{"Hand Crank Radio", 3, 1},
		{"Power Bank", 1, 2},
	}},
}

var characterDefs = []models.Character{
	{Name: "Elderly", PlusResource: "N95 Respirator", MultiplierResource: "First Aid Kit"},
	{Name: "Student", PlusResource: "Water Bottle", MultiplierResource: "Batteries"},
	{Name: "Parent", PlusResource: "Extra Clothes", MultiplierResource: "Extra Cash"},
	{Name: "Pet Owner", PlusResource: "Emergency Blanket", MultiplierResource: "Canned Food"},
	{Name: "Community Leader", PlusResource: "Hand Crank Radio", MultiplierResource: models.TokenName},
}

type actionDef struct {
	name    string
	blocker string
	effect  models.Effect
	amount  int
}

var actionDefs = []actionDef{
	{"Flat Tire", "Spare Tire", models.EffectSkipTurn, 0},
	{"Road Block", "Important Documents", models.EffectLimitMove, 1},
	{"Heavy Smoke", "N95 Respirator", models.EffectSkipTurn, 0},
	{"Blackout", "Flashlight", models.EffectSkipTurn, 0},
	{"Bad Directions", "Hand Crank Radio", models.EffectSkipTurn, 0},
	{"Dehydration", "Water Bottle", models.EffectLosePoints, 5},
	{"Medical Emergency", "First Aid Kit", models.EffectSkipTurn, 0},
	{"Food Spoilage", "Canned Food", models.EffectLosePoints, 5},
	{"Car Trouble", "Power Bank", models.EffectLoseCard, 0},
}

// Combos are ordered by descending bonus; a hand scores only the first
// set it completes.
var comboDefs = []Combo{
	{
		Name:  "Prepper Kit",
		Bonus: 6,
		Requires: []string{
			"Water Bottle", "First Aid Kit", "Canned Food",
			"Important Documents", "1 Month of Medication",
		},
	},
	{
		Name:     "Portable Go-Kit",
		Bonus:    3,
		Requires: []string{"Water Bottle", "First Aid Kit", "Canned Food"},
	},
}

// Locations builds the five location decks, unshuffled, with fresh
// card instances.
func Locations() []Location {
	out := make([]Location, 0, len(locationDefs))
	for _, def := range locationDefs {
		loc := Location{Name: def.name}
		for _, rd := range def.cards {
			for i := 0; i < rd.copies; i++ {
				loc.Cards = append(loc.Cards, models.Card{
					ID:     uuid.New(),
					Kind:   models.KindResource,
					Name:   rd.name,
					Value:  rd.value,
					Origin: def.name,
				})
			}
		}
		out = append(out, loc)
	}
	return out
}

// LocationNames returns the location names in stocking order.
func LocationNames() []string {
	names := make([]string, len(locationDefs))
	for i, def := range locationDefs {
		names[i] = def.name
	}
	return names
}

// Characters returns the five dealable characters.
func Characters() []models.Character {
	out := make([]models.Character, len(characterDefs))
	copy(out, characterDefs)
	return out
}

// Actions builds the hazard deck, unshuffled, one fresh instance per
// hazard.
func Actions() []models.Card {
	out := make([]models.Card, 0, len(actionDefs))
	for _, def := range actionDefs {
		out = append(out, models.Card{
			ID:      uuid.New(),
			Kind:    models.KindAction,
			Name:    def.name,
			Effect:  def.effect,
			Blocker: def.blocker,
			Amount:  def.amount,
		})
	}
	return out
}

// ActionByName returns a fresh instance of the named hazard.
func ActionByName(name string) (models.Card, bool) {
	for _, def := range actionDefs {
		if def.name == name {
			return models.Card{
				ID:      uuid.New(),
				Kind:    models.KindAction,
				Name:    def.name,
				Effect:  def.effect,
				Blocker: def.blocker,
				Amount:  def.amount,
			}, true
		}
	}
	return models.Card{}, false
}

// Combos returns the scoring kits, best bonus first.
func Combos() []Combo {
	out := make([]Combo, len(comboDefs))
	copy(out, comboDefs)
	for i := range out {
		req := make([]string, len(comboDefs[i].Requires))
		copy(req, comboDefs[i].Requires)
		out[i].Requires = req
	}
	return out
}
