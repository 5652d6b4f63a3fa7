package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resource(name string, value int) Card {
	return Card{ID: uuid.New(), Kind: KindResource, Name: name, Value: value}
}

func TestPlayerHandOps(t *testing.T) {
	p := &Player{Name: "ana"}
	p.AddCard(resource("Water Bottle", 1))
	p.AddCard(resource("Canned Food", 3))
	p.AddCard(resource("Water Bottle", 1))

	assert.True(t, p.HasResource("Water Bottle"))
	assert.Equal(t, 2, p.CountResource("Water Bottle"))
	assert.Equal(t, []int{0, 2}, p.IndicesOf("Water Bottle"))
	assert.False(t, p.HasResource("Flashlight"))

	c, err := p.RemoveCard(1)
	require.NoError(t, err)
	assert.Equal(t, "Canned Food", c.Name)
	assert.Len(t, p.Hand, 2)

	_, err = p.RemoveCard(5)
	assert.Error(t, err)
	_, err = p.RemoveCard(-1)
	assert.Error(t, err)
}

func TestPlayerIndicesIgnoreActionCards(t *testing.T) {
	p := &Player{}
	p.AddCard(Card{ID: uuid.New(), Kind: KindAction, Name: "Flat Tire", Effect: EffectSkipTurn, Blocker: "Spare Tire"})
	p.AddCard(resource("Spare Tire", 3))

	assert.Equal(t, []int{1}, p.IndicesOf("Spare Tire"))
	assert.False(t, p.HasResource("Flat Tire"))
}

func TestSpendTokenFloorsAtZero(t *testing.T) {
	p := &Player{}
	assert.False(t, p.SpendToken())
	assert.Equal(t, 0, p.Tokens)

	p.AddToken()
	p.AddToken()
	assert.True(t, p.SpendToken())
	assert.Equal(t, 1, p.Tokens)
	assert.True(t, p.SpendToken())
	assert.False(t, p.SpendToken())
	assert.Equal(t, 0, p.Tokens)
}

func TestAdvanceIsForwardOnly(t *testing.T) {
	p := &Player{Position: 4}
	p.Advance(3)
	assert.Equal(t, 7, p.Position)
	p.Advance(0)
	p.Advance(-2)
	assert.Equal(t, 7, p.Position)
}

func TestSnapshotIsolatesHand(t *testing.T) {
	p := &Player{Name: "bo"}
	p.AddCard(resource("Batteries", 2))

	snap := p.Snapshot()
	snap.Hand[0].Name = "mutated"
	snap.Hand = append(snap.Hand, resource("Extra Cash", 2))
	snap.Tokens = 99

	assert.Equal(t, "Batteries", p.Hand[0].Name)
	assert.Len(t, p.Hand, 1)
	assert.Equal(t, 0, p.Tokens)
}

func TestCharacterTokenMultiplier(t *testing.T) {
	leader := Character{Name: "Community Leader", PlusResource: "Hand Crank Radio", MultiplierResource: TokenName}
	student := Character{Name: "Student", PlusResource: "Water Bottle", MultiplierResource: "Batteries"}

	assert.True(t, leader.TokenMultiplier())
	assert.False(t, student.TokenMultiplier())
}
