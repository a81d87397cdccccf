package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDealsAllUniqueCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(rand.New(rand.NewSource(1)))
	seen := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		c, err := d.DealOne()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, 0, d.CardsRemaining())

	_, err := d.DealOne()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestDeckDealN(t *testing.T) {
	t.Parallel()

	d := NewDeck(rand.New(rand.NewSource(2)))
	hand, err := d.Deal(5)
	require.NoError(t, err)
	assert.Len(t, hand, 5)
	assert.Equal(t, 47, d.CardsRemaining())

	_, err = d.Deal(48)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, 47, d.CardsRemaining())
}

func TestDeckShuffleIsDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	d1 := NewDeck(rand.New(rand.NewSource(7)))
	d2 := NewDeck(rand.New(rand.NewSource(7)))
	for i := 0; i < 52; i++ {
		c1, err := d1.DealOne()
		require.NoError(t, err)
		c2, err := d2.DealOne()
		require.NoError(t, err)
		assert.Equal(t, c1, c2)
	}
}

func TestDeckShuffleChangesOrder(t *testing.T) {
	t.Parallel()

	d := NewDeck(rand.New(rand.NewSource(3)))
	first, err := d.Deal(10)
	require.NoError(t, err)

	d.Shuffle()
	assert.Equal(t, 52, d.CardsRemaining())
	second, err := d.Deal(10)
	require.NoError(t, err)

	same := true
	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}
	assert.False(t, same, "reshuffle left the first ten cards unchanged")
}
