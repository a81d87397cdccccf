package poker

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned when dealing from a depleted deck. With at
// most 9 seats (18 hole cards) plus 5 board cards this never happens in
// normal play, so callers treat it as a fatal consistency failure.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is a mutable bag of undealt cards. It is shuffled once at
// creation and never reshuffled mid-hand; a fresh deck is built for
// every hand.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52), rng: rng}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.Shuffle()
	return d
}

// NewStackedDeck creates an unshuffled deck that deals the given cards
// in order. Used to replay fixed deals.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle shuffles the deck using Fisher-Yates and restores all 52
// cards to the undealt pool
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.Intn(i + 1)
		} else {
			j = rand.Intn(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns n cards from the deck
func (d *Deck) Deal(n int) ([]Card, error) {
	if d.next+n > len(d.cards) {
		return nil, ErrEmptyDeck
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne removes and returns a single card from the deck
func (d *Deck) DealOne() (Card, error) {
	if d.next >= len(d.cards) {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
