package poker

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Name returns the long suit name used on the wire
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	default:
		return "unknown"
	}
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankStrings = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

// String returns the string representation of a rank
func (r Rank) String() string {
	if s, ok := rankStrings[r]; ok {
		return s
	}
	return "?"
}

// Card represents a playing card. Immutable value type.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// ParseCard parses a two-character card like "Ah" or "Ts".
// The first character is the rank, the second the suit (s/h/d/c).
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	var rank Rank
	found := false
	for r, str := range rankStrings {
		if str == string(s[0]) {
			rank = r
			found = true
			break
		}
	}
	if !found {
		return Card{}, fmt.Errorf("invalid rank %q", s[0])
	}
	var suit Suit
	switch s[1] {
	case 's':
		suit = Spades
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit %q", s[1])
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// MustParseCard is ParseCard that panics on invalid input. For tests and
// fixed fixtures only.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the display representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the compact two-character form (e.g., "As")
func (c Card) Code() string {
	var suit string
	switch c.Suit {
	case Spades:
		suit = "s"
	case Hearts:
		suit = "h"
	case Diamonds:
		suit = "d"
	case Clubs:
		suit = "c"
	}
	return c.Rank.String() + suit
}

// Value returns the numeric rank value for comparison, aces high (2..14)
func (c Card) Value() int {
	return int(c.Rank)
}

// MarshalJSON encodes the card as its compact code
func (c Card) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.Code() + `"`), nil
}

// UnmarshalJSON decodes a card from its compact code
func (c *Card) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid card json %s", data)
	}
	parsed, err := ParseCard(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
