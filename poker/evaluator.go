package poker

import (
	"fmt"
	"sort"
)

// Category is the class of a 5-card poker hand
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of a hand category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandValue is the evaluated strength of a hand. Category orders
// between classes; Ranks is the tie-break key within a class, most
// significant first, compared lexicographically. Within a category the
// key always has the same length, so lexicographic comparison totally
// orders all hands.
type HandValue struct {
	Category Category
	Ranks    []int
}

// Compare returns -1, 0 or 1 as h is weaker than, equal to, or
// stronger than other
func (h HandValue) Compare(other HandValue) int {
	if h.Category != other.Category {
		if h.Category < other.Category {
			return -1
		}
		return 1
	}
	for i := range h.Ranks {
		if i >= len(other.Ranks) {
			break
		}
		if h.Ranks[i] != other.Ranks[i] {
			if h.Ranks[i] < other.Ranks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether h is strictly weaker than other
func (h HandValue) Less(other HandValue) bool {
	return h.Compare(other) < 0
}

// String returns a short description like "Full House [T T T 4 4]"
func (h HandValue) String() string {
	return fmt.Sprintf("%s %v", h.Category, h.Ranks)
}

// EvaluateFive classifies exactly five cards
func EvaluateFive(cards []Card) HandValue {
	if len(cards) != 5 {
		panic(fmt.Sprintf("evaluate: want 5 cards, got %d", len(cards)))
	}

	values := make([]int, 5)
	flush := true
	for i, c := range cards {
		values[i] = c.Value()
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straight, straightRanks := straightKey(values)

	switch {
	case flush && straight:
		return HandValue{Category: StraightFlush, Ranks: straightRanks}
	case flush:
		return HandValue{Category: Flush, Ranks: values}
	case straight:
		return HandValue{Category: Straight, Ranks: straightRanks}
	}

	// Group by rank multiplicity: (count, rank) descending, kickers
	// appended high to low.
	counts := map[int]int{}
	for _, v := range values {
		counts[v]++
	}
	type group struct{ count, value int }
	groups := make([]group, 0, 5)
	for v, n := range counts {
		groups = append(groups, group{n, v})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	ranks := make([]int, 0, 5)
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			ranks = append(ranks, g.value)
		}
	}

	var category Category
	switch {
	case groups[0].count == 4:
		category = FourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		category = FullHouse
	case groups[0].count == 3:
		category = ThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		category = TwoPair
	case groups[0].count == 2:
		category = OnePair
	default:
		category = HighCard
	}
	return HandValue{Category: category, Ranks: ranks}
}

// straightKey reports whether the descending values form a straight and
// returns the comparison key. The wheel (A-2-3-4-5) counts the ace as 1
// for comparison, so its key is [5 4 3 2 1].
func straightKey(desc []int) (bool, []int) {
	run := true
	for i := 1; i < len(desc); i++ {
		if desc[i] != desc[i-1]-1 {
			run = false
			break
		}
	}
	if run {
		key := make([]int, len(desc))
		copy(key, desc)
		return true, key
	}
	wheel := []int{14, 5, 4, 3, 2}
	if len(desc) == 5 {
		match := true
		for i := range wheel {
			if desc[i] != wheel[i] {
				match = false
				break
			}
		}
		if match {
			return true, []int{5, 4, 3, 2, 1}
		}
	}
	return false, nil
}

// Evaluate finds the best 5-card hand from 5 to 7 cards by enumerating
// every 5-card subset and taking the maximum strength
func Evaluate(cards []Card) HandValue {
	if len(cards) < 5 || len(cards) > 7 {
		panic(fmt.Sprintf("evaluate: want 5-7 cards, got %d", len(cards)))
	}
	if len(cards) == 5 {
		return EvaluateFive(cards)
	}

	var best HandValue
	first := true
	combo := make([]Card, 5)
	n := len(cards)
	// Fixed-depth index loops, C(7,5)=21 subsets at most.
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						hv := EvaluateFive(combo)
						if first || best.Less(hv) {
							best = hv
							first = false
						}
					}
				}
			}
		}
	}
	return best
}
