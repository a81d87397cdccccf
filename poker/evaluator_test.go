package poker

import (
	"math/rand"
	"testing"

	chpoker "github.com/chehsunliu/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(codes ...string) []Card {
	out := make([]Card, len(codes))
	for i, code := range codes {
		out[i] = MustParseCard(code)
	}
	return out
}

func TestEvaluateFiveCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    []string
		category Category
		ranks    []int
	}{
		{"straight flush", []string{"9h", "8h", "7h", "6h", "5h"}, StraightFlush, []int{9, 8, 7, 6, 5}},
		{"royal flush is ace-high straight flush", []string{"Ah", "Kh", "Qh", "Jh", "Th"}, StraightFlush, []int{14, 13, 12, 11, 10}},
		{"four of a kind", []string{"7h", "7d", "7c", "7s", "2h"}, FourOfAKind, []int{7, 7, 7, 7, 2}},
		{"full house", []string{"Th", "Td", "Tc", "4h", "4d"}, FullHouse, []int{10, 10, 10, 4, 4}},
		{"flush", []string{"Kd", "Jd", "9d", "6d", "2d"}, Flush, []int{13, 11, 9, 6, 2}},
		{"straight", []string{"8h", "7d", "6c", "5s", "4h"}, Straight, []int{8, 7, 6, 5, 4}},
		{"wheel straight", []string{"Ah", "2d", "3c", "4s", "5h"}, Straight, []int{5, 4, 3, 2, 1}},
		{"wheel straight flush", []string{"Ac", "2c", "3c", "4c", "5c"}, StraightFlush, []int{5, 4, 3, 2, 1}},
		{"three of a kind", []string{"Qh", "Qd", "Qc", "9s", "3h"}, ThreeOfAKind, []int{12, 12, 12, 9, 3}},
		{"two pair", []string{"Jh", "Jd", "8c", "8s", "Ah"}, TwoPair, []int{11, 11, 8, 8, 14}},
		{"one pair", []string{"6h", "6d", "Ac", "Ts", "3h"}, OnePair, []int{6, 6, 14, 10, 3}},
		{"high card", []string{"Ah", "Jd", "8c", "6s", "3h"}, HighCard, []int{14, 11, 8, 6, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hv := EvaluateFive(cards(tt.cards...))
			assert.Equal(t, tt.category, hv.Category)
			assert.Equal(t, tt.ranks, hv.Ranks)
		})
	}
}

func TestCategoryPrecedence(t *testing.T) {
	t.Parallel()

	// Weakest representative of each category, ascending.
	ladder := [][]string{
		{"7h", "5d", "4c", "3s", "2h"}, // high card
		{"2h", "2d", "5c", "4s", "3h"}, // one pair
		{"3h", "3d", "2c", "2s", "4h"}, // two pair
		{"2h", "2d", "2c", "4s", "3h"}, // trips
		{"Ah", "2d", "3c", "4s", "5h"}, // wheel
		{"7h", "5h", "4h", "3h", "2h"}, // flush
		{"2h", "2d", "2c", "3s", "3h"}, // full house
		{"2h", "2d", "2c", "2s", "3h"}, // quads
		{"Ac", "2c", "3c", "4c", "5c"}, // straight flush
	}
	for i := 1; i < len(ladder); i++ {
		lo := EvaluateFive(cards(ladder[i-1]...))
		hi := EvaluateFive(cards(ladder[i]...))
		assert.True(t, lo.Less(hi), "%v should beat %v", hi, lo)
	}
}

func TestKickerTieBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		weaker []string
		better []string
	}{
		{"pair kicker", []string{"6h", "6d", "Kc", "Ts", "3h"}, []string{"6s", "6c", "Ac", "Td", "3d"}},
		{"two pair low pair", []string{"Jh", "Jd", "7c", "7s", "Ah"}, []string{"Js", "Jc", "8c", "8d", "2h"}},
		{"quads kicker", []string{"7h", "7d", "7c", "7s", "Kh"}, []string{"7h", "7d", "7c", "7s", "Ah"}},
		{"flush third card", []string{"Kd", "Jd", "8d", "6d", "2d"}, []string{"Kh", "Jh", "9h", "2h", "3h"}},
		{"wheel below six-high straight", []string{"Ah", "2d", "3c", "4s", "5h"}, []string{"6h", "5d", "4c", "3s", "2h"}},
		{"high card fifth card", []string{"Ah", "Jd", "8c", "6s", "2h"}, []string{"As", "Jc", "8d", "6h", "3h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lo := EvaluateFive(cards(tt.weaker...))
			hi := EvaluateFive(cards(tt.better...))
			assert.True(t, lo.Less(hi))
			assert.False(t, hi.Less(lo))
		})
	}
}

func TestEvaluateSevenPicksBestSubset(t *testing.T) {
	t.Parallel()

	// Board pairs the hole cards into a full house that is only visible
	// in the right 5-card subset.
	hv := Evaluate(cards("Ah", "Ad", "Kc", "Ks", "Kh", "2d", "3c"))
	require.Equal(t, FullHouse, hv.Category)
	assert.Equal(t, []int{13, 13, 13, 14, 14}, hv.Ranks)

	// Flush hidden among 7 cards.
	hv = Evaluate(cards("Qh", "Jh", "9h", "4h", "2h", "As", "Ad"))
	require.Equal(t, Flush, hv.Category)
	assert.Equal(t, []int{12, 11, 9, 4, 2}, hv.Ranks)
}

func TestEvaluateEqualHandsCompareZero(t *testing.T) {
	t.Parallel()

	a := Evaluate(cards("Ah", "Kd", "Qc", "Js", "Th", "2d", "3c"))
	b := Evaluate(cards("As", "Kh", "Qd", "Jc", "Ts", "2h", "3d"))
	assert.Equal(t, 0, a.Compare(b))
}

// Randomized agreement with a reference evaluator: for random pairs of
// 7-card hands, the relative order must match.
func TestEvaluateAgainstReferenceEvaluator(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		deck := NewDeck(rng)
		h1, err := deck.Deal(7)
		require.NoError(t, err)
		h2, err := deck.Deal(7)
		require.NoError(t, err)

		got := Evaluate(h1).Compare(Evaluate(h2))

		r1 := chpoker.Evaluate(toReference(h1))
		r2 := chpoker.Evaluate(toReference(h2))
		// Reference ranks are inverted: lower is stronger.
		want := 0
		if r1 < r2 {
			want = 1
		} else if r1 > r2 {
			want = -1
		}
		require.Equal(t, want, got, "hands %v vs %v", h1, h2)
	}
}

func toReference(hand []Card) []chpoker.Card {
	out := make([]chpoker.Card, len(hand))
	for i, c := range hand {
		out[i] = chpoker.NewCard(c.Code())
	}
	return out
}
