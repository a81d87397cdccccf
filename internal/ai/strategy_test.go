package ai

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardroom/internal/game"
	"github.com/lox/cardroom/poker"
)

func TestForNamePicksTierBySubstring(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	assert.IsType(t, &Easy{}, ForName("Easy Bot 2", rng))
	assert.IsType(t, &Hard{}, ForName("hard-bot", rng))
	assert.IsType(t, &Normal{}, ForName("Bot 7", rng))
	assert.IsType(t, &Normal{}, ForName("", rng))
}

// Every tier must answer with an action that is legal for the offered
// action set, whatever the situation looks like.
func TestDecisionsAreAlwaysLegal(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	strategies := []Strategy{NewEasy(rng), NewNormal(rng), NewHard(rng)}

	for i := 0; i < 500; i++ {
		view := randomView(rng)
		for _, s := range strategies {
			d := SafeDecide(s, view)
			assertLegal(t, view, d)
		}
	}
}

func assertLegal(t *testing.T, view View, d Decision) {
	t.Helper()
	switch d.Action {
	case game.ActionFold:
	case game.ActionCheck:
		require.True(t, view.Actions.CanCheck, "checked when facing a bet")
	case game.ActionCall:
		require.True(t, view.Actions.CanCall, "called with nothing owed")
	case game.ActionRaise:
		require.True(t, view.Actions.CanRaise, "raised when raising is closed")
		allIn := view.Stack + view.BetThisRound
		legal := d.Amount >= view.Actions.MinRaise || d.Amount == allIn
		require.True(t, legal, "raise to %d below minimum %d and not all-in %d",
			d.Amount, view.Actions.MinRaise, allIn)
		require.LessOrEqual(t, d.Amount, allIn)
	default:
		t.Fatalf("unexpected action %q", d.Action)
	}
}

func randomView(rng *rand.Rand) View {
	deck := poker.NewDeck(rng)
	hole, _ := deck.Deal(2)

	bigBlind := 100
	stack := rng.Intn(5000)
	betThisRound := rng.Intn(bigBlind * 3)
	currentBet := betThisRound
	if rng.Float64() < 0.7 {
		currentBet += rng.Intn(bigBlind * 5)
	}

	callAmount := currentBet - betThisRound
	canCheck := callAmount == 0
	return View{
		Hole:         hole,
		Stack:        stack,
		BetThisRound: betThisRound,
		CurrentBet:   currentBet,
		BigBlind:     bigBlind,
		PotTotal:     currentBet*2 + rng.Intn(1000),
		Actions: game.PossibleActions{
			CanCheck:    canCheck,
			CanCall:     !canCheck && stack > 0,
			CallAmount:  callAmount,
			CanRaise:    stack > callAmount,
			MinRaise:    currentBet + bigBlind,
			AllInAmount: stack + betThisRound,
		},
	}
}

type panicStrategy struct{}

func (panicStrategy) Decide(View) Decision {
	panic("strategy bug")
}

func TestSafeDecideDegradesToFold(t *testing.T) {
	t.Parallel()

	d := SafeDecide(panicStrategy{}, View{})
	assert.Equal(t, game.ActionFold, d.Action)
}

func TestTiersFoldJunkUnderPressure(t *testing.T) {
	t.Parallel()

	// 7-2 offsuit facing a pot-sized shove should go away at every tier.
	view := View{
		Hole:  []poker.Card{poker.MustParseCard("7c"), poker.MustParseCard("2d")},
		Stack: 1000,
		// Facing an all-in for the whole stack.
		CurrentBet: 1000,
		BigBlind:   100,
		PotTotal:   2000,
		Actions: game.PossibleActions{
			CanCall:     true,
			CallAmount:  1000,
			MinRaise:    1100,
			AllInAmount: 1000,
		},
	}

	rng := rand.New(rand.NewSource(3))
	for _, s := range []Strategy{NewEasy(rng), NewNormal(rng), NewHard(rng)} {
		d := SafeDecide(s, view)
		assert.Equal(t, game.ActionFold, d.Action, fmt.Sprintf("%T", s))
	}
}
