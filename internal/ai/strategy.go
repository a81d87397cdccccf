// Package ai provides the decision policies that drive automated
// players. Strategies consume the same public query surface a human
// client sees and answer with a single action, so an automated turn is
// just another call into the game's action entry point.
package ai

import (
	"strings"

	"github.com/lox/cardroom/internal/game"
	"github.com/lox/cardroom/poker"
)

// Decision is a strategy's chosen action. Amount is only meaningful
// for raises, where it is the absolute target.
type Decision struct {
	Action game.Action
	Amount int
}

// View is the read-only information a strategy may consult when
// deciding. It is assembled outside the table lock.
type View struct {
	Hole         []poker.Card
	Stack        int
	BetThisRound int
	CurrentBet   int
	BigBlind     int
	PotTotal     int
	Actions      game.PossibleActions
}

// Strategy decides one action for one turn
type Strategy interface {
	Decide(view View) Decision
}

// ForName picks a difficulty tier from a bot's name: "easy" and "hard"
// substrings select those tiers, anything else plays the normal game.
func ForName(name string, rng randSource) Strategy {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "easy"):
		return NewEasy(rng)
	case strings.Contains(lower, "hard"):
		return NewHard(rng)
	default:
		return NewNormal(rng)
	}
}

// randSource is the slice of math/rand used by strategies, kept narrow
// so tests can substitute a fixed sequence
type randSource interface {
	Float64() float64
}

// SafeDecide runs a strategy and degrades any panic to a fold, so a
// broken policy can never corrupt turn order or wedge a table.
func SafeDecide(s Strategy, view View) (d Decision) {
	defer func() {
		if recover() != nil {
			d = Decision{Action: game.ActionFold}
		}
	}()
	return s.Decide(view)
}

// safeCall prefers checking, then calling, then folding
func safeCall(actions game.PossibleActions) Decision {
	if actions.CanCheck {
		return Decision{Action: game.ActionCheck}
	}
	if actions.CanCall {
		return Decision{Action: game.ActionCall}
	}
	return Decision{Action: game.ActionFold}
}

// safeRaise clamps a raise target into the legal window: at least the
// minimum raise, at most (and exactly, when short) the all-in total.
func safeRaise(view View, target int) Decision {
	if target < view.Actions.MinRaise {
		target = view.Actions.MinRaise
	}
	allIn := view.Stack + view.BetThisRound
	if target >= allIn {
		return Decision{Action: game.ActionRaise, Amount: allIn}
	}
	return Decision{Action: game.ActionRaise, Amount: target}
}
