package ai

import (
	"github.com/lox/cardroom/internal/game"
	"github.com/lox/cardroom/poker"
)

// Easy is a passive tier: it checks whenever it can, folds to real
// pressure and only raises a strong pocket once in a while.
type Easy struct {
	rng randSource
}

// NewEasy creates the easy tier
func NewEasy(rng randSource) *Easy {
	return &Easy{rng: rng}
}

// Decide implements Strategy
func (e *Easy) Decide(view View) Decision {
	if view.Actions.CanCheck {
		return Decision{Action: game.ActionCheck}
	}

	strength := holeCardStrength(view.Hole)
	stackRatio := float64(view.Actions.CallAmount) / float64(view.Stack+1)

	if stackRatio > 0.2 && strength < 0.4 {
		return Decision{Action: game.ActionFold}
	}
	if stackRatio > 0.5 && strength < 0.7 {
		return Decision{Action: game.ActionFold}
	}

	if strength > 0.7 && view.Actions.CanRaise && e.rng.Float64() < 0.2 {
		return safeRaise(view, view.Actions.MinRaise)
	}
	return safeCall(view.Actions)
}

// holeCardStrength scores two hole cards in [0,1]: pairs high, big
// cards middling, suited connectors a nudge above junk
func holeCardStrength(hole []poker.Card) float64 {
	if len(hole) < 2 {
		return 0
	}
	c1, c2 := hole[0], hole[1]
	switch {
	case c1.Value() == c2.Value():
		return 0.7 + float64(c1.Value())/50.0
	case c1.Value() >= 10 || c2.Value() >= 10:
		return 0.3 + float64(max(c1.Value(), c2.Value()))/100.0
	case c1.Suit == c2.Suit:
		return 0.4
	default:
		return 0.1
	}
}
