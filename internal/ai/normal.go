package ai

import "github.com/lox/cardroom/internal/game"

// Normal weighs hole-card strength against the share of its stack a
// call would cost, raising only with a premium holding.
type Normal struct {
	rng randSource
}

// NewNormal creates the normal tier
func NewNormal(rng randSource) *Normal {
	return &Normal{rng: rng}
}

// Decide implements Strategy
func (n *Normal) Decide(view View) Decision {
	strength := n.handStrength(view)
	stackRisk := float64(view.Actions.CallAmount) / float64(view.Stack+1)

	if stackRisk > 0.3 && strength < 0.5 {
		return Decision{Action: game.ActionFold}
	}

	if strength > 0.8 {
		if view.Actions.CanRaise && stackRisk < 0.5 {
			return safeRaise(view, view.Actions.MinRaise*3/2)
		}
		return safeCall(view.Actions)
	}

	if strength > 0.4 && stackRisk < 0.4 {
		return safeCall(view.Actions)
	}
	if stackRisk < 0.1 {
		return safeCall(view.Actions)
	}
	if view.Actions.CanCheck {
		return Decision{Action: game.ActionCheck}
	}
	return Decision{Action: game.ActionFold}
}

func (n *Normal) handStrength(view View) float64 {
	if len(view.Hole) < 2 {
		return 0
	}
	c1, c2 := view.Hole[0], view.Hole[1]
	var score float64
	switch {
	case c1.Value() == c2.Value():
		score = 0.6 + float64(c1.Value())/40.0
	case c1.Suit == c2.Suit:
		score = 0.4 + float64(max(c1.Value(), c2.Value()))/50.0
	default:
		score = float64(c1.Value()+c2.Value()) / 40.0
	}
	return min(score, 1.0)
}
