package ai

import "github.com/lox/cardroom/internal/game"

// Hard plays pot odds: it compares hand potential against the price of
// a call, bets strong hands for value while the pot is cheap to attack,
// and mixes in the occasional opening bluff.
type Hard struct {
	rng randSource
}

// NewHard creates the hard tier
func NewHard(rng randSource) *Hard {
	return &Hard{rng: rng}
}

// Decide implements Strategy
func (h *Hard) Decide(view View) Decision {
	potential := h.handPotential(view)
	callAmount := view.Actions.CallAmount
	potOdds := float64(callAmount) / float64(view.PotTotal+callAmount+1)

	if callAmount > view.Stack*2/5 && potential < 0.85 {
		return Decision{Action: game.ActionFold}
	}

	if potential > 0.7 {
		if view.Actions.CanRaise && view.CurrentBet <= view.BigBlind*2 {
			target := view.PotTotal*7/10 + view.CurrentBet
			return safeRaise(view, target)
		}
		return safeCall(view.Actions)
	}

	if potential > potOdds {
		if view.Actions.CanRaise && view.CurrentBet == 0 && h.rng.Float64() < 0.2 {
			return safeRaise(view, view.Actions.MinRaise)
		}
		return safeCall(view.Actions)
	}

	if view.Actions.CanCheck {
		return Decision{Action: game.ActionCheck}
	}
	return Decision{Action: game.ActionFold}
}

func (h *Hard) handPotential(view View) float64 {
	if len(view.Hole) < 2 {
		return 0
	}
	c1, c2 := view.Hole[0], view.Hole[1]
	var score float64
	switch {
	case c1.Value() == c2.Value():
		score = 0.6 + float64(c1.Value())/40.0
	case c1.Suit == c2.Suit && abs(c1.Value()-c2.Value()) == 1:
		score = 0.5 + float64(max(c1.Value(), c2.Value()))/100.0
	case c1.Value() >= 10 && c2.Value() >= 10:
		score = 0.5 + float64(c1.Value()+c2.Value())/100.0
	default:
		score = float64(c1.Value()+c2.Value()) / 50.0
	}
	return min(score, 1.0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
