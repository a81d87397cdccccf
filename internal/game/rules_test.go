package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Drives whole hands with random legal actions and checks the two
// structural invariants after every single action: chips are conserved,
// and the turn only ever points at an ACTIVE seat.
func TestRandomPlayInvariants(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 10; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(seed))
			g := newTestGame(t, WithRNG(rng), WithRebuy(0))
			stacks := []int{400, 1000, 2500, 700}
			total := 0
			for i, stack := range stacks {
				require.NoError(t, g.AddPlayer(fmt.Sprintf("p%d", i), stack, true, ""))
				total += stack
			}

			for hand := 0; hand < 20; hand++ {
				if !g.StartHand() {
					break
				}
				for steps := 0; g.CurrentPhase() != Showdown && g.CurrentPhase() != Waiting; steps++ {
					require.Less(t, steps, 500, "hand did not terminate")
					require.Equal(t, total, g.TotalChips(), "chips leaked mid-hand")

					turn, ok := g.CurrentTurn()
					require.True(t, ok, "betting phase with no one to act")

					state := g.State(turn.Name)
					for _, pv := range state.Players {
						if pv.IsTurn {
							require.Equal(t, "ACTIVE", pv.Status,
								"turn on a non-active seat")
						}
					}

					action, amount := randomLegalAction(t, rng, g, turn.Name)
					require.NoError(t, g.PlayerAction(turn.Name, action, amount))
				}
				require.Equal(t, total, g.TotalChips(), "chips leaked at hand end")
			}
		})
	}
}

func randomLegalAction(t *testing.T, rng *rand.Rand, g *Game, player string) (Action, int) {
	t.Helper()
	actions, err := g.PossibleActions(player)
	require.NoError(t, err)

	roll := rng.Float64()
	switch {
	case actions.CanRaise && roll < 0.25:
		target := actions.MinRaise + rng.Intn(200)
		if target > actions.AllInAmount {
			target = actions.AllInAmount
		}
		return ActionRaise, target
	case actions.CanCheck:
		return ActionCheck, 0
	case actions.CanCall && roll < 0.85:
		return ActionCall, 0
	default:
		return ActionFold, 0
	}
}
