package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayerLimits(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("alice", 1000, false, "id-alice"))

	err := g.AddPlayer("alice", 1000, false, "id-other")
	var logicErr *GameLogicError
	require.ErrorAs(t, err, &logicErr)

	for i := 0; i < MaxSeats-1; i++ {
		require.NoError(t, g.AddPlayer(string(rune('b'+i)), 1000, true, ""))
	}
	err = g.AddPlayer("one-too-many", 1000, false, "")
	require.ErrorAs(t, err, &logicErr)
	assert.Len(t, g.Players(), MaxSeats)
}

func TestStartHandNeedsTwoPlayers(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("alice", 1000, false, ""))
	assert.False(t, g.StartHand())
	assert.Equal(t, Waiting, g.CurrentPhase())
}

func TestStartHandPostsBlindsAndDeals(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("alice", 1000, false, ""))
	require.NoError(t, g.AddPlayer("bob", 1000, false, ""))
	require.True(t, g.StartHand())

	state := g.State("")
	assert.Equal(t, "PREFLOP", state.Phase)
	assert.Equal(t, 100, state.CurrentBet)
	assert.Equal(t, 200, state.MinRaise)

	// Heads up the dealer rotates to seat 1; seat 0 posts the small
	// blind and acts first.
	alice, bob := state.Players[0], state.Players[1]
	assert.Equal(t, 950, alice.Stack)
	assert.Equal(t, 50, alice.BetThisRound)
	assert.True(t, alice.IsTurn)
	assert.Equal(t, 900, bob.Stack)
	assert.Equal(t, 100, bob.BetThisRound)
	assert.True(t, bob.IsDealer)

	assert.Equal(t, 2000, g.TotalChips())

	pots := g.PotsInfo()
	require.Len(t, pots, 1)
	assert.Equal(t, "Main Pot", pots[0].Name)
	assert.Equal(t, 150, pots[0].Amount)
}

func TestStartHandRebuysHumansAndCullsBots(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("busted-human", 0, false, "h1"))
	require.NoError(t, g.AddPlayer("busted-bot", 0, true, "b1"))
	require.NoError(t, g.AddPlayer("carol", 500, false, "h2"))

	require.True(t, g.StartHand())

	players := g.Players()
	require.Len(t, players, 2)
	names := []string{players[0].Name, players[1].Name}
	assert.Contains(t, names, "busted-human")
	assert.NotContains(t, names, "busted-bot")
	// Rebuy stack minus whatever blind the new hand collected.
	assert.GreaterOrEqual(t, stackOf(t, g, "busted-human"), DefaultRebuyAmount-100)
}

func TestStartHandRebuyDisabled(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, WithRebuy(0))
	require.NoError(t, g.AddPlayer("busted-human", 0, false, "h1"))
	require.NoError(t, g.AddPlayer("bob", 500, false, "h2"))

	assert.False(t, g.StartHand())
	assert.Len(t, g.Players(), 1)
	assert.Equal(t, Waiting, g.CurrentPhase())
}

func TestRemovePlayerMidHandFoldsAndSettles(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("alice", 1000, false, "id-a"))
	require.NoError(t, g.AddPlayer("bob", 1000, false, "id-b"))
	require.True(t, g.StartHand())

	// Alice (small blind, to act) disconnects: her seat folds, bob
	// takes the pot and the table drops back to WAITING.
	g.RemovePlayer("id-a")

	players := g.Players()
	require.Len(t, players, 1)
	assert.Equal(t, "bob", players[0].Name)
	assert.Equal(t, 1050, players[0].Stack)
	assert.Equal(t, Waiting, g.CurrentPhase())
}

func TestRemovePlayerAdjustsSeats(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("alice", 1000, false, "id-a"))
	require.NoError(t, g.AddPlayer("bob", 1000, false, "id-b"))
	require.NoError(t, g.AddPlayer("carol", 1000, false, "id-c"))
	require.True(t, g.StartHand())

	// Dealer is bob (seat 1), small blind carol, big blind alice,
	// first to act bob. Bob leaves: the hand continues heads up.
	turn, ok := g.CurrentTurn()
	require.True(t, ok)
	require.Equal(t, "bob", turn.Name)

	g.RemovePlayer("id-b")

	players := g.Players()
	require.Len(t, players, 2)

	turn, ok = g.CurrentTurn()
	require.True(t, ok)
	assert.Equal(t, "carol", turn.Name)

	// The rest of the hand still settles cleanly.
	mustAction(t, g, "carol", ActionCall, 0)
	mustAction(t, g, "alice", ActionCheck, 0)
	for g.CurrentPhase() != Showdown && g.CurrentPhase() != Waiting {
		turn, ok := g.CurrentTurn()
		require.True(t, ok)
		mustAction(t, g, turn.Name, ActionCheck, 0)
	}
	// Bob left with his untouched 1000; the other 2000 stays on the table.
	assert.Equal(t, 2000, totalStacks(g))
}

func TestStatePerspectiveHidesHoleCards(t *testing.T) {
	t.Parallel()

	g := newTestGame(t)
	require.NoError(t, g.AddPlayer("alice", 1000, false, ""))
	require.NoError(t, g.AddPlayer("bob", 1000, false, ""))
	require.True(t, g.StartHand())

	state := g.State("alice")
	assert.Len(t, state.Players[0].Hand, 2)
	assert.Empty(t, state.Players[1].Hand)

	spectator := g.State("")
	assert.Empty(t, spectator.Players[0].Hand)
	assert.Empty(t, spectator.Players[1].Hand)
}

func TestStateRevealsUnfoldedHandsAtShowdown(t *testing.T) {
	t.Parallel()

	g := newTestGame(t, stackedDeck(
		"As", "Kd", "Ah", "Kc", // hole cards
		"2c", "7d", "9h", "4s", "Jh", // board
	))
	require.NoError(t, g.AddPlayer("alice", 1000, false, ""))
	require.NoError(t, g.AddPlayer("bob", 1000, false, ""))
	require.True(t, g.StartHand())

	mustAction(t, g, "alice", ActionCall, 0)
	mustAction(t, g, "bob", ActionCheck, 0)
	for range 3 {
		mustAction(t, g, "alice", ActionCheck, 0)
		mustAction(t, g, "bob", ActionCheck, 0)
	}

	require.Equal(t, Showdown, g.CurrentPhase())
	state := g.State("")
	assert.Len(t, state.Players[0].Hand, 2)
	assert.Len(t, state.Players[1].Hand, 2)
}

func totalStacks(g *Game) int {
	total := 0
	for _, p := range g.Players() {
		total += p.Stack
	}
	return total
}
