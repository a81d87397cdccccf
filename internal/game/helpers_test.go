package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/cardroom/poker"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// stackedDeck builds a deck option that deals the given card codes in
// order: one pass per hole card in seat order, then the board.
func stackedDeck(codes ...string) Option {
	cards := make([]poker.Card, len(codes))
	for i, code := range codes {
		cards[i] = poker.MustParseCard(code)
	}
	return WithDeckFactory(func() *poker.Deck {
		return poker.NewStackedDeck(cards...)
	})
}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return NewGame("test-room", opts...)
}

func mustAction(t *testing.T, g *Game, player string, action Action, amount int) {
	t.Helper()
	if err := g.PlayerAction(player, action, amount); err != nil {
		t.Fatalf("%s %s %d: %v", player, action, amount, err)
	}
}

func stackOf(t *testing.T, g *Game, name string) int {
	t.Helper()
	for _, p := range g.Players() {
		if p.Name == name {
			return p.Stack
		}
	}
	t.Fatalf("no player %s", name)
	return 0
}
