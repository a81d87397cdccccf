package game

import (
	"fmt"
	"sort"

	"github.com/lox/cardroom/poker"
)

// PotWin records one winner's share of one pot for client reporting
type PotWin struct {
	Player  string `json:"player"`
	PotName string `json:"pot_name"`
	Amount  int    `json:"amount"`
	Hand    string `json:"hand,omitempty"`
}

// finishHand settles immediately when all but one player has folded.
// The survivor takes every pot without showing cards.
func (g *Game) finishHand() {
	g.pots = buildPots(g.players)
	for _, p := range g.players {
		p.BetThisRound = 0
	}
	g.showdown()
}

// showdown settles every pot independently. A pot with a single
// eligible player is awarded outright (supporting mucking); otherwise
// all eligible hands are evaluated against the board and the pot splits
// among the tied maximum. When a split does not divide evenly, the odd
// chips go to the first tied winner after the dealer in seat order.
func (g *Game) showdown() {
	g.phase = Showdown
	g.turnPos = -1

	// A pot nobody can win (its only contributors folded out from
	// under it) is merged into the nearest pot that has a winner.
	pots := mergeOrphanPots(g.pots)

	var results []PotWin
	for i, pot := range pots {
		var eligible []*Player
		for _, name := range pot.Eligible {
			if p := g.playerByName(name); p != nil && p.Status != StatusFolded {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		var winners []*Player
		if len(eligible) == 1 {
			winners = eligible
		} else {
			var best poker.HandValue
			for _, p := range eligible {
				hv := poker.Evaluate(append(append([]poker.Card{}, p.Hole...), g.community...))
				p.FinalHandName = hv.Category.String()
				switch {
				case len(winners) == 0 || best.Less(hv):
					best = hv
					winners = []*Player{p}
				case hv.Compare(best) == 0:
					winners = append(winners, p)
				}
			}
		}

		g.sortBySeatAfterDealer(winners)
		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		potName := potLabel(i)
		for j, w := range winners {
			amount := share
			if j == 0 {
				amount += remainder
			}
			w.Stack += amount
			results = append(results, PotWin{
				Player:  w.Name,
				PotName: potName,
				Amount:  amount,
				Hand:    w.FinalHandName,
			})
		}
	}

	g.pots = nil
	g.lastAction = &ActionInfo{Winners: results}
	g.logger.Info("showdown", "room", g.roomID, "winners", len(results))
}

// sortBySeatAfterDealer orders players by seat distance from the seat
// after the dealer, so odd chips land on the earliest seat by
// convention
func (g *Game) sortBySeatAfterDealer(players []*Player) {
	n := len(g.players)
	seat := func(p *Player) int {
		for i, q := range g.players {
			if q == p {
				return ((i - g.dealerPos - 1) + 2*n) % n
			}
		}
		return n
	}
	sort.Slice(players, func(i, j int) bool {
		return seat(players[i]) < seat(players[j])
	})
}

func potLabel(i int) string {
	return fmt.Sprintf("Pot %d", i+1)
}

// mergeOrphanPots folds any pot without eligible winners into its
// predecessor (or successor for the first pot)
func mergeOrphanPots(pots []Pot) []Pot {
	var out []Pot
	carry := 0
	for _, pot := range pots {
		if len(pot.Eligible) == 0 {
			if len(out) > 0 {
				out[len(out)-1].Amount += pot.Amount
			} else {
				carry += pot.Amount
			}
			continue
		}
		pot.Amount += carry
		carry = 0
		out = append(out, pot)
	}
	if carry > 0 && len(out) > 0 {
		out[len(out)-1].Amount += carry
	}
	return out
}
