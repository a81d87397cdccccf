package game

import "sort"

// Pot is one pot (main or side) with the names of the players who can
// win it. Pots are a derived view: whenever the shape of contributions
// changes they are rebuilt from scratch from each player's cumulative
// BetThisHand, never patched incrementally.
type Pot struct {
	Name     string   `json:"name,omitempty"`
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible_players"`
}

// buildPots converts cumulative per-player contributions into pots.
//
// Each all-in player's BetThisHand defines a pot "level". Walking the
// distinct levels in ascending order, every contributor (folded or not)
// donates the slice of their total between the previous level and this
// one; only non-folded players who reached the level may win it. A
// final pot collects everything above the highest all-in level. The
// pot amounts always sum to the total contributed, which keeps the
// chip conservation invariant checkable after every betting round.
func buildPots(players []*Player) []Pot {
	var levels []int
	seen := map[int]bool{}
	for _, p := range players {
		if p.Status == StatusAllIn && p.BetThisHand > 0 && !seen[p.BetThisHand] {
			levels = append(levels, p.BetThisHand)
			seen[p.BetThisHand] = true
		}
	}
	sort.Ints(levels)

	collect := func(lo, hi int) (Pot, bool) {
		pot := Pot{}
		for _, p := range players {
			ceiling := p.BetThisHand
			if hi > 0 {
				ceiling = min(ceiling, hi)
			}
			contribution := ceiling - lo
			if contribution <= 0 {
				continue
			}
			pot.Amount += contribution
			if p.Status != StatusFolded {
				pot.Eligible = append(pot.Eligible, p.Name)
			}
		}
		return pot, pot.Amount > 0
	}

	var pots []Pot
	lastLevel := 0
	for _, level := range levels {
		if pot, ok := collect(lastLevel, level); ok {
			pots = append(pots, pot)
		}
		lastLevel = level
	}
	// Remainder above the highest all-in level.
	if pot, ok := collect(lastLevel, 0); ok {
		pots = append(pots, pot)
	}
	return pots
}
