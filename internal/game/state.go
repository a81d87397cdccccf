package game

import "github.com/lox/cardroom/poker"

// ActionInfo is the last action taken at the table, or the showdown
// result once a hand settles. It is broadcast to clients verbatim.
type ActionInfo struct {
	PlayerName string   `json:"player_name,omitempty"`
	Action     Action   `json:"action,omitempty"`
	Amount     int      `json:"amount,omitempty"`
	Winners    []PotWin `json:"winners,omitempty"`
}

// PlayerView is one seat as seen by a particular perspective
type PlayerView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Stack        int          `json:"stack"`
	BetThisRound int          `json:"bet_this_round"`
	Hand         []poker.Card `json:"hand"`
	Status       string       `json:"status"`
	IsTurn       bool         `json:"is_turn"`
	IsDealer     bool         `json:"is_dealer"`
	IsSmallBlind bool         `json:"is_small_blind"`
	IsBigBlind   bool         `json:"is_big_blind"`
}

// StateView is a consistent snapshot of the table projected for one
// perspective: the requesting player sees their own hole cards, and
// once the hand reaches showdown everyone's unfolded cards are open.
type StateView struct {
	RoomID         string       `json:"room_id"`
	Phase          string       `json:"phase"`
	CommunityCards []poker.Card `json:"community_cards"`
	Pots           []Pot        `json:"pots"`
	Players        []PlayerView `json:"players"`
	CurrentBet     int          `json:"current_bet"`
	MinRaise       int          `json:"min_raise"`
	LastAction     *ActionInfo  `json:"last_action"`
}

// State returns a snapshot projected for the named perspective. The
// empty string gives the spectator view (no hole cards before
// showdown). Taken under the table mutex, never torn.
func (g *Game) State(perspective string) StateView {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.players)
	players := make([]PlayerView, 0, n)
	for i, p := range g.players {
		showHand := p.Name == perspective ||
			(g.phase == Showdown && p.Status != StatusFolded)

		hand := []poker.Card{}
		if showHand {
			hand = append(hand, p.Hole...)
		}
		players = append(players, PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Stack:        p.Stack,
			BetThisRound: p.BetThisRound,
			Hand:         hand,
			Status:       p.Status.String(),
			IsTurn:       g.turnPos != -1 && i == g.turnPos,
			IsDealer:     i == g.dealerPos,
			IsSmallBlind: n > 0 && i == (g.dealerPos+1)%n,
			IsBigBlind:   n > 0 && i == (g.dealerPos+2)%n,
		})
	}

	community := []poker.Card{}
	community = append(community, g.community...)

	return StateView{
		RoomID:         g.roomID,
		Phase:          g.phase.String(),
		CommunityCards: community,
		Pots:           g.potsInfo(),
		Players:        players,
		CurrentBet:     g.currentBet,
		MinRaise:       g.minRaise,
		LastAction:     g.lastAction,
	}
}

// PotsInfo returns the current pots. Before the first betting round
// closes there is no collected pot yet, so the live bets are shown as
// an implicit main pot.
func (g *Game) PotsInfo() []Pot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.potsInfo()
}

func (g *Game) potsInfo() []Pot {
	if len(g.pots) == 0 && g.phase != Showdown {
		total := 0
		for _, p := range g.players {
			total += p.BetThisHand
		}
		if total > 0 {
			var eligible []string
			for _, p := range g.players {
				if p.Status != StatusFolded {
					eligible = append(eligible, p.Name)
				}
			}
			return []Pot{{Name: "Main Pot", Amount: total, Eligible: eligible}}
		}
	}
	out := make([]Pot, len(g.pots))
	copy(out, g.pots)
	return out
}

// PossibleActions describes the legal options for the named player at
// the current bet level
func (g *Game) PossibleActions(playerName string) (PossibleActions, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.playerByName(playerName)
	if p == nil {
		return PossibleActions{}, &GameLogicError{Reason: "unknown player " + playerName}
	}
	canCheck := p.BetThisRound == g.currentBet
	callAmount := g.currentBet - p.BetThisRound
	return PossibleActions{
		CanCheck:    canCheck,
		CanCall:     !canCheck && p.Stack > 0,
		CallAmount:  callAmount,
		CanRaise:    p.Stack > callAmount,
		MinRaise:    g.minRaise,
		AllInAmount: p.Stack + p.BetThisRound,
	}, nil
}

// TotalChips sums every chip visible at the table: stacks, pending
// street bets and collected pots. Legal actions never change it while
// a hand is in flight.
func (g *Game) TotalChips() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	total := 0
	for _, p := range g.players {
		total += p.Stack + p.BetThisRound
	}
	for _, pot := range g.pots {
		total += pot.Amount
	}
	return total
}

// PlayerInfo is a public summary of one seat
type PlayerInfo struct {
	ID    string
	Name  string
	Stack int
	IsAI  bool
}

// Players returns a snapshot of the seated players in seat order
func (g *Game) Players() []PlayerInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]PlayerInfo, len(g.players))
	for i, p := range g.players {
		out[i] = PlayerInfo{ID: p.ID, Name: p.Name, Stack: p.Stack, IsAI: p.IsAI}
	}
	return out
}

// CurrentTurn returns the player to act, if any
func (g *Game) CurrentTurn() (PlayerInfo, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turnPos < 0 || g.turnPos >= len(g.players) {
		return PlayerInfo{}, false
	}
	p := g.players[g.turnPos]
	return PlayerInfo{ID: p.ID, Name: p.Name, Stack: p.Stack, IsAI: p.IsAI}, true
}
