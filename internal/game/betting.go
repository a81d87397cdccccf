package game

import "fmt"

// Action is a player action verb as it appears on the wire
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
	ActionBet   Action = "bet" // accepted as a synonym for raise
)

// PossibleActions describes what the player to act may legally do.
// Consumed both by human-facing clients and by bot strategies.
type PossibleActions struct {
	CanCheck    bool `json:"can_check"`
	CanCall     bool `json:"can_call"`
	CallAmount  int  `json:"call_amount"`
	CanRaise    bool `json:"can_raise"`
	MinRaise    int  `json:"min_raise"`
	AllInAmount int  `json:"all_in_amount"`
}

// PlayerAction applies one action from the named player. Validation
// happens strictly before any mutation, so a rejected action leaves the
// table untouched.
func (g *Game) PlayerAction(playerName string, action Action, amount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	player := g.playerByName(playerName)
	if player == nil || g.turnPos < 0 || g.players[g.turnPos] != player {
		return &NotPlayerTurnError{Player: playerName}
	}

	switch action {
	case ActionFold:
		player.Status = StatusFolded
		delete(g.acted, player.Name)

	case ActionCheck:
		if player.BetThisRound < g.currentBet {
			return &InvalidActionError{Reason: "cannot check, must call or raise"}
		}
		g.acted[player.Name] = true

	case ActionCall:
		callAmount := g.currentBet - player.BetThisRound
		if callAmount <= 0 {
			return &InvalidActionError{Reason: "cannot call, can check instead"}
		}
		g.handleBet(player, callAmount)
		g.acted[player.Name] = true

	case ActionRaise, ActionBet:
		if !g.validBetSize(player, amount) {
			return &InvalidActionError{
				Reason: fmt.Sprintf("raise must be at least %d or be an all-in", g.minRaise),
			}
		}
		if amount < g.currentBet {
			return &InvalidActionError{Reason: "raise amount is less than current bet"}
		}
		g.handleBet(player, amount-player.BetThisRound)
		g.applyRaise(player)
		g.acted[player.Name] = true

	default:
		return &InvalidActionError{Reason: fmt.Sprintf("unknown action: %s", action)}
	}

	g.lastAction = &ActionInfo{PlayerName: playerName, Action: action, Amount: amount}
	g.logger.Debug("action", "room", g.roomID, "player", playerName,
		"action", action, "amount", amount, "phase", g.phase)
	g.advance()
	return nil
}

// validBetSize accepts any all-in for the player's full commitment,
// otherwise requires the raise target to meet the minimum
func (g *Game) validBetSize(player *Player, amount int) bool {
	if amount >= player.Stack+player.BetThisRound {
		return true
	}
	return amount >= g.minRaise
}

// calcMinRaise computes the next minimum raise target: at least one big
// blind on top of the current bet
func (g *Game) calcMinRaise(raiseAmount int) int {
	if g.currentBet == 0 {
		return max(g.bigBlind, raiseAmount)
	}
	return g.currentBet + max(g.bigBlind, raiseAmount-g.currentBet)
}

// handleBet moves chips from the player's stack into the current round,
// capping at the stack and flagging the player all in when it empties
func (g *Game) handleBet(player *Player, betAmount int) {
	if betAmount >= player.Stack {
		betAmount = player.Stack
		player.Status = StatusAllIn
		delete(g.acted, player.Name)
	}
	player.Stack -= betAmount
	player.BetThisRound += betAmount
	player.BetThisHand += betAmount
}

// applyRaise updates the table's bet level after a raise or bet. A full
// raise (at least one big blind over the previous bet) re-opens the
// betting: everyone else must act again and the minimum climbs. An
// undersized all-in raises the amount to call but does not re-open
// betting for players who already acted at the previous level.
func (g *Game) applyRaise(player *Player) {
	newTotal := player.BetThisRound
	if newTotal <= g.currentBet {
		return
	}
	raiseDiff := newTotal - g.currentBet
	if raiseDiff >= g.bigBlind || g.currentBet == 0 {
		g.minRaise = newTotal + max(g.bigBlind, raiseDiff)
		g.lastRaiserPos = g.turnPos
		g.acted = make(map[string]bool)
	}
	g.currentBet = newTotal
}

// advance moves the turn after an action: end the hand if only one
// player is left unfolded, end the street when betting is settled, or
// pass the turn to the next active seat.
func (g *Game) advance() {
	if g.countByStatus(StatusActive, StatusAllIn) <= 1 {
		g.finishHand()
		return
	}
	if g.bettingRoundOver() {
		g.endBettingRound()
		return
	}
	next, ok := g.nextEligibleFrom((g.turnPos + 1) % len(g.players))
	if !ok {
		g.endBettingRound()
		return
	}
	g.turnPos = next
}

// bettingRoundOver reports whether the current street is settled: no
// active player is left to act, or every active player has acted at the
// current bet level and matched it. Acting at a level is tracked per
// street and reset by a full raise, which gives the big blind its
// preflop option and makes everyone react to a re-opened bet.
func (g *Game) bettingRoundOver() bool {
	for _, p := range g.players {
		if p.Status != StatusActive {
			continue
		}
		if !g.acted[p.Name] || p.BetThisRound != g.currentBet {
			return false
		}
	}
	return true
}

// endBettingRound folds the street's bets into the pots, deals the next
// street and re-anchors the turn to the first active seat after the
// dealer. Runs recursively to the showdown when no one is left to act.
func (g *Game) endBettingRound() {
	g.pots = buildPots(g.players)

	g.currentBet = 0
	g.minRaise = g.bigBlind
	g.acted = make(map[string]bool)
	for _, p := range g.players {
		p.BetThisRound = 0
	}

	switch g.phase {
	case Preflop:
		g.phase = Flop
		for range 3 {
			g.community = append(g.community, g.mustDeal())
		}
	case Flop:
		g.phase = Turn
		g.community = append(g.community, g.mustDeal())
	case Turn:
		g.phase = River
		g.community = append(g.community, g.mustDeal())
	case River:
		g.showdown()
		return
	default:
		return
	}
	g.logger.Debug("street dealt", "room", g.roomID, "phase", g.phase, "board", g.community)

	next, ok := g.nextEligibleFrom((g.dealerPos + 1) % len(g.players))
	if !ok {
		// Everyone left is all in; keep dealing to the showdown.
		g.turnPos = -1
		g.endBettingRound()
		return
	}
	g.turnPos = next
	g.lastRaiserPos = next
}
