package game

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/cardroom/poker"
)

// MaxSeats is the most players one table can hold
const MaxSeats = 9

// DefaultSmallBlind and DefaultBigBlind are the stakes used when a
// table is created without explicit blinds
const (
	DefaultSmallBlind = 50
	DefaultBigBlind   = 100
)

// DefaultRebuyAmount is the stack a busted human is refilled to before
// the next hand
const DefaultRebuyAmount = 10000

// Phase is the hand lifecycle state
type Phase int

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

// String returns the wire representation of a phase
func (p Phase) String() string {
	switch p {
	case Waiting:
		return "WAITING"
	case Preflop:
		return "PREFLOP"
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	case Showdown:
		return "SHOWDOWN"
	default:
		return "UNKNOWN"
	}
}

// Game is the authoritative state machine for one table. All exported
// methods serialize on the table mutex, so a Game may be shared freely
// between the transport goroutines driving it; tables are independent
// and run in parallel. State is volatile: a process restart loses
// in-flight hands.
type Game struct {
	mu sync.Mutex

	roomID    string
	players   []*Player // seat order defines turn and dealer rotation
	deck      *poker.Deck
	community []poker.Card
	pots      []Pot
	phase     Phase

	smallBlind  int
	bigBlind    int
	rebuyAmount int

	dealerPos     int
	turnPos       int // -1 when no one is to act
	lastRaiserPos int
	currentBet    int
	minRaise      int
	acted         map[string]bool // active players who have acted this street

	lastAction *ActionInfo

	rng     *rand.Rand
	newDeck func() *poker.Deck
	logger  *log.Logger
}

// Option configures a Game
type Option func(*Game)

// WithBlinds sets the small and big blind
func WithBlinds(smallBlind, bigBlind int) Option {
	return func(g *Game) {
		g.smallBlind = smallBlind
		g.bigBlind = bigBlind
	}
}

// WithRebuy sets the refill stack for busted humans. Zero disables
// rebuys, making humans bust out like bots.
func WithRebuy(amount int) Option {
	return func(g *Game) { g.rebuyAmount = amount }
}

// WithRNG sets the random source used to shuffle each hand's deck
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithDeckFactory overrides how each hand's deck is built. Tests use it
// to deal known cards.
func WithDeckFactory(f func() *poker.Deck) Option {
	return func(g *Game) { g.newDeck = f }
}

// NewGame creates a table for the given room
func NewGame(roomID string, opts ...Option) *Game {
	g := &Game{
		roomID:      roomID,
		phase:         Waiting,
		smallBlind:    DefaultSmallBlind,
		bigBlind:      DefaultBigBlind,
		rebuyAmount:   DefaultRebuyAmount,
		turnPos:       -1,
		lastRaiserPos: -1,
		acted:         make(map[string]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.Default().WithPrefix("game")
	}
	g.minRaise = g.bigBlind
	return g
}

// RoomID returns the room identifier this table belongs to
func (g *Game) RoomID() string {
	return g.roomID
}

// BigBlind returns the big blind amount
func (g *Game) BigBlind() int {
	return g.bigBlind
}

// CurrentPhase returns the current phase
func (g *Game) CurrentPhase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// AddPlayer seats a new player. The name must be unique at the table
// and the table must have a free seat.
func (g *Game) AddPlayer(name string, stack int, isAI bool, playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) >= MaxSeats {
		return &GameLogicError{Reason: "table is full"}
	}
	for _, p := range g.players {
		if p.Name == name {
			return &GameLogicError{Reason: fmt.Sprintf("player %s already in game", name)}
		}
	}

	g.players = append(g.players, &Player{
		ID:     playerID,
		Name:   name,
		Stack:  stack,
		Status: StatusActive,
		IsAI:   isAI,
	})
	if len(g.players) == 1 {
		g.dealerPos = 0
	}
	g.logger.Info("player seated", "room", g.roomID, "player", name, "stack", stack, "ai", isAI)
	return nil
}

// RemovePlayer unseats a player by id. If the player is mid-hand their
// seat folds first so the hand can finish cleanly; if fewer than two
// players remain mid-hand the table resets to WAITING.
func (g *Game) RemovePlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := -1
	for i, p := range g.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	p := g.players[idx]

	if g.phase != Waiting && g.phase != Showdown && p.Status == StatusActive {
		p.Status = StatusFolded
		if g.turnPos == idx {
			delete(g.acted, p.Name)
			g.advance()
		}
	}

	g.players = append(g.players[:idx], g.players[idx+1:]...)
	if g.dealerPos > idx {
		g.dealerPos--
	}
	if g.turnPos > idx {
		g.turnPos--
	}
	if g.lastRaiserPos > idx {
		g.lastRaiserPos--
	}
	g.logger.Info("player left", "room", g.roomID, "player", p.Name)

	if len(g.players) < 2 && g.phase != Waiting {
		g.resetLocked()
	}
}

// Reset abandons any hand in progress and returns the table to WAITING
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *Game) resetLocked() {
	for _, p := range g.players {
		p.resetForNewHand()
	}
	g.deck = nil
	g.community = nil
	g.pots = nil
	g.phase = Waiting
	g.dealerPos = 0
	g.turnPos = -1
	g.lastRaiserPos = -1
	g.currentBet = 0
	g.minRaise = g.bigBlind
	g.acted = make(map[string]bool)
	g.lastAction = nil
}

// StartHand deals a new hand. Busted humans are refilled first, busted
// bots are culled from their seats. Returns false (leaving the table in
// WAITING) when fewer than two players can be dealt in.
func (g *Game) StartHand() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.players {
		if !p.IsAI && p.Stack <= 0 && g.rebuyAmount > 0 {
			p.Stack = g.rebuyAmount
			p.Status = StatusActive
			g.logger.Info("rebuy", "room", g.roomID, "player", p.Name, "stack", p.Stack)
		}
	}

	surviving := g.players[:0]
	for _, p := range g.players {
		if p.Stack > 0 {
			surviving = append(surviving, p)
		} else {
			g.logger.Info("busted out", "room", g.roomID, "player", p.Name)
		}
	}
	g.players = surviving

	if len(g.players) < 2 {
		g.phase = Waiting
		return false
	}

	if g.newDeck != nil {
		g.deck = g.newDeck()
	} else {
		g.deck = poker.NewDeck(g.rng)
	}
	g.community = nil
	g.pots = nil
	g.lastAction = nil
	g.acted = make(map[string]bool)

	for _, p := range g.players {
		p.resetForNewHand()
	}

	g.dealerPos = (g.dealerPos + 1) % len(g.players)

	sbPos := (g.dealerPos + 1) % len(g.players)
	bbPos := (g.dealerPos + 2) % len(g.players)
	g.postBlind(sbPos, g.smallBlind)
	g.postBlind(bbPos, g.bigBlind)

	g.currentBet = g.bigBlind
	g.minRaise = g.calcMinRaise(g.bigBlind)

	// Two passes in seat order, as dealt at a live table.
	for range 2 {
		for _, p := range g.players {
			if p.Status == StatusOut {
				continue
			}
			p.Hole = append(p.Hole, g.mustDeal())
		}
	}

	g.phase = Preflop
	g.lastRaiserPos = bbPos
	g.logger.Info("hand started", "room", g.roomID, "players", len(g.players),
		"dealer", g.players[g.dealerPos].Name)

	if next, ok := g.nextEligibleFrom((bbPos + 1) % len(g.players)); ok {
		g.turnPos = next
	} else {
		// Everyone is already all in from the blinds; run the board out.
		g.turnPos = -1
		g.endBettingRound()
	}
	return true
}

func (g *Game) postBlind(pos, amount int) {
	p := g.players[pos]
	blind := min(p.Stack, amount)
	p.Stack -= blind
	p.BetThisRound = blind
	p.BetThisHand = blind
	if p.Stack == 0 {
		p.Status = StatusAllIn
	}
}

func (g *Game) mustDeal() poker.Card {
	card, err := g.deck.DealOne()
	if err != nil {
		panic(fmt.Sprintf("game %s: %v", g.roomID, err))
	}
	return card
}

// nextEligibleFrom returns the first seat at or after start (circular)
// holding an ACTIVE player, or false if there is none.
func (g *Game) nextEligibleFrom(start int) (int, bool) {
	n := len(g.players)
	for i := range n {
		pos := (start + i) % n
		if g.players[pos].Status == StatusActive {
			return pos, true
		}
	}
	return 0, false
}

func (g *Game) playerByName(name string) *Player {
	for _, p := range g.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

func (g *Game) countByStatus(statuses ...Status) int {
	count := 0
	for _, p := range g.players {
		for _, s := range statuses {
			if p.Status == s {
				count++
				break
			}
		}
	}
	return count
}
