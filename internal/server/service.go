package server

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cardroom/internal/accounts"
	"github.com/lox/cardroom/internal/ai"
	"github.com/lox/cardroom/internal/game"
	"github.com/lox/cardroom/internal/ident"
)

// Broadcaster delivers messages to connected clients. The server
// implements it; tests substitute a recorder.
type Broadcaster interface {
	// BroadcastRoom sends each player connected to the room a message
	// built for their perspective.
	BroadcastRoom(roomID string, build func(username string) (*Message, error))

	// SendToPlayer sends a message to one connected player
	SendToPlayer(username string, msg *Message) error
}

// Service owns the room registry. Rooms are created on first join and
// torn down when the last human leaves. Each room runs a driver
// goroutine that plays the automated seats and deals the next hand
// after a showdown.
type Service struct {
	mu          sync.Mutex
	rooms       map[string]*room
	config      *Config
	store       *accounts.Store
	broadcaster Broadcaster
	logger      *log.Logger
	clock       quartz.Clock
	rng         *rand.Rand
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// room is one table plus its automated players. humans maps a username
// to its account id for balance writes.
type room struct {
	id     string
	game   *game.Game
	bots   map[string]ai.Strategy
	humans map[string]string
	poke   chan struct{}
	done   chan struct{}
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithClock substitutes the clock used for bot pacing
func WithClock(clock quartz.Clock) ServiceOption {
	return func(s *Service) { s.clock = clock }
}

// WithServiceRNG seeds bot strategies and deck shuffles deterministically
func WithServiceRNG(rng *rand.Rand) ServiceOption {
	return func(s *Service) { s.rng = rng }
}

// NewService creates the room service. The store may be nil, in which
// case balances are not persisted.
func NewService(config *Config, store *accounts.Store, logger *log.Logger, opts ...ServiceOption) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		rooms:  make(map[string]*room),
		config: config,
		store:  store,
		logger: logger.WithPrefix("service"),
		clock:  quartz.NewReal(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetBroadcaster wires in the transport once the server exists
func (s *Service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Stop cancels every room driver and waits for them to finish
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Join seats a player in a room, creating the room on first use. The
// player's stack comes from their persisted account balance.
func (s *Service) Join(roomID, username string) (JoinedData, error) {
	if username == "" {
		return JoinedData{}, fmt.Errorf("username required")
	}
	if roomID == "" {
		roomID = "main"
	}

	account := accounts.Account{ID: username, Chips: s.config.Game.StartingChips}
	if s.store != nil {
		var err error
		account, err = s.store.GetOrCreate(username, s.config.Game.StartingChips)
		if err != nil {
			return JoinedData{}, err
		}
	}

	s.mu.Lock()
	r, ok := s.rooms[roomID]
	if !ok {
		var err error
		r, err = s.newRoom(roomID)
		if err != nil {
			s.mu.Unlock()
			return JoinedData{}, err
		}
		s.rooms[roomID] = r
	}
	s.mu.Unlock()

	if err := r.game.AddPlayer(username, account.Chips, false, account.ID); err != nil {
		return JoinedData{}, err
	}

	s.mu.Lock()
	r.humans[username] = account.ID
	s.mu.Unlock()

	s.logger.Info("Player joined", "room", roomID, "player", username, "stack", account.Chips)

	s.maybeStartHand(r)
	s.broadcastState(r)
	s.pokeRoom(r)

	return JoinedData{
		RoomID:   roomID,
		PlayerID: account.ID,
		Username: username,
		Stack:    account.Chips,
	}, nil
}

// Leave removes a player from their room, persisting their balance.
// The room is torn down once no humans remain.
func (s *Service) Leave(roomID, username string) error {
	r := s.room(roomID)
	if r == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}

	s.mu.Lock()
	accountID, ok := r.humans[username]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("player %s not in room %s", username, roomID)
	}

	s.syncBalance(r, username)
	r.game.RemovePlayer(accountID)

	// Re-check presence under the lock: an explicit leave and the
	// disconnect cleanup can race here, and only the caller that
	// claims the entry may tear the room down.
	s.mu.Lock()
	_, present := r.humans[username]
	delete(r.humans, username)
	empty := present && len(r.humans) == 0
	if empty {
		delete(s.rooms, roomID)
	}
	s.mu.Unlock()

	if !present {
		return fmt.Errorf("player %s not in room %s", username, roomID)
	}

	s.logger.Info("Player left", "room", roomID, "player", username)

	if empty {
		close(r.done)
		s.logger.Info("Room closed", "room", roomID)
		return nil
	}

	s.broadcastState(r)
	s.pokeRoom(r)
	return nil
}

// Action applies a player's action to their room's table
func (s *Service) Action(roomID, username string, action string, amount int) error {
	r := s.room(roomID)
	if r == nil {
		return fmt.Errorf("room not found: %s", roomID)
	}

	if err := r.game.PlayerAction(username, game.Action(action), amount); err != nil {
		return err
	}

	s.afterMove(r)
	return nil
}

// StateFor returns the room state projected for one player
func (s *Service) StateFor(roomID, username string) (game.StateView, error) {
	r := s.room(roomID)
	if r == nil {
		return game.StateView{}, fmt.Errorf("room not found: %s", roomID)
	}
	return r.game.State(username), nil
}

func (s *Service) room(roomID string) *room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID]
}

// newRoom builds a table, seats the configured bots and starts the
// driver goroutine. Caller holds s.mu.
func (s *Service) newRoom(roomID string) (*room, error) {
	g := game.NewGame(roomID,
		game.WithBlinds(s.config.Game.SmallBlind, s.config.Game.BigBlind),
		game.WithRebuy(s.config.Game.RebuyAmount),
		game.WithRNG(rand.New(rand.NewSource(s.rng.Int63()))),
		game.WithLogger(s.logger),
	)

	r := &room{
		id:     roomID,
		game:   g,
		bots:   make(map[string]ai.Strategy),
		humans: make(map[string]string),
		poke:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	for _, bot := range s.config.Bots {
		botRNG := rand.New(rand.NewSource(s.rng.Int63()))
		if err := g.AddPlayer(bot.Name, s.config.Game.StartingChips, true, ident.New()); err != nil {
			return nil, fmt.Errorf("seating bot %s: %w", bot.Name, err)
		}
		r.bots[bot.Name] = ai.ForName(bot.Name, botRNG)
	}

	s.logger.Info("Room created", "room", roomID, "bots", len(r.bots))

	s.wg.Add(1)
	go s.runRoom(r)
	return r, nil
}

// runRoom is the per-room driver: each poke it plays any pending
// automated turns and, after a showdown, deals the next hand.
func (s *Service) runRoom(r *room) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-r.done:
			return
		case <-r.poke:
		}
		s.step(r)
	}
}

func (s *Service) pokeRoom(r *room) {
	select {
	case r.poke <- struct{}{}:
	default:
	}
}

// step advances the room until a human is to act or the table is
// waiting for players
func (s *Service) step(r *room) {
	for {
		if s.ctx.Err() != nil {
			return
		}
		if s.room(r.id) != r {
			return
		}

		if r.game.CurrentPhase() == game.Showdown {
			s.settleHand(r)
			continue
		}

		turn, ok := r.game.CurrentTurn()
		if !ok || !turn.IsAI {
			return
		}

		s.pause(time.Duration(s.config.Game.BotDelayMs) * time.Millisecond)
		s.playBotTurn(r, turn.Name)
		s.broadcastState(r)
	}
}

// playBotTurn asks the seat's strategy for a decision and applies it.
// An illegal decision degrades to a fold so the table never stalls.
func (s *Service) playBotTurn(r *room, name string) {
	strategy, ok := r.bots[name]
	if !ok {
		strategy = ai.NewNormal(s.rng)
	}

	actions, err := r.game.PossibleActions(name)
	if err != nil {
		return
	}

	state := r.game.State(name)
	view := ai.View{
		CurrentBet: state.CurrentBet,
		BigBlind:   r.game.BigBlind(),
		PotTotal:   s.potTotal(r),
		Actions:    actions,
	}
	for _, p := range state.Players {
		if p.Name == name {
			view.Hole = p.Hand
			view.Stack = p.Stack
			view.BetThisRound = p.BetThisRound
		}
	}

	decision := ai.SafeDecide(strategy, view)
	if err := r.game.PlayerAction(name, decision.Action, decision.Amount); err != nil {
		s.logger.Warn("Bot decision rejected, folding", "bot", name, "action", decision.Action, "error", err)
		_ = r.game.PlayerAction(name, game.ActionFold, 0)
	}
}

// settleHand persists balances after a showdown and deals the next
// hand once the pause elapses
func (s *Service) settleHand(r *room) {
	s.mu.Lock()
	humans := make([]string, 0, len(r.humans))
	for username := range r.humans {
		humans = append(humans, username)
	}
	s.mu.Unlock()

	for _, username := range humans {
		s.syncBalance(r, username)
	}

	s.pause(time.Duration(s.config.Game.HandDelayMs) * time.Millisecond)
	if s.ctx.Err() != nil || s.room(r.id) != r {
		return
	}

	if r.game.StartHand() {
		s.logger.Debug("New hand dealt", "room", r.id)
	}
	s.broadcastState(r)
}

// maybeStartHand deals the first hand once the table can support one
func (s *Service) maybeStartHand(r *room) {
	if r.game.CurrentPhase() != game.Waiting {
		return
	}
	if r.game.StartHand() {
		s.logger.Debug("Hand started", "room", r.id)
	}
}

// afterMove broadcasts the new state and wakes the driver so bots can
// respond
func (s *Service) afterMove(r *room) {
	s.broadcastState(r)
	s.pokeRoom(r)
}

// broadcastState pushes each connected player their own projection and
// tells the acting human it is their turn
func (s *Service) broadcastState(r *room) {
	if s.broadcaster == nil {
		return
	}

	s.broadcaster.BroadcastRoom(r.id, func(username string) (*Message, error) {
		return NewMessage(MessageTypeGameState, r.game.State(username))
	})

	turn, ok := r.game.CurrentTurn()
	if !ok || turn.IsAI {
		return
	}
	actions, err := r.game.PossibleActions(turn.Name)
	if err != nil {
		return
	}
	msg, err := NewMessage(MessageTypeYourTurn, YourTurnData{RoomID: r.id, Actions: actions})
	if err != nil {
		return
	}
	_ = s.broadcaster.SendToPlayer(turn.Name, msg)
}

// syncBalance writes a human's current stack back to their account
func (s *Service) syncBalance(r *room, username string) {
	if s.store == nil {
		return
	}
	s.mu.Lock()
	accountID, ok := r.humans[username]
	s.mu.Unlock()
	if !ok {
		return
	}
	stack := s.stackOf(r, username)
	if stack < 0 {
		return
	}
	if err := s.store.SetChips(accountID, stack); err != nil {
		s.logger.Error("Failed to persist balance", "player", username, "error", err)
	}
}

func (s *Service) stackOf(r *room, name string) int {
	for _, p := range r.game.Players() {
		if p.Name == name {
			return p.Stack
		}
	}
	return -1
}

func (s *Service) potTotal(r *room) int {
	total := 0
	for _, pot := range r.game.PotsInfo() {
		total += pot.Amount
	}
	return total
}

// pause sleeps on the service clock, returning early on shutdown
func (s *Service) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := s.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.ctx.Done():
	}
}
