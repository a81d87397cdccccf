package game

import "github.com/lox/cardroom/poker"

// Status is a player's state within (or between) hands
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
	StatusOut
)

// String returns the wire representation of a status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusFolded:
		return "FOLDED"
	case StatusAllIn:
		return "ALL_IN"
	case StatusOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Player is one seat at a table. The identity (ID, Name) survives
// across hands; everything else is reset when a new hand begins.
// Name is unique within a table and is the key used for turn lookups
// and pot eligibility.
type Player struct {
	ID            string
	Name          string
	Stack         int
	Hole          []poker.Card
	BetThisRound  int // wagered in the current street
	BetThisHand   int // cumulative across all streets, drives side pots
	Status        Status
	IsAI          bool
	FinalHandName string // set only at showdown
}

// resetForNewHand clears per-hand state. A seat with no chips left is
// OUT for the coming hand.
func (p *Player) resetForNewHand() {
	p.Hole = nil
	p.BetThisRound = 0
	p.BetThisHand = 0
	p.FinalHandName = ""
	if p.Stack > 0 {
		p.Status = StatusActive
	} else {
		p.Status = StatusOut
	}
}
