package game

import "fmt"

// The error taxonomy is user-attributable: every error here is surfaced
// to the offending caller and never mutates table state. Internal
// consistency failures (empty deck, pot totals drifting) are panics,
// not errors.

// NotPlayerTurnError is returned when an action arrives from a seat
// other than the one whose turn it is.
type NotPlayerTurnError struct {
	Player string
}

func (e *NotPlayerTurnError) Error() string {
	return fmt.Sprintf("it's not %s's turn", e.Player)
}

// InvalidActionError is returned for an illegal check, an undersized
// raise or an unknown action verb.
type InvalidActionError struct {
	Reason string
}

func (e *InvalidActionError) Error() string {
	return e.Reason
}

// GameLogicError covers table-level rule violations: capacity,
// duplicate names, acting in the wrong phase.
type GameLogicError struct {
	Reason string
}

func (e *GameLogicError) Error() string {
	return e.Reason
}

// InsufficientChipsError is returned when a caller explicitly commits
// more chips than a stack holds.
type InsufficientChipsError struct {
	Need int
	Have int
}

func (e *InsufficientChipsError) Error() string {
	return fmt.Sprintf("insufficient chips: need %d, have %d", e.Need, e.Have)
}
