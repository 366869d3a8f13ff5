package state

import "errors"

// Sentinel kinds for rejected commands.
var (
	ErrUnknownPerson   = errors.New("unknown person")
	ErrDuplicatePerson = errors.New("duplicate person id")
	ErrRosterFull      = errors.New("roster is full")
	ErrNoLineups       = errors.New("lineups not generated")
	ErrInvalidLineups  = errors.New("invalid lineups")
	ErrInvalidStep     = errors.New("invalid step")
)
