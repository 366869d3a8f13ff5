package reassign

import "errors"

// Sentinel kinds for swap contract violations.
var (
	ErrSlotOutOfRange = errors.New("slot index out of range")
	ErrUnknownPerson  = errors.New("person not in quarter")
)
