package csvimport

import "errors"

// Sentinel kinds for import errors.
var (
	ErrEmpty         = errors.New("empty roster file")
	ErrMissingColumn = errors.New("missing roster column")
	ErrMalformed     = errors.New("malformed roster file")
)
