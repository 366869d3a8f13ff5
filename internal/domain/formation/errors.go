package formation

import "errors"

// ErrUnknownFormation is returned for names outside the catalog.
var ErrUnknownFormation = errors.New("unknown formation")
