package config

import "errors"

// Sentinel kinds returned by Load and Validate.
var (
	ErrInvalidConfig = errors.New("invalid lineup config")
	ErrLoadConfig    = errors.New("load lineup config")
)
