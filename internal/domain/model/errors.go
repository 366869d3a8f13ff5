package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrUnknownSkill   = errors.New("unknown skill level")
	ErrInvalidQuarter = errors.New("invalid quarter")
	ErrInvalidPerson  = errors.New("invalid person")
)
