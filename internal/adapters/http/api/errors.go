package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/lineup/internal/adapters/csvimport"
	"github.com/okian/lineup/internal/adapters/repository"
	service "github.com/okian/lineup/internal/app"
	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/reassign"
	"github.com/okian/lineup/internal/domain/state"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrTrailingData = errors.New("unexpected data after JSON body")
)

// opError tags an error with the operation that produced it and its kind.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
}

func (e *opError) Unwrap() []error {
	if e.err == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.err}
}

// WrapKind returns err tagged with op and kind. Both match errors.Is.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// NewKind returns an error of kind tagged with op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// Wrap prefixes err with op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// clientErrors are rejected commands and malformed input.
var clientErrors = []error{
	ErrBadRequest,
	repository.ErrInvalidID,
	csvimport.ErrEmpty, csvimport.ErrMissingColumn, csvimport.ErrMalformed,
	formation.ErrUnknownFormation,
	model.ErrUnknownRole, model.ErrUnknownSkill, model.ErrInvalidQuarter, model.ErrInvalidPerson,
	reassign.ErrSlotOutOfRange, reassign.ErrUnknownPerson,
	state.ErrUnknownPerson, state.ErrDuplicatePerson, state.ErrRosterFull,
	state.ErrNoLineups, state.ErrInvalidLineups, state.ErrInvalidStep,
}

// classify maps an error to an HTTP status and an error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return http.StatusRequestEntityTooLarge, "too_large"
	}
	for _, kind := range clientErrors {
		if errors.Is(err, kind) {
			return http.StatusBadRequest, "bad_request"
		}
	}
	return http.StatusInternalServerError, "internal_error"
}
