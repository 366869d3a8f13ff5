package state

import (
	"fmt"

	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/reassign"
	"github.com/okian/lineup/internal/domain/rotation"
)

// Generator schedules quarter lineups.
type Generator interface {
	Generate(people []model.Person, tmpl formation.Template, elite model.EliteQuarter) rotation.Result
}

// Outcome is the result of applying a command.
type Outcome struct {
	State State
	// Generation is set when the command ran the scheduler.
	Generation *rotation.Result
}

// Option applies a configuration option to the Reducer.
type Option func(*Reducer)

// WithMaxRoster caps the roster size. Zero or negative means unbounded.
func WithMaxRoster(n int) Option {
	return func(r *Reducer) {
		r.maxRoster = n
	}
}

// Reducer applies commands to states.
type Reducer struct {
	gen       Generator
	maxRoster int
}

// NewReducer creates a reducer that schedules with gen.
func NewReducer(gen Generator, opts ...Option) *Reducer {
	r := &Reducer{gen: gen}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply returns the state produced by cmd. The input state is not modified;
// on error it is returned unchanged inside the outcome.
func (r *Reducer) Apply(s State, cmd Command) (Outcome, error) {
	out, err := cmd.apply(r, s.Clone())
	if err != nil {
		return Outcome{State: s}, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return out, nil
}

func ok(s State) (Outcome, error) { return Outcome{State: s}, nil }

func (r *Reducer) checkRoster(people []model.Person) error {
	if r.maxRoster > 0 && len(people) > r.maxRoster {
		return fmt.Errorf("%w: %d > %d", ErrRosterFull, len(people), r.maxRoster)
	}
	return validateRoster(people)
}

func (c SetPlayers) apply(r *Reducer, s State) (Outcome, error) {
	players := append(make([]model.Person, 0, len(c.Players)), c.Players...)
	if err := r.checkRoster(players); err != nil {
		return Outcome{}, err
	}
	s.Players = players
	return ok(s)
}

func (c AddPlayer) apply(r *Reducer, s State) (Outcome, error) {
	players := append(s.Players, c.Player)
	if err := r.checkRoster(players); err != nil {
		return Outcome{}, err
	}
	s.Players = players
	return ok(s)
}

func (c UpdatePlayer) apply(r *Reducer, s State) (Outcome, error) {
	i := s.personIndex(c.ID)
	if i < 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownPerson, c.ID)
	}
	p := s.Players[i]
	patch := c.Patch
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.ClearNumber {
		p.Number = nil
	} else if patch.Number != nil {
		n := *patch.Number
		p.Number = &n
	}
	if patch.Primary != nil {
		p.Primary = *patch.Primary
	}
	if patch.Secondary != nil {
		p.Secondary = *patch.Secondary
	}
	if patch.Skill != nil {
		p.Skill = *patch.Skill
	}
	if patch.Guest != nil {
		p.Guest = *patch.Guest
	}
	if err := p.Validate(); err != nil {
		return Outcome{}, err
	}
	s.Players[i] = p
	return ok(s)
}

func (c RemovePlayer) apply(_ *Reducer, s State) (Outcome, error) {
	i := s.personIndex(c.ID)
	if i < 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownPerson, c.ID)
	}
	s.Players = append(s.Players[:i], s.Players[i+1:]...)
	return ok(s)
}

func (c ToggleAttendance) apply(_ *Reducer, s State) (Outcome, error) {
	i := s.personIndex(c.ID)
	if i < 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownPerson, c.ID)
	}
	s.Players[i] = s.Players[i].ToggleAttendance()
	return ok(s)
}

func (c ToggleQuarter) apply(_ *Reducer, s State) (Outcome, error) {
	i := s.personIndex(c.ID)
	if i < 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownPerson, c.ID)
	}
	p, err := s.Players[i].ToggleQuarter(c.Quarter)
	if err != nil {
		return Outcome{}, err
	}
	s.Players[i] = p
	return ok(s)
}

func (c SetFormation) apply(_ *Reducer, s State) (Outcome, error) {
	if !c.Formation.Valid() {
		return Outcome{}, fmt.Errorf("%w: %q", formation.ErrUnknownFormation, c.Formation)
	}
	s.Formation = c.Formation
	return ok(s)
}

func (c SetEliteQuarter) apply(_ *Reducer, s State) (Outcome, error) {
	if !c.Quarter.Valid() {
		return Outcome{}, fmt.Errorf("%w: %d", model.ErrInvalidQuarter, c.Quarter)
	}
	s.EliteQuarter = c.Quarter
	return ok(s)
}

func (GenerateLineups) apply(r *Reducer, s State) (Outcome, error) {
	tmpl, err := formation.Lookup(s.Formation)
	if err != nil {
		return Outcome{}, err
	}
	res := r.gen.Generate(s.Attending(), tmpl, s.EliteQuarter)
	s.Lineups = res.Lineups
	return Outcome{State: s, Generation: &res}, nil
}

func (c SetQuarterLineups) apply(_ *Reducer, s State) (Outcome, error) {
	if n := len(c.Lineups); n != 0 && n != model.Quarters {
		return Outcome{}, fmt.Errorf("%w: %d quarters", ErrInvalidLineups, n)
	}
	s.Lineups = make([]model.QuarterLineup, 0, len(c.Lineups))
	for _, l := range c.Lineups {
		s.Lineups = append(s.Lineups, l.Clone())
	}
	return ok(s)
}

func (c SetStep) apply(_ *Reducer, s State) (Outcome, error) {
	if c.Step < StepRoster || c.Step > StepPitch {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidStep, c.Step)
	}
	s.Step = c.Step
	return ok(s)
}

func (c SetSelectedQuarter) apply(_ *Reducer, s State) (Outcome, error) {
	if c.Quarter < 0 || c.Quarter >= model.Quarters {
		return Outcome{}, fmt.Errorf("%w: %d", model.ErrInvalidQuarter, c.Quarter)
	}
	s.SelectedQuarter = c.Quarter
	return ok(s)
}

func (c SwapPlayer) apply(_ *Reducer, s State) (Outcome, error) {
	l, err := s.quarter(c.Quarter)
	if err != nil {
		return Outcome{}, err
	}
	next, err := reassign.ApplySwap(l, c.SlotIndex, c.PersonID)
	if err != nil {
		return Outcome{}, err
	}
	s.Lineups[c.Quarter] = next
	return ok(s)
}

func (c SwapStarters) apply(_ *Reducer, s State) (Outcome, error) {
	l, err := s.quarter(c.Quarter)
	if err != nil {
		return Outcome{}, err
	}
	next, err := reassign.SwapSlots(l, c.SlotA, c.SlotB)
	if err != nil {
		return Outcome{}, err
	}
	s.Lineups[c.Quarter] = next
	return ok(s)
}

func (c LoadState) apply(_ *Reducer, _ State) (Outcome, error) {
	if err := c.State.Validate(); err != nil {
		return Outcome{}, err
	}
	return ok(c.State.Clone())
}

func (s State) quarter(q int) (model.QuarterLineup, error) {
	if len(s.Lineups) == 0 {
		return model.QuarterLineup{}, ErrNoLineups
	}
	if q < 0 || q >= len(s.Lineups) {
		return model.QuarterLineup{}, fmt.Errorf("%w: %d", model.ErrInvalidQuarter, q)
	}
	return s.Lineups[q], nil
}
