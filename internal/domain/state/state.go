// Package state holds the session state value and the closed set of commands
// that produce new states from old ones. A State is never modified in place.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
)

// Wizard steps.
const (
	StepRoster = iota
	StepAttendance
	StepLineup
	StepPitch
)

// State is a snapshot of one session. It is also the persisted record.
type State struct {
	Players         []model.Person        `json:"players"`
	Formation       formation.Name        `json:"formation"`
	EliteQuarter    model.EliteQuarter    `json:"elite_quarter"`
	Lineups         []model.QuarterLineup `json:"quarter_lineups"`
	Step            int                   `json:"current_step"`
	SelectedQuarter int                   `json:"selected_quarter"`
}

// New returns an empty state.
func New(f formation.Name, elite model.EliteQuarter) State {
	return State{
		Players:      []model.Person{},
		Formation:    f,
		EliteQuarter: elite,
		Lineups:      []model.QuarterLineup{},
	}
}

// UnmarshalJSON decodes s. A missing elite_quarter key means no elite
// quarter, not quarter 0.
func (s *State) UnmarshalJSON(b []byte) error {
	type plain State
	p := plain{EliteQuarter: model.NoEliteQuarter}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = State(p)
	return nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Players = append(make([]model.Person, 0, len(s.Players)), s.Players...)
	out.Lineups = make([]model.QuarterLineup, 0, len(s.Lineups))
	for _, l := range s.Lineups {
		out.Lineups = append(out.Lineups, l.Clone())
	}
	return out
}

// Person returns the roster entry with id.
func (s State) Person(id string) (model.Person, bool) {
	if i := s.personIndex(id); i >= 0 {
		return s.Players[i], true
	}
	return model.Person{}, false
}

// Attending returns the people currently marked as attending.
func (s State) Attending() []model.Person {
	out := make([]model.Person, 0, len(s.Players))
	for _, p := range s.Players {
		if p.Attending {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks a state received from outside, e.g. a stored record.
func (s State) Validate() error {
	if !s.Formation.Valid() {
		return fmt.Errorf("%w: %q", formation.ErrUnknownFormation, s.Formation)
	}
	if !s.EliteQuarter.Valid() {
		return fmt.Errorf("%w: elite quarter %d", model.ErrInvalidQuarter, s.EliteQuarter)
	}
	if err := validateRoster(s.Players); err != nil {
		return err
	}
	if n := len(s.Lineups); n != 0 && n != model.Quarters {
		return fmt.Errorf("%w: %d quarters", ErrInvalidLineups, n)
	}
	if s.Step < StepRoster || s.Step > StepPitch {
		return fmt.Errorf("%w: %d", ErrInvalidStep, s.Step)
	}
	if s.SelectedQuarter < 0 || s.SelectedQuarter >= model.Quarters {
		return fmt.Errorf("%w: %d", model.ErrInvalidQuarter, s.SelectedQuarter)
	}
	return nil
}

func (s State) personIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func validateRoster(people []model.Person) error {
	seen := make(map[string]bool, len(people))
	for _, p := range people {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicatePerson, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
