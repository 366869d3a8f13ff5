package model

import (
	"fmt"
	"strings"
)

// Quarters is the number of scheduling periods in a match.
const Quarters = 4

// Skill is an ordered skill tier. Higher values rank first.
type Skill uint8

// Skill tiers.
const (
	SkillLow Skill = iota + 1
	SkillMedium
	SkillHigh
)

// String returns the tier label.
func (s Skill) String() string {
	switch s {
	case SkillHigh:
		return "High"
	case SkillMedium:
		return "Medium"
	case SkillLow:
		return "Low"
	default:
		return fmt.Sprintf("Skill(%d)", uint8(s))
	}
}

// ParseSkill maps "High", "Medium" or "Low" (any case) to a Skill.
func ParseSkill(s string) (Skill, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return SkillHigh, nil
	case "medium":
		return SkillMedium, nil
	case "low":
		return SkillLow, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSkill, s)
}

// MarshalText encodes the tier as its label.
func (s Skill) MarshalText() ([]byte, error) {
	if s < SkillLow || s > SkillHigh {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSkill, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a tier label.
func (s *Skill) UnmarshalText(b []byte) error {
	parsed, err := ParseSkill(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Availability flags per-quarter availability, Q1..Q4.
type Availability [Quarters]bool

// AllQuarters is the availability of someone attending the whole match.
var AllQuarters = Availability{true, true, true, true}

// Any reports whether at least one quarter is set.
func (a Availability) Any() bool {
	for _, v := range a {
		if v {
			return true
		}
	}
	return false
}

// Person is a roster member.
type Person struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Number    *int         `json:"number,omitempty"`
	Primary   Role         `json:"main_pos"`
	Secondary Role         `json:"sub_pos"`
	Skill     Skill        `json:"skill_level"`
	Guest     bool         `json:"is_mercenary"`
	Attending bool         `json:"is_attending"`
	Available Availability `json:"available_quarters"`
}

// CanKeep reports whether p declares goalkeeper as primary or secondary role.
func (p Person) CanKeep() bool {
	return p.Primary.IsGoalkeeper() || p.Secondary.IsGoalkeeper()
}

// AvailableIn reports whether p takes part in quarter q (0-based).
func (p Person) AvailableIn(q int) bool {
	return p.Attending && q >= 0 && q < Quarters && p.Available[q]
}

// ToggleAttendance flips participation. Turning it on marks every quarter
// available; turning it off clears them all.
func (p Person) ToggleAttendance() Person {
	p.Attending = !p.Attending
	if p.Attending {
		p.Available = AllQuarters
	} else {
		p.Available = Availability{}
	}
	return p
}

// ToggleQuarter flips availability for quarter q (0-based) and recomputes
// participation from the vector.
func (p Person) ToggleQuarter(q int) (Person, error) {
	if q < 0 || q >= Quarters {
		return p, fmt.Errorf("%w: %d", ErrInvalidQuarter, q)
	}
	p.Available[q] = !p.Available[q]
	p.Attending = p.Available.Any()
	return p, nil
}

// Validate checks the fields a roster entry must carry.
func (p Person) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: missing id", ErrInvalidPerson)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidPerson)
	case !p.Primary.Valid():
		return fmt.Errorf("%w: missing main_pos", ErrInvalidPerson)
	case p.Skill < SkillLow || p.Skill > SkillHigh:
		return fmt.Errorf("%w: missing skill_level", ErrInvalidPerson)
	case p.Attending != p.Available.Any():
		return fmt.Errorf("%w: is_attending disagrees with available_quarters", ErrInvalidPerson)
	}
	return nil
}
