package model

import (
	"encoding/json"
	"fmt"
)

// Slot is a formation position. X and Y are percentages of pitch width and
// height and are carried through scheduling untouched.
type Slot struct {
	Role Role    `json:"role"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Starter binds a person to a slot for one quarter.
type Starter struct {
	Slot     Slot   `json:"position"`
	PersonID string `json:"player_id"`
}

// QuarterLineup is the assignment for one quarter. Quarter is 1-based.
type QuarterLineup struct {
	Quarter  int       `json:"quarter"`
	Starters []Starter `json:"starters"`
	Subs     []string  `json:"subs"`
}

// Clone returns a deep copy of l.
func (l QuarterLineup) Clone() QuarterLineup {
	out := QuarterLineup{Quarter: l.Quarter}
	out.Starters = append(make([]Starter, 0, len(l.Starters)), l.Starters...)
	out.Subs = append(make([]string, 0, len(l.Subs)), l.Subs...)
	return out
}

// StarterIndex returns the starter index holding id, or -1.
func (l QuarterLineup) StarterIndex(id string) int {
	for i, s := range l.Starters {
		if s.PersonID == id {
			return i
		}
	}
	return -1
}

// SubIndex returns the substitute index of id, or -1.
func (l QuarterLineup) SubIndex(id string) int {
	for i, s := range l.Subs {
		if s == id {
			return i
		}
	}
	return -1
}

// Members returns every person id in the quarter, starters first.
func (l QuarterLineup) Members() []string {
	out := make([]string, 0, len(l.Starters)+len(l.Subs))
	for _, s := range l.Starters {
		if s.PersonID != "" {
			out = append(out, s.PersonID)
		}
	}
	return append(out, l.Subs...)
}

// EliteQuarter designates the 0-based quarter where skill outranks role fit.
// It encodes to JSON as an integer, or null when unset.
type EliteQuarter int

// NoEliteQuarter disables the skill override.
const NoEliteQuarter EliteQuarter = -1

// Valid reports whether e is NoEliteQuarter or a quarter index.
func (e EliteQuarter) Valid() bool {
	return e == NoEliteQuarter || (e >= 0 && int(e) < Quarters)
}

// Is reports whether quarter q (0-based) is the elite quarter.
func (e EliteQuarter) Is(q int) bool {
	return e != NoEliteQuarter && int(e) == q
}

// MarshalJSON implements json.Marshaler.
func (e EliteQuarter) MarshalJSON() ([]byte, error) {
	if e == NoEliteQuarter {
		return []byte("null"), nil
	}
	return json.Marshal(int(e))
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EliteQuarter) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*e = NoEliteQuarter
		return nil
	}
	var q int
	if err := json.Unmarshal(b, &q); err != nil {
		return err
	}
	v := EliteQuarter(q)
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuarter, q)
	}
	*e = v
	return nil
}
