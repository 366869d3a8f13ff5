// Package formation holds the fixed catalog of eleven-slot formation templates.
package formation

import (
	"fmt"

	"github.com/okian/lineup/internal/domain/model"
)

// SlotCount is the number of slots in every template.
const SlotCount = 11

// Name identifies a template, e.g. "4-3-3".
type Name string

// Catalog names.
const (
	F433  Name = "4-3-3"
	F442  Name = "4-4-2"
	F352  Name = "3-5-2"
	F4231 Name = "4-2-3-1"
	F343  Name = "3-4-3"
	F532  Name = "5-3-2"
)

// Default is the template selected for a fresh session.
const Default = F433

// Template is an ordered list of slots with exactly one goalkeeper.
type Template struct {
	Name  Name         `json:"name"`
	Slots []model.Slot `json:"slots"`
}

func s(r model.Role, x, y float64) model.Slot { return model.Slot{Role: r, X: x, Y: y} }

var order = []Name{F433, F442, F352, F4231, F343, F532}

var catalog = map[Name][]model.Slot{
	F433: {
		s(model.RoleGK, 50, 90),
		s(model.RoleLB, 15, 70), s(model.RoleCB, 38, 73), s(model.RoleCB, 62, 73), s(model.RoleRB, 85, 70),
		s(model.RoleCM, 30, 50), s(model.RoleCDM, 50, 55), s(model.RoleCM, 70, 50),
		s(model.RoleLW, 18, 28), s(model.RoleST, 50, 22), s(model.RoleRW, 82, 28),
	},
	F442: {
		s(model.RoleGK, 50, 90),
		s(model.RoleLB, 15, 70), s(model.RoleCB, 38, 73), s(model.RoleCB, 62, 73), s(model.RoleRB, 85, 70),
		s(model.RoleLM, 15, 48), s(model.RoleCM, 38, 52), s(model.RoleCM, 62, 52), s(model.RoleRM, 85, 48),
		s(model.RoleST, 38, 25), s(model.RoleST, 62, 25),
	},
	F352: {
		s(model.RoleGK, 50, 90),
		s(model.RoleCB, 25, 73), s(model.RoleCB, 50, 75), s(model.RoleCB, 75, 73),
		s(model.RoleLM, 10, 50), s(model.RoleCM, 32, 52), s(model.RoleCDM, 50, 56), s(model.RoleCM, 68, 52), s(model.RoleRM, 90, 50),
		s(model.RoleST, 38, 25), s(model.RoleST, 62, 25),
	},
	F4231: {
		s(model.RoleGK, 50, 90),
		s(model.RoleLB, 15, 70), s(model.RoleCB, 38, 73), s(model.RoleCB, 62, 73), s(model.RoleRB, 85, 70),
		s(model.RoleCDM, 38, 55), s(model.RoleCDM, 62, 55),
		s(model.RoleLW, 18, 35), s(model.RoleCAM, 50, 38), s(model.RoleRW, 82, 35),
		s(model.RoleST, 50, 20),
	},
	F343: {
		s(model.RoleGK, 50, 90),
		s(model.RoleCB, 25, 73), s(model.RoleCB, 50, 75), s(model.RoleCB, 75, 73),
		s(model.RoleLM, 15, 50), s(model.RoleCM, 38, 52), s(model.RoleCM, 62, 52), s(model.RoleRM, 85, 50),
		s(model.RoleLW, 20, 25), s(model.RoleST, 50, 22), s(model.RoleRW, 80, 25),
	},
	F532: {
		s(model.RoleGK, 50, 90),
		s(model.RoleLB, 10, 65), s(model.RoleCB, 30, 73), s(model.RoleCB, 50, 75), s(model.RoleCB, 70, 73), s(model.RoleRB, 90, 65),
		s(model.RoleCM, 30, 50), s(model.RoleCDM, 50, 55), s(model.RoleCM, 70, 50),
		s(model.RoleST, 38, 25), s(model.RoleST, 62, 25),
	},
}

// Lookup returns a copy of the named template.
func Lookup(name Name) (Template, error) {
	slots, ok := catalog[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownFormation, name)
	}
	return Template{Name: name, Slots: append([]model.Slot(nil), slots...)}, nil
}

// MustLookup is Lookup for catalog constants; it panics on unknown names.
func MustLookup(name Name) Template {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Names returns the catalog names in display order.
func Names() []Name {
	return append([]Name(nil), order...)
}

// All returns copies of every template in display order.
func All() []Template {
	out := make([]Template, 0, len(order))
	for _, n := range order {
		out = append(out, MustLookup(n))
	}
	return out
}

// Valid reports whether n names a catalog template.
func (n Name) Valid() bool {
	_, ok := catalog[n]
	return ok
}

// GoalkeeperIndex returns the index of the goalkeeper slot, or -1.
func (t Template) GoalkeeperIndex() int {
	for i, sl := range t.Slots {
		if sl.Role.IsGoalkeeper() {
			return i
		}
	}
	return -1
}
