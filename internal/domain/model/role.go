// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Role is a pitch position label. The zero value RoleNone marks an absent
// secondary role.
type Role uint8

// Known roles.
const (
	RoleNone Role = iota
	RoleGK
	RoleCB
	RoleLB
	RoleRB
	RoleCDM
	RoleCM
	RoleCAM
	RoleLM
	RoleRM
	RoleLW
	RoleRW
	RoleST
	RoleCF
)

var roleLabels = [...]string{
	RoleNone: "",
	RoleGK:   "GK",
	RoleCB:   "CB",
	RoleLB:   "LB",
	RoleRB:   "RB",
	RoleCDM:  "CDM",
	RoleCM:   "CM",
	RoleCAM:  "CAM",
	RoleLM:   "LM",
	RoleRM:   "RM",
	RoleLW:   "LW",
	RoleRW:   "RW",
	RoleST:   "ST",
	RoleCF:   "CF",
}

// Category is the broad band a role belongs to.
type Category uint8

// Categories, ordered along the pitch from goal to attack.
const (
	CategoryGK Category = iota
	CategoryDF
	CategoryMF
	CategoryFW
)

var categoryLabels = [...]string{
	CategoryGK: "GK",
	CategoryDF: "DF",
	CategoryMF: "MF",
	CategoryFW: "FW",
}

// roleCategories is the static classification table. RoleNone has no
// category and is never looked up.
var roleCategories = [...]Category{
	RoleGK:  CategoryGK,
	RoleCB:  CategoryDF,
	RoleLB:  CategoryDF,
	RoleRB:  CategoryDF,
	RoleCDM: CategoryMF,
	RoleCM:  CategoryMF,
	RoleCAM: CategoryMF,
	RoleLM:  CategoryMF,
	RoleRM:  CategoryMF,
	RoleLW:  CategoryFW,
	RoleRW:  CategoryFW,
	RoleST:  CategoryFW,
	RoleCF:  CategoryFW,
}

// Roles returns every assignable role in display order.
func Roles() []Role {
	return []Role{RoleGK, RoleCB, RoleLB, RoleRB, RoleCDM, RoleCM, RoleCAM, RoleLM, RoleRM, RoleLW, RoleRW, RoleST, RoleCF}
}

// ParseRole maps a label such as "CDM" to its Role. Matching ignores case and
// surrounding whitespace. An empty label yields RoleNone.
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for r, label := range roleLabels {
		if label == s {
			return Role(r), nil
		}
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// String returns the role label.
func (r Role) String() string {
	if int(r) < len(roleLabels) {
		return roleLabels[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Valid reports whether r is a known assignable role.
func (r Role) Valid() bool {
	return r > RoleNone && int(r) < len(roleLabels)
}

// Category returns the broad category of r. Callers must not pass RoleNone.
func (r Role) Category() Category {
	return roleCategories[r]
}

// IsGoalkeeper reports whether r is the goalkeeper role.
func (r Role) IsGoalkeeper() bool { return r == RoleGK }

// MarshalText encodes the role as its label.
func (r Role) MarshalText() ([]byte, error) {
	if r != RoleNone && !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role label.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// String returns the category label.
func (c Category) String() string {
	if int(c) < len(categoryLabels) {
		return categoryLabels[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Adjacent reports whether c and o are neighbours on the chain GK-DF-MF-FW.
func (c Category) Adjacent(o Category) bool {
	return c+1 == o || o+1 == c
}
