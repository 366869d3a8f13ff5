// Package csvimport reads a roster from a club spreadsheet export.
//
// The header row names the columns; only these are read:
//
//	이름           name, rows without one are skipped
//	학번(10자리)   member id, kept only when exactly ten characters long
//	등번호         jersey number, the first run of digits
//	주포지션 세부  "main, secondary" role labels
//
// Imported people are regular members of medium skill who have not yet
// confirmed attendance.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/lineup/internal/domain/model"
)

// Column headers.
const (
	ColName      = "이름"
	ColMemberID  = "학번(10자리)"
	ColNumber    = "등번호"
	ColPositions = "주포지션 세부"
)

// MemberIDLength is the only member id length kept as a person id.
const MemberIDLength = 10

// DefaultRole is used when the positions column is empty or unknown.
const DefaultRole = model.RoleCM

var digits = regexp.MustCompile(`\d+`)

// Option configures Parse.
type Option func(*parser)

// WithIDGenerator sets the generator for people without a usable member id.
func WithIDGenerator(gen func() string) Option {
	return func(p *parser) {
		if gen != nil {
			p.newID = gen
		}
	}
}

type parser struct {
	newID func() string
}

// Parse reads every roster row from r.
func Parse(r io.Reader, opts ...Option) ([]model.Person, error) {
	p := &parser{newID: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	cols := index(header)
	if _, ok := cols[ColName]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, ColName)
	}

	people := []model.Person{}
	seen := make(map[string]bool)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		person, ok := p.row(cols, rec)
		if !ok {
			continue
		}
		if seen[person.ID] {
			person.ID = p.newID()
		}
		seen[person.ID] = true
		people = append(people, person)
	}
	return people, nil
}

func (p *parser) row(cols map[string]int, rec []string) (model.Person, bool) {
	get := func(col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	name := get(ColName)
	if name == "" {
		return model.Person{}, false
	}

	id := get(ColMemberID)
	if len([]rune(id)) != MemberIDLength {
		id = p.newID()
	}

	primary, secondary := roles(get(ColPositions))
	return model.Person{
		ID:        id,
		Name:      name,
		Number:    number(get(ColNumber)),
		Primary:   primary,
		Secondary: secondary,
		Skill:     model.SkillMedium,
	}, true
}

// number extracts "17" from values like "No. 17".
func number(s string) *int {
	m := digits.FindString(s)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

func roles(s string) (model.Role, model.Role) {
	primary, secondary := DefaultRole, model.RoleNone
	parts := strings.Split(s, ",")
	if r, err := model.ParseRole(parts[0]); err == nil && r != model.RoleNone {
		primary = r
	}
	if len(parts) > 1 {
		if r, err := model.ParseRole(parts[1]); err == nil {
			secondary = r
		}
	}
	return primary, secondary
}

func index(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}
