// Package share renders a session's lineups as plain text for messaging apps.
package share

import (
	"fmt"
	"strings"

	"github.com/okian/lineup/internal/domain/state"
)

// Text renders s. Starters and subs that are no longer on the roster are
// left out.
//
//	[4-3-3 라인업]
//
//	--- 1Q ---
//	GK: Kim (#1)
//	SUB: Lee, Park
func Text(s state.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s 라인업]\n\n", s.Formation)

	for qi, l := range s.Lineups {
		fmt.Fprintf(&b, "--- %dQ ---\n", qi+1)
		for _, st := range l.Starters {
			p, ok := s.Person(st.PersonID)
			if !ok {
				continue
			}
			b.WriteString(st.Slot.Role.String())
			b.WriteString(": ")
			b.WriteString(p.Name)
			if p.Number != nil && *p.Number != 0 {
				fmt.Fprintf(&b, " (#%d)", *p.Number)
			}
			b.WriteByte('\n')
		}
		if len(l.Subs) > 0 {
			names := make([]string, 0, len(l.Subs))
			for _, id := range l.Subs {
				if p, ok := s.Person(id); ok {
					names = append(names, p.Name)
				}
			}
			b.WriteString("SUB: ")
			b.WriteString(strings.Join(names, ", "))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
