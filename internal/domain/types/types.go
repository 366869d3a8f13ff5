// Package types contains the read shapes shared by the service and its
// transports.
package types

import (
	"sort"

	"github.com/okian/lineup/internal/domain/rotation"
	"github.com/okian/lineup/internal/domain/state"
)

// Session is a stored session as returned to clients.
type Session struct {
	ID    string      `json:"id"`
	State state.State `json:"state"`
	// Generation is set on the response to a generate command.
	Generation *GenerationReport `json:"generation,omitempty"`
	// Duplicate marks a replayed command that was not applied again.
	Duplicate bool `json:"duplicate,omitempty"`
}

// StartCount is one person's number of starts in a generation run.
type StartCount struct {
	PersonID string `json:"player_id"`
	Starts   int    `json:"starts"`
}

// GenerationReport summarises a generation run.
type GenerationReport struct {
	Starts        []StartCount `json:"starts"`
	ForcedKeepers []string     `json:"forced_keepers"`
	UnfilledSlots int          `json:"unfilled_slots"`
}

// NewGenerationReport builds a report from a rotation result. Start counts
// are sorted by person id.
func NewGenerationReport(res rotation.Result) *GenerationReport {
	r := &GenerationReport{
		Starts:        make([]StartCount, 0, len(res.Starts)),
		ForcedKeepers: append([]string{}, res.ForcedKeepers...),
		UnfilledSlots: res.UnfilledSlots,
	}
	for id, n := range res.Starts {
		r.Starts = append(r.Starts, StartCount{PersonID: id, Starts: n})
	}
	sort.Slice(r.Starts, func(i, j int) bool { return r.Starts[i].PersonID < r.Starts[j].PersonID })
	return r
}

// Stats is the service statistics snapshot.
type Stats struct {
	Sessions         int     `json:"sessions"`
	CommandsApplied  int64   `json:"commands_applied"`
	CommandsRejected int64   `json:"commands_rejected"`
	Duplicates       int64   `json:"duplicates"`
	Generations      int64   `json:"generations"`
	DedupeKeys       int64   `json:"dedupe_keys"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}
