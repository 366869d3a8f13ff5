package rotation

// Ledger is the fairness memory of one generation run: starts per person and
// the set of people already forced into goal. It is never shared between runs.
type Ledger struct {
	starts map[string]int
	forced map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		starts: make(map[string]int),
		forced: make(map[string]struct{}),
	}
}

// Starts returns how many quarters id has started so far.
func (l *Ledger) Starts(id string) int { return l.starts[id] }

// RecordStart counts one more start for id.
func (l *Ledger) RecordStart(id string) { l.starts[id]++ }

// Forced reports whether id has already been forced into goal.
func (l *Ledger) Forced(id string) bool {
	_, ok := l.forced[id]
	return ok
}

// MarkForced remembers id as a forced goalkeeper for the rest of the run.
func (l *Ledger) MarkForced(id string) { l.forced[id] = struct{}{} }

// snapshot copies the start counts.
func (l *Ledger) snapshot() map[string]int {
	out := make(map[string]int, len(l.starts))
	for k, v := range l.starts {
		out[k] = v
	}
	return out
}
