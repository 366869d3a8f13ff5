// Package rotation builds four quarter lineups from a roster, balancing equal
// playing time, role fit and, in an optional elite quarter, skill.
package rotation

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/okian/lineup/internal/domain/affinity"
	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSource sets the tie-break source used for the pre-sort shuffle.
func WithSource(src rand.Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.rng = rand.New(src) //nolint:gosec // tie-breaking, not security
		}
	}
}

// WithSeed seeds the tie-break source. Equal seeds give equal schedules.
func WithSeed(seed int64) Option {
	return WithSource(rand.NewSource(seed))
}

// Result is the outcome of one generation run.
type Result struct {
	// Lineups holds quarters 1..4 in order.
	Lineups []model.QuarterLineup
	// Starts is the final start count per person.
	Starts map[string]int
	// ForcedKeepers lists people forced into goal, in quarter order.
	ForcedKeepers []string
	// UnfilledSlots counts slots left empty across all quarters.
	UnfilledSlots int
}

// Generator runs the scheduling algorithm. It is safe for concurrent use;
// each Generate call gets its own Ledger.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. Without options the tie-break source is
// seeded from the clock.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // tie-breaking, not security
	}
	return g
}

// Generate schedules people into tmpl for every quarter. Only attending people
// available in a quarter are considered for it. Missing headcount leaves
// slots empty; it is never an error.
func (g *Generator) Generate(people []model.Person, tmpl formation.Template, elite model.EliteQuarter) Result {
	ledger := NewLedger()
	res := Result{Lineups: make([]model.QuarterLineup, 0, model.Quarters)}

	for q := 0; q < model.Quarters; q++ {
		lineup, forced, unfilled := g.quarter(q, people, tmpl, elite.Is(q), ledger)
		res.Lineups = append(res.Lineups, lineup)
		if forced != "" {
			res.ForcedKeepers = append(res.ForcedKeepers, forced)
		}
		res.UnfilledSlots += unfilled
	}
	res.Starts = ledger.snapshot()
	return res
}

// quarter resolves one quarter and updates the ledger starts.
func (g *Generator) quarter(q int, people []model.Person, tmpl formation.Template, elite bool, ledger *Ledger) (model.QuarterLineup, string, int) {
	available := make([]model.Person, 0, len(people))
	for _, p := range people {
		if p.AvailableIn(q) {
			available = append(available, p)
		}
	}

	pool := append([]model.Person(nil), available...)
	g.shuffle(pool)

	r := ranker{ledger: ledger, elite: elite}
	assigned := make(map[string]bool, len(tmpl.Slots))
	picks := make([]string, len(tmpl.Slots))
	var forced string

	gk := tmpl.GoalkeeperIndex()
	if gk >= 0 {
		cands := r.order(remaining(pool, assigned), tmpl.Slots[gk].Role)
		var keeper string
		for _, c := range cands {
			if c.CanKeep() {
				keeper = c.ID
				break
			}
		}
		if keeper == "" && len(cands) > 0 {
			keeper = cands[0].ID
			for _, c := range cands {
				if !ledger.Forced(c.ID) {
					keeper = c.ID
					break
				}
			}
			ledger.MarkForced(keeper)
			forced = keeper
		}
		if keeper != "" {
			picks[gk] = keeper
			assigned[keeper] = true
		}
	}

	for i, slot := range tmpl.Slots {
		if i == gk {
			continue
		}
		cands := r.order(remaining(pool, assigned), slot.Role)
		if len(cands) == 0 {
			break
		}
		picks[i] = cands[0].ID
		assigned[cands[0].ID] = true
	}

	lineup := model.QuarterLineup{
		Quarter:  q + 1,
		Starters: make([]model.Starter, 0, len(tmpl.Slots)),
		Subs:     make([]string, 0, len(available)),
	}
	unfilled := 0
	for i, id := range picks {
		if id == "" {
			unfilled++
			continue
		}
		lineup.Starters = append(lineup.Starters, model.Starter{Slot: tmpl.Slots[i], PersonID: id})
	}
	for _, s := range lineup.Starters {
		ledger.RecordStart(s.PersonID)
	}
	for _, p := range available {
		if !assigned[p.ID] {
			lineup.Subs = append(lineup.Subs, p.ID)
		}
	}
	return lineup, forced, unfilled
}

func (g *Generator) shuffle(pool []model.Person) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
}

func remaining(pool []model.Person, assigned map[string]bool) []model.Person {
	out := make([]model.Person, 0, len(pool))
	for _, p := range pool {
		if !assigned[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// ranker orders candidates for a slot: fewer starts first, then higher skill
// in the elite quarter, then better role fit. Ties keep shuffled order.
type ranker struct {
	ledger *Ledger
	elite  bool
}

func (r ranker) order(cands []model.Person, role model.Role) []model.Person {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if sa, sb := r.ledger.Starts(a.ID), r.ledger.Starts(b.ID); sa != sb {
			return sa < sb
		}
		if r.elite && a.Skill != b.Skill {
			return a.Skill > b.Skill
		}
		return affinity.For(a, role) > affinity.For(b, role)
	})
	return cands
}
