// Package service provides the session service behind the HTTP API and the
// CLI. Every state change goes through Dispatch.
package service

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/lineup/internal/adapters/csvimport"
	"github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/adapters/share"
	"github.com/okian/lineup/internal/domain/dedupe"
	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/internal/domain/rotation"
	"github.com/okian/lineup/internal/domain/state"
	"github.com/okian/lineup/internal/domain/types"
	"github.com/okian/lineup/pkg/logger"
	"github.com/okian/lineup/pkg/metrics"
)

const defaultStatsInterval = 10 * time.Second

// Service manages lineup sessions.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	deduper dedupe.Deduper
	reducer *state.Reducer
	locks   *sessionLocks

	// Configuration
	dedupeSize       int
	maxRoster        int
	shuffleSeed      int64
	defaultFormation formation.Name
	defaultElite     model.EliteQuarter
	statsInterval    time.Duration
	newID            func() string

	// State
	started   bool
	startedAt time.Time
	stopCh    chan struct{}
	wg        sync.WaitGroup

	applied     atomic.Int64
	rejected    atomic.Int64
	duplicates  atomic.Int64
	generations atomic.Int64

	logger logger.Logger
}

// New constructs a Service. Components are created by Start.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:       dedupe.DefaultMaxSize,
		defaultFormation: formation.Default,
		defaultElite:     model.NoEliteQuarter,
		statsInterval:    defaultStatsInterval,
		newID:            uuid.NewString,
		locks:            newSessionLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the components and the background metrics loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting lineup service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using memory store")
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	genOpts := []rotation.Option{}
	if s.shuffleSeed != 0 {
		genOpts = append(genOpts, rotation.WithSeed(s.shuffleSeed))
	}
	s.reducer = state.NewReducer(rotation.NewGenerator(genOpts...), state.WithMaxRoster(s.maxRoster))

	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.reportLoop()

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "lineup service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("maxRoster", s.maxRoster),
		logger.String("defaultFormation", string(s.defaultFormation)),
		logger.Int64("shuffleSeed", s.shuffleSeed),
	)
	return nil
}

// Stop ends the background loop.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping lineup service...")
	close(s.stopCh)
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "lineup service stopped")
}

func (s *Service) reportLoop() {
	defer s.wg.Done()
	t := time.NewTicker(s.statsInterval)
	defer t.Stop()

	s.reportSystem()
	for {
		select {
		case <-s.stopCh:
			return
		case <-t.C:
			s.reportSystem()
		}
	}
}

func (s *Service) reportSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	metrics.UpdateSystemMemoryUsage(ms.HeapAlloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	metrics.UpdateSessions(s.store.Count(context.Background()))
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Create stores a fresh session with the configured defaults.
func (s *Service) Create(ctx context.Context) (types.Session, error) {
	if err := s.ready(); err != nil {
		return types.Session{}, err
	}
	rec := repository.Record{ID: s.newID(), State: state.New(s.defaultFormation, s.defaultElite)}
	if err := s.store.Save(ctx, rec); err != nil {
		metrics.RecordErrorByComponent("store", "save")
		return types.Session{}, fmt.Errorf("create session: %w", err)
	}
	metrics.UpdateSessions(s.store.Count(ctx))
	s.logger.Info(ctx, "session created", logger.String("session_id", rec.ID))
	return types.Session{ID: rec.ID, State: rec.State}, nil
}

// Get returns a stored session.
func (s *Service) Get(ctx context.Context, id string) (types.Session, error) {
	if err := s.ready(); err != nil {
		return types.Session{}, err
	}
	rec, err := s.store.Load(ctx, id)
	if err != nil {
		return types.Session{}, err
	}
	return types.Session{ID: rec.ID, State: rec.State}, nil
}

// Delete removes a session and forgets its idempotency keys.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.deduper.Forget(ctx, id)
	metrics.UpdateSessions(s.store.Count(ctx))
	s.logger.Info(ctx, "session deleted", logger.String("session_id", id))
	return nil
}

// Dispatch applies cmd to session id. A non-empty key makes the call
// idempotent: a replay returns the current state marked as a duplicate
// without applying cmd again. Rejected commands release their key.
func (s *Service) Dispatch(ctx context.Context, id, key string, cmd state.Command) (types.Session, error) {
	if err := s.ready(); err != nil {
		return types.Session{}, err
	}
	unlock := s.locks.lock(id)
	defer unlock()

	rec, err := s.store.Load(ctx, id)
	if err != nil {
		return types.Session{}, err
	}

	dk := ""
	if key != "" {
		dk = dedupe.Key(id, key)
		if s.deduper.SeenAndRecord(ctx, dk) {
			s.duplicates.Add(1)
			metrics.RecordCommandDuplicate()
			s.logger.Debug(ctx, "duplicate command skipped",
				logger.String("session_id", id),
				logger.String("command", cmd.Name()),
				logger.String("key", key),
			)
			return types.Session{ID: id, State: rec.State, Duplicate: true}, nil
		}
	}

	start := time.Now()
	out, err := s.reducer.Apply(rec.State, cmd)
	elapsed := time.Since(start)
	if err != nil {
		s.release(ctx, dk)
		s.rejected.Add(1)
		metrics.RecordCommandRejected(cmd.Name())
		s.logger.Warn(ctx, "command rejected",
			logger.String("session_id", id),
			logger.String("command", cmd.Name()),
			logger.Error(err),
		)
		return types.Session{}, err
	}

	rec.State = out.State
	if err := s.store.Save(ctx, rec); err != nil {
		s.release(ctx, dk)
		metrics.RecordErrorByComponent("store", "save")
		return types.Session{}, fmt.Errorf("save session %s: %w", id, err)
	}

	s.applied.Add(1)
	metrics.RecordCommandApplied(cmd.Name())
	resp := types.Session{ID: id, State: out.State}

	switch cmd.(type) {
	case state.SwapPlayer:
		metrics.RecordSwap("player")
	case state.SwapStarters:
		metrics.RecordSwap("starters")
	}

	if out.Generation != nil {
		s.generations.Add(1)
		g := out.Generation
		metrics.RecordGeneration(float64(elapsed.Microseconds())/1000, len(g.ForcedKeepers), g.UnfilledSlots)
		resp.Generation = types.NewGenerationReport(*g)
		s.logger.Info(ctx, "lineups generated",
			logger.String("session_id", id),
			logger.Int("attending", len(out.State.Attending())),
			logger.Strings("forced_keepers", g.ForcedKeepers),
			logger.Int("unfilled_slots", g.UnfilledSlots),
			logger.Duration("took", elapsed),
		)
	}
	return resp, nil
}

func (s *Service) release(ctx context.Context, dk string) {
	if dk != "" {
		s.deduper.Unrecord(ctx, dk)
	}
}

// ImportRoster replaces the roster of session id with the people read from a
// roster CSV.
func (s *Service) ImportRoster(ctx context.Context, id, key string, r io.Reader) (types.Session, error) {
	people, err := csvimport.Parse(r, csvimport.WithIDGenerator(s.newID))
	if err != nil {
		return types.Session{}, err
	}
	resp, err := s.Dispatch(ctx, id, key, state.SetPlayers{Players: people})
	if err != nil {
		return types.Session{}, err
	}
	if !resp.Duplicate {
		metrics.RecordRosterImport(len(people))
		s.logger.Info(ctx, "roster imported", logger.String("session_id", id), logger.Int("people", len(people)))
	}
	return resp, nil
}

// ShareText renders the lineups of session id as plain text.
func (s *Service) ShareText(ctx context.Context, id string) (string, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return share.Text(sess.State), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) types.Stats {
	s.mu.RLock()
	started, startedAt := s.started, s.startedAt
	s.mu.RUnlock()

	st := types.Stats{
		CommandsApplied:  s.applied.Load(),
		CommandsRejected: s.rejected.Load(),
		Duplicates:       s.duplicates.Load(),
		Generations:      s.generations.Load(),
	}
	if started {
		st.Sessions = s.store.Count(ctx)
		st.DedupeKeys = s.deduper.Size()
		st.UptimeSeconds = time.Since(startedAt).Seconds()
		metrics.UpdateSessions(st.Sessions)
	}
	return st
}
