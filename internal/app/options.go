package service

import (
	"time"

	"github.com/okian/lineup/internal/adapters/repository"
	"github.com/okian/lineup/internal/domain/formation"
	"github.com/okian/lineup/internal/domain/model"
	"github.com/okian/lineup/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the session store. The default is an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDedupeSize bounds the idempotency key cache. Zero or negative is unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}

// WithShuffleSeed fixes the tie-break seed. Zero seeds from the clock.
func WithShuffleSeed(seed int64) Option {
	return func(s *Service) {
		s.shuffleSeed = seed
	}
}

// WithMaxRoster caps roster length. Zero or negative is unbounded.
func WithMaxRoster(n int) Option {
	return func(s *Service) {
		s.maxRoster = n
	}
}

// WithDefaults sets the formation and elite quarter of new sessions.
// Invalid values are ignored.
func WithDefaults(f formation.Name, elite model.EliteQuarter) Option {
	return func(s *Service) {
		if f.Valid() {
			s.defaultFormation = f
		}
		if elite.Valid() {
			s.defaultElite = elite
		}
	}
}

// WithStatsInterval sets how often system gauges are refreshed.
func WithStatsInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.statsInterval = d
		}
	}
}

// WithIDGenerator sets the generator for session and imported person ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}
